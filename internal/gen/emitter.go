package gen

import (
	"fmt"

	"golang.org/x/tools/imports"

	"gbd-mapping-generator/internal/diagnostic"
	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/schema"
)

// Header starts every generated file.
const Header = "// Code generated by gbd-mapping-generator. DO NOT EDIT.\n"

// Config holds configuration for code generation.
type Config struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir receives sidecar files for source that fails to format.
	// Empty disables them.
	OutputDir string
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		PackageName: "gbdmapping",
		OutputDir:   "./gbdmapping",
	}
}

// Emitter renders the generated package.
type Emitter struct {
	config Config
}

// NewEmitter creates an Emitter. An empty package name takes the default.
func NewEmitter(config Config) *Emitter {
	if config.PackageName == "" {
		config.PackageName = DefaultConfig().PackageName
	}

	return &Emitter{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "cause_template.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// EmitKind renders the template and instance files of one entity kind.
func (e *Emitter) EmitKind(kind entity.Kind, g *entity.Graph) ([]GeneratedFile, error) {
	k, err := schema.ForKind(kind)
	if err != nil {
		return nil, emitError(string(kind), "%v", err)
	}

	tmpl, err := e.EmitTemplate(k.Module(names(kind, g)))
	if err != nil {
		return nil, err
	}

	inst, err := e.EmitInstances(kind, g)
	if err != nil {
		return nil, err
	}

	return []GeneratedFile{tmpl, inst}, nil
}

// format runs the source through goimports in format-only mode. Source
// that does not parse is written to a sidecar for inspection.
func (e *Emitter) format(filename string, src []byte) (GeneratedFile, error) {
	out, err := imports.Process(filename, src, &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   TabWidth,
	})
	if err != nil {
		_ = writeUnformatted(e.config.OutputDir, filename, src)

		return GeneratedFile{Filename: filename, Content: src}, emitError(filename, "formatting code: %v", err)
	}

	return GeneratedFile{Filename: filename, Content: out}, nil
}

func emitError(subject, format string, args ...any) error {
	return diagnostic.Newf(diagnostic.CodeEmit, subject, 0, format, args...)
}

func names(kind entity.Kind, g *entity.Graph) []string {
	switch kind {
	case entity.KindSequela:
		return g.Sequelae.Names()
	case entity.KindEtiology:
		return g.Etiologies.Names()
	case entity.KindCause:
		return g.Causes.Names()
	case entity.KindRiskFactor:
		return g.RiskFactors.Names()
	case entity.KindCovariate:
		return g.Covariates.Names()
	case entity.KindCoverageGap:
		return g.CoverageGaps.Names()
	default:
		return nil
	}
}

// fileName returns the file name of a kind's template or instance file.
func fileName(kind string, template bool) string {
	if template {
		return fmt.Sprintf("%s_template.go", kind)
	}

	return kind + ".go"
}
