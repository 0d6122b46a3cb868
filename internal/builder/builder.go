package builder

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"gbd-mapping-generator/internal/diagnostic"
	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/gbd"
	"gbd-mapping-generator/internal/gen"
	"gbd-mapping-generator/internal/link"
	"gbd-mapping-generator/internal/output"
	"gbd-mapping-generator/internal/resolve"
)

// Options configures a Builder.
type Options struct {
	Source  gbd.Options
	Resolve resolve.Config
	Gen     gen.Config
	// OutputDir receives the generated files.
	OutputDir string
}

// Builder generates the mapping package.
type Builder struct {
	opts Options
	open func(ctx context.Context, opts gbd.Options) (gbd.Source, error)
}

// New creates a Builder that opens its source with gbd.OpenSource.
func New(opts Options) *Builder {
	return &Builder{opts: opts, open: gbd.OpenSource}
}

// NewWithSource creates a Builder reading from src.
func NewWithSource(opts Options, src gbd.Source) *Builder {
	return &Builder{
		opts: opts,
		open: func(context.Context, gbd.Options) (gbd.Source, error) { return src, nil },
	}
}

// Result summarizes a run.
type Result struct {
	// RunID identifies the run in logs.
	RunID       string
	Files       []gen.GeneratedFile
	Entities    int
	Diagnostics diagnostic.Diagnostics
}

// Run generates targets, which must come from ParseTargets. Files are
// written only when every target rendered.
func (b *Builder) Run(ctx context.Context, targets []string) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	logger := output.Logger.With("run", res.RunID)

	logger.Debug("starting build", "targets", targets, "output", b.opts.OutputDir)

	var g *entity.Graph

	if ks := kinds(targets); len(ks) > 0 {
		var err error

		g, err = b.resolve(ctx, logger, ks, res)
		if err != nil {
			return res, err
		}

		res.Entities = g.Len()
	}

	emitter := gen.NewEmitter(b.opts.Gen)

	for _, t := range targets {
		files, err := emit(emitter, t, g)
		if err != nil {
			return res, fmt.Errorf("emit %s: %w", t, err)
		}

		res.Files = append(res.Files, files...)
	}

	if err := gen.WriteFiles(res.Files, b.opts.OutputDir); err != nil {
		return res, err
	}

	for _, f := range res.Files {
		logger.Debug("wrote file", "file", f.Filename, "bytes", len(f.Content))
	}

	return res, nil
}

func (b *Builder) resolve(ctx context.Context, logger *log.Logger, ks []entity.Kind, res *Result) (*entity.Graph, error) {
	src, err := b.open(ctx, b.opts.Source)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	adapter := gbd.NewAdapter(src)
	resolver := resolve.New(b.opts.Resolve)

	var g *entity.Graph

	err = output.RunWithSpinner(ctx, "Resolving GBD metadata", func(ctx context.Context) error {
		var rerr error
		g, rerr = resolver.Resolve(ctx, adapter, ks)

		return rerr
	})

	diags := resolver.Diagnostics()
	for _, d := range diags.Warnings {
		logger.Warn(d.Message, "code", d.Code, "kind", d.Kind, "entity", d.Entity)
	}

	for _, d := range diags.Infos {
		logger.Debug(d.Message, "code", d.Code, "kind", d.Kind)
	}

	res.Diagnostics.Merge(diags)

	if err != nil {
		return nil, err
	}

	if err := link.Link(g); err != nil {
		return nil, fmt.Errorf("link: %w", err)
	}

	logger.Debug("resolved graph", "kinds", ks, "entities", g.Len())

	return g, nil
}

func emit(e *gen.Emitter, target string, g *entity.Graph) ([]gen.GeneratedFile, error) {
	switch target {
	case TargetID:
		f, err := e.EmitIDs()
		return []gen.GeneratedFile{f}, err
	case TargetBase:
		f, err := e.EmitBase()
		return []gen.GeneratedFile{f}, err
	default:
		return e.EmitKind(entity.Kind(target), g)
	}
}
