package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"gbd-mapping-generator/internal/output"
)

// Build-time variables set via ldflags.
var (
	Version   = "v0.0.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			output.Println(fmt.Sprintf("gbd-mapping-generator version %s", Version))
			output.Println(fmt.Sprintf("  Commit:    %s", GitCommit))
			output.Println(fmt.Sprintf("  Built:     %s", BuildDate))
			output.Println(fmt.Sprintf("  Go:        %s", runtime.Version()))

			return nil
		},
	}
}
