package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gbd-mapping-generator/internal/builder"
	"gbd-mapping-generator/internal/common"
	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/output"
	"gbd-mapping-generator/internal/resolve"
)

// NewKindsCmd creates the kinds command.
func NewKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the kinds build accepts",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, t := range builder.Targets() {
				output.Println(describeTarget(t))
			}

			return nil
		},
	}
}

func describeTarget(t string) string {
	line := output.StyleNoun.Render(t)

	switch t {
	case builder.TargetAll:
		return line + output.StyleDim.Render(" every kind")
	case builder.TargetID, builder.TargetBase:
		return line
	}

	needs := resolve.Requires(entity.Kind(t))
	if len(needs) == 0 {
		return line
	}

	names := common.Map(needs, func(k entity.Kind) string { return string(k) })

	return line + output.StyleDim.Render(fmt.Sprintf(" (needs %s)", strings.Join(names, ", ")))
}
