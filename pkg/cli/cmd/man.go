package cmd

import (
	"fmt"

	"github.com/snow-plow/snow-plow/pkg/ui/notify"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewManCmd creates the man command, which generates one man page per
// subcommand. Shell completion comes from cobra's built-in completion
// command instead.
func NewManCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "man [directory]",
		Short:        "Generate man pages, in the given directory or the current one",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			header := &doc.GenManHeader{Title: "SNOW-PLOW", Section: "1"}

			err := doc.GenManTree(cmd.Root(), header, dir)
			if err != nil {
				return fmt.Errorf("generate man pages in %s: %w", dir, err)
			}

			style := styleMode(cmd)
			out := notify.NewNotifier(cmd.OutOrStdout(), style.Enabled(cmd.OutOrStdout()))
			out.Generatef("man pages written to %s", dir)

			return nil
		},
	}
}

// styleMode reads the style flag directly; the man command never opens
// the registry, so it must not require a storage location.
func styleMode(cmd *cobra.Command) notify.Mode {
	mode := notify.ModeAuto

	flag := cmd.Flags().Lookup(StyleFlagName)
	if flag != nil {
		_ = mode.Set(flag.Value.String())
	}

	return mode
}
