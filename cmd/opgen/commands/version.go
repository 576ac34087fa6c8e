package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/opgen"
	"github.com/erraggy/opgen/internal/cliutil"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			cliutil.Writef(out, "opgen %s\n", opgen.Version())
			cliutil.Writef(out, "commit: %s\n", opgen.Commit())
			cliutil.Writef(out, "built: %s\n", opgen.BuildTime())
			cliutil.Writef(out, "go: %s\n", opgen.GoVersion())
		},
	}
}
