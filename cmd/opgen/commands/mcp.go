package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erraggy/opgen/internal/mcpserver"
)

func newMCPCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the generate and describe_operation tools over MCP stdio",
		Long: `Mcp starts a Model Context Protocol server on stdin/stdout. Server
defaults are read from OPGEN_MCP_* environment variables; logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return mcpserver.Run(cmd.Context(), logger)
		},
	}
}
