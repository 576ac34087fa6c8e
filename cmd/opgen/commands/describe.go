package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erraggy/opgen/internal/cliutil"
	"github.com/erraggy/opgen/operation"
)

var describeFlags = []string{"content-type-maps", "force-validation", "request-priority"}

func newDescribeCmd(v *viper.Viper) *cobra.Command {
	var operationID string
	cmd := &cobra.Command{
		Use:   "describe [document]",
		Short: "Print the assembled metadata of operations as JSON",
		Long: `Describe assembles the metadata the generator derives for each operation
(parameter groups, request body, per-status responses, security headers,
type imports) and prints it as deterministic JSON.`,
		Example: `  opgen describe openapi.yaml
  opgen describe openapi.yaml --operation getUser`,
		Args: cobra.MaximumNArgs(1),
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindFlags(v, cmd.Flags(), describeFlags...)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			specPath, err := inputPath(v, args)
			if err != nil {
				return err
			}
			logger, err := newLogger(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			parseResult, err := loadDocument(cmd, specPath, logger)
			if err != nil {
				return err
			}

			assembler := operation.NewAssembler(parseResult.Document, operation.Options{
				GenerateContentTypeMaps: v.GetBool("content-type-maps"),
				ForceValidation:         v.GetBool("force-validation"),
				RequestPriority:         v.GetStringSlice("request-priority"),
			})

			var payload any
			if operationID != "" {
				payload, err = assembler.AssembleID(operationID)
			} else {
				payload, err = assembler.AssembleAll()
			}
			if err != nil {
				return err
			}

			data, err := operation.MarshalMetadata(payload)
			if err != nil {
				return fmt.Errorf("encoding metadata: %w", err)
			}
			cliutil.Writef(cmd.OutOrStdout(), "%s\n", data)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&operationID, "operation", "", "describe only the operation with this operationId")
	f.Bool("content-type-maps", true, "analyze every declared media type, not only the primary one")
	f.Bool("force-validation", false, "validate every response that has a schema, not only JSON ones")
	f.StringSlice("request-priority", nil, "request media types in order of preference")
	return cmd
}
