package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erraggy/opgen"
	"github.com/erraggy/opgen/internal/cliutil"
	"github.com/erraggy/opgen/generator"
)

// generateFlags are bound to viper keys of the same name when generate runs.
// describe declares some of the same flags; binding at run time keeps the
// running command's flags authoritative.
var generateFlags = []string{
	"output", "check", "strict", "validate", "continue-on-error",
	"unknown-responses", "content-type-maps", "force-validation",
	"concurrency", "base-url", "request-priority",
}

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [document]",
		Short: "Generate a TypeScript client from an OpenAPI document",
		Long: `Generate writes schemas.ts, operations.ts and the supporting runtime
modules for every operation that declares an operationId. Files whose
content did not change are left untouched; --check writes nothing and fails
when the output directory is stale.`,
		Example: `  opgen generate openapi.yaml -o ./src/api
  opgen generate --check openapi.yaml -o ./src/api
  cat openapi.yaml | opgen generate - --unknown-responses
  OPGEN_CONTINUE_ON_ERROR=true opgen generate openapi.yaml`,
		Args: cobra.MaximumNArgs(1),
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindFlags(v, cmd.Flags(), generateFlags...)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, v, args)
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", defaultOutputDir, "output directory for generated files")
	f.Bool("check", false, "write nothing; fail when generated files are out of date")
	f.Bool("strict", false, "fail on warnings as well as critical issues")
	f.Bool("validate", false, "validate the document with kin-openapi before generating")
	f.Bool("continue-on-error", false, "skip failing operations instead of aborting")
	f.Bool("unknown-responses", false, "return undeclared statuses as UnknownApiResponse instead of throwing")
	f.Bool("content-type-maps", true, "generate request and response content-type maps")
	f.Bool("force-validation", false, "validate every response that has a schema, not only JSON ones")
	f.Int("concurrency", 0, "operation worker pool size (default: number of CPUs)")
	f.String("base-url", "", "default base URL of the client (default: the first server URL)")
	f.StringSlice("request-priority", nil, "request media types in order of preference")
	return cmd
}

func runGenerate(cmd *cobra.Command, v *viper.Viper, args []string) error {
	specPath, err := inputPath(v, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(v, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	startTime := time.Now()
	parseResult, err := loadDocument(cmd, specPath, logger)
	if err != nil {
		return err
	}

	opts := []generator.Option{
		generator.WithContext(cmd.Context()),
		generator.WithParsed(*parseResult),
		generator.WithLogger(logger),
		generator.WithConcurrency(v.GetInt("concurrency")),
		generator.WithContentTypeMaps(v.GetBool("content-type-maps")),
		generator.WithForceValidation(v.GetBool("force-validation")),
		generator.WithUnknownResponseMode(v.GetBool("unknown-responses")),
		generator.WithContinueOnError(v.GetBool("continue-on-error")),
		generator.WithValidation(v.GetBool("validate")),
		generator.WithIncludeInfo(false),
	}
	if baseURL := v.GetString("base-url"); baseURL != "" {
		opts = append(opts, generator.WithBaseURL(baseURL))
	}
	if priority := v.GetStringSlice("request-priority"); len(priority) > 0 {
		opts = append(opts, generator.WithRequestContentTypePriority(priority...))
	}

	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("generating client: %w", err)
	}
	totalTime := time.Since(startTime)

	out := cmd.OutOrStdout()
	outputDir := v.GetString("output")
	check := v.GetBool("check")

	cliutil.Writef(out, "OpenAPI Client Generator\n")
	cliutil.Writef(out, "========================\n\n")
	cliutil.Writef(out, "opgen version: %s\n", opgen.Version())
	cliutil.Writef(out, "Specification: %s\n", cliutil.FormatSpecPath(specPath))
	cliutil.Writef(out, "OAS Version: %s\n", result.SourceVersion)
	cliutil.Writef(out, "Types: %d\n", result.GeneratedTypes)
	cliutil.Writef(out, "Operations: %d\n", result.GeneratedOperations)
	cliutil.Writef(out, "Total Time: %v\n\n", totalTime)

	printIssues(out, result.Issues)

	summary, err := result.WriteFilesWithOptions(outputDir, generator.WriteOptions{Check: check})
	if err != nil {
		return err
	}

	if check {
		cliutil.Writef(out, "✓ %s is up to date (%d files)\n", outputDir, len(summary.Unchanged))
	} else {
		cliutil.Writef(out, "Generated Files (%d written, %d unchanged):\n", len(summary.Written), len(summary.Unchanged))
		for _, name := range summary.Written {
			cliutil.Writef(out, "  - %s/%s\n", outputDir, name)
		}
		cliutil.Writef(out, "\n")
	}

	switch {
	case !result.Success:
		cliutil.Writef(out, "✗ Generation completed with %d critical issue(s)\n", result.CriticalCount)
		return fmt.Errorf("generation failed with %d critical issue(s)", result.CriticalCount)
	case v.GetBool("strict") && result.WarningCount+result.ErrorCount > 0:
		cliutil.Writef(out, "✗ Generation completed with %d warning(s) and %d error(s)\n", result.WarningCount, result.ErrorCount)
		return fmt.Errorf("strict mode: %d warning(s), %d error(s)", result.WarningCount, result.ErrorCount)
	case !check:
		cliutil.Writef(out, "✓ Generation successful")
		if result.WarningCount > 0 || result.ErrorCount > 0 {
			cliutil.Writef(out, " (%d warnings, %d errors)", result.WarningCount, result.ErrorCount)
		}
		cliutil.Writef(out, "\n")
	}
	return nil
}

func printIssues(w io.Writer, list []generator.GenerateIssue) {
	if len(list) == 0 {
		return
	}
	cliutil.Writef(w, "Generation Issues (%d):\n", len(list))
	for _, issue := range list {
		cliutil.Writef(w, "  %s\n", issue.String())
	}
	cliutil.Writef(w, "\n")
}
