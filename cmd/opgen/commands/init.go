package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/opgen/internal/cliutil"
	"github.com/erraggy/opgen/internal/fileutil"
)

// fileConfig is the layout of .opgen.yaml. Keys match the generate flags.
type fileConfig struct {
	Input            string      `yaml:"input"`
	Output           string      `yaml:"output"`
	Validate         bool        `yaml:"validate"`
	ContinueOnError  bool        `yaml:"continue-on-error"`
	UnknownResponses bool        `yaml:"unknown-responses"`
	ContentTypeMaps  bool        `yaml:"content-type-maps"`
	ForceValidation  bool        `yaml:"force-validation"`
	Concurrency      int         `yaml:"concurrency"`
	BaseURL          string      `yaml:"base-url"`
	RequestPriority  []string    `yaml:"request-priority"`
	Log              logSettings `yaml:"log"`
}

type logSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaultFileConfig(input string) fileConfig {
	return fileConfig{
		Input:           input,
		Output:          defaultOutputDir,
		ContentTypeMaps: true,
		RequestPriority: []string{},
		Log:             logSettings{Level: defaultLogLevel, Format: defaultLogFormat},
	}
}

func newInitCmd() *cobra.Command {
	var (
		force bool
		dir   string
		input string
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + configFileName,
		Long: `Init writes ` + configFileName + ` with the default settings of every generate
flag. An existing file is not overwritten unless --force is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("failed to resolve path: %w", err)
			}
			path := filepath.Join(absDir, configFileName)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists. Use --force to overwrite", configFileName)
			}

			var buf bytes.Buffer
			enc := yaml.NewEncoder(&buf)
			enc.SetIndent(2)
			if err := enc.Encode(defaultFileConfig(input)); err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			if err := enc.Close(); err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			if err := os.MkdirAll(absDir, fileutil.DirMode); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", absDir, err)
			}
			if err := os.WriteFile(path, buf.Bytes(), fileutil.ReadableByAll); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			cliutil.Writef(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	cmd.Flags().StringVarP(&dir, "path", "p", ".", "directory to write the config file to")
	cmd.Flags().StringVar(&input, "input", "openapi.yaml", "document path to record as input")
	return cmd
}
