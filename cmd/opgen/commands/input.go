package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erraggy/opgen/internal/cliutil"
	"github.com/erraggy/opgen/openapi"
)

// inputPath returns the document named on the command line, falling back to
// the input config key.
func inputPath(v *viper.Viper, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if path := v.GetString("input"); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("no input document: pass a file path, '-' for stdin, or set input in %s", configFileName)
}

// loadDocument parses the document at path, reading stdin for "-".
func loadDocument(cmd *cobra.Command, path string, logger openapi.Logger) (*openapi.ParseResult, error) {
	opts := []openapi.Option{openapi.WithLogger(logger)}
	if path == cliutil.StdinFilePath {
		opts = append(opts, openapi.WithReader(cmd.InOrStdin()), openapi.WithSourceName("<stdin>"))
	} else {
		opts = append(opts, openapi.WithFilePath(path))
	}
	result, err := openapi.ParseWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", cliutil.FormatSpecPath(path), err)
	}
	return result, nil
}
