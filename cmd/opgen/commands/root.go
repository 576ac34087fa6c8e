// Package commands provides the cobra command tree of the opgen CLI.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/erraggy/opgen"
	"github.com/erraggy/opgen/internal/cliutil"
)

// NewRootCmd builds the opgen command tree. Each call gets its own viper
// instance, so a tree can be executed repeatedly in tests.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "opgen",
		Short: "Generate typed TypeScript clients from OpenAPI documents",
		Long: `opgen turns every operation of an OpenAPI 3.x document into a typed
TypeScript function that validates its responses with zod and returns a
discriminated union keyed by status code.

Settings are read from flags, OPGEN_* environment variables and a
.opgen.yaml file in the current directory, in that order of precedence.`,
		Version:       opgen.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(v, cfgFile)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default: ./.opgen.yaml)")
	pf.String("log-level", defaultLogLevel, "log level: debug, info, warn or error")
	pf.String("log-format", defaultLogFormat, "log format: text or json")
	bindFlag(v, "log.level", pf.Lookup("log-level"))
	bindFlag(v, "log.format", pf.Lookup("log-format"))

	root.AddCommand(
		newGenerateCmd(v),
		newDescribeCmd(v),
		newMCPCmd(v),
		newInitCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure. SIGINT and SIGTERM
// cancel the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bindFlag binds a flag to a viper key. The flags are declared in this
// package, so a failure is a programming error.
func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

// bindFlags binds each named flag of fs to the viper key of the same name.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, names ...string) {
	for _, name := range names {
		bindFlag(v, name, fs.Lookup(name))
	}
}
