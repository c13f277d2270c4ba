// Package cmd provides the command-line interface for the site engine.
//
// The engine has two jobs: `arse new` generates a site's directory tree and
// configuration interactively, and `arse run <config>` serves a generated
// site. Log verbosity is controlled with the persistent -v flag (repeat for
// more detail) or the ARSE_LOG_FORMAT / ARSE_LOG_LEVEL environment variables.
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/codywizlet/arse/internal/logging"
)

var (
	verbosity int
	logger    logging.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "arse",
	Short: "A Go site engine",
	Long: `A Go site engine renders topic-organized markdown content into a
served website.

Quick Start:
  arse new                  Generate a new site in the current directory
  arse run config.toml      Run the site server for a generated site`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	bindLogFlags(rootCmd.PersistentFlags())
}

// bindLogFlags wires the logging flags onto a flag set and binds them into
// viper so ARSE_* environment variables can override them.
func bindLogFlags(fs *pflag.FlagSet) {
	fs.CountVarP(&verbosity, "verbose", "v",
		"sets the log level; default INFO, -v for DEBUG, -vv for TRACE")
	fs.String("log-format", "text", "log format (text or json)")
	viper.BindPFlag("log.format", fs.Lookup("log-format"))
}

// initLogging builds the process logger from the -v count plus any ARSE_*
// environment overrides. Runs before every subcommand.
func initLogging() {
	viper.SetEnvPrefix("ARSE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	level := logging.FromVerbosity(verbosity)
	if env := viper.GetString("log.level"); env != "" {
		switch strings.ToUpper(env) {
		case "TRACE":
			level = logging.LevelTrace
		case "DEBUG":
			level = logging.LevelDebug
		case "WARN":
			level = logging.LevelWarn
		case "ERROR":
			level = logging.LevelError
		}
	}

	logger = logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: viper.GetString("log.format"),
		Output: os.Stderr,
	})
}
