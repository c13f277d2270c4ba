package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codywizlet/arse/internal/config"
	"github.com/codywizlet/arse/internal/render"
	"github.com/codywizlet/arse/internal/server"
)

var runCmd = &cobra.Command{
	Use:   "run <config>",
	Short: "Run the site server",
	Long: `Run the site server described by the given configuration file. The
templates directory is watched while serving, so template edits are picked
up without a restart.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	builder := config.NewBuilder(logger)
	cfg, err := builder.FromPath(args[0])
	if err != nil {
		return err
	}

	engine, err := render.NewEngine(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := server.New(cfg, engine, logger)
	logger.Info(ctx, "creating server", "addr", srv.Addr())
	return srv.Start(ctx)
}
