package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codywizlet/arse/internal/config"
	"github.com/codywizlet/arse/internal/render"
)

var newCmd = &cobra.Command{
	Use:   "new [dir]",
	Short: "Generate a base directory structure and configuration file for a new site",
	Long: `Generate a new site interactively: prompts for the site name, author,
and comma-separated topics, creates the site directory tree, seeds the
starter template, and writes config.toml. If no directory is given the site
is generated in the current working directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	var dir string
	if len(args) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current working directory: %w", err)
		}
		dir = cwd
	} else {
		dir = args[0]
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create site directory %q: %w", dir, err)
		}
	}

	builder := config.NewBuilderWithOutput(logger, cmd.OutOrStdout())
	cfg, err := builder.Generate(dir, cmd.InOrStdin())
	if err != nil {
		return err
	}

	if err := render.WriteDefaultTemplate(cfg.Docpaths.Templates); err != nil {
		return err
	}

	logger.Info(context.Background(), "site generated",
		"dir", dir, "topics", len(cfg.Site.Topics))
	fmt.Fprintf(cmd.OutOrStdout(), "Site generated in %s\n", dir)
	return nil
}
