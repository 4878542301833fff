// Package cli implements the labelctl command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/albertogalvisvml/labelpdfapp/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "labelctl"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *zap.Logger

	out        io.Writer
	loadConfig func() (*config.Config, error)
}

// New creates a CLI that prints results to out and logs through logger.
func New(out io.Writer, logger *zap.Logger) *CLI {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CLI{
		Logger:     logger,
		out:        out,
		loadConfig: config.Load,
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "labelctl renders and maintains personalised label PDFs",
		Long:         `labelctl renders 400 and 500 label PDFs offline, using the same assets, fonts and output directories as the HTTP service.`,
		SilenceUsage: true,
	}

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cleanupCommand())
	root.AddCommand(c.variantsCommand())

	return root
}

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
