package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/canopy"
)

const appName = "canopy"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose  bool
	defaults string
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Canopy inspects and converts 2D scene documents",
		Long:         `Canopy validates, formats, compares and previews retained-mode 2D scene graphs stored as JSON or YAML documents.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.defaults, "defaults", "", "TOML file with rendering defaults")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.fmtCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.viewCommand())

	return root
}

// setup applies the persistent flags before any command runs.
func (c *CLI) setup(cmd *cobra.Command) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		canopy.SetLogger(c.Logger.WithPrefix(appName))
	}
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))

	if c.defaults == "" {
		return nil
	}
	d, err := canopy.LoadDefaults(c.defaults)
	if err != nil {
		return err
	}
	canopy.SetDefaults(d)
	c.Logger.Debug("loaded defaults", "path", c.defaults)
	return nil
}

// readInput reads path, or the command's stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// loadNode reads and deserializes a document, stopping at the first
// validation error.
func loadNode(cmd *cobra.Command, path string) (canopy.Node, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	n, err := canopy.Parse(data, canopy.NewValidationContext())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	loggerFromContext(cmd.Context()).Debug("loaded document", "path", path, "type", n.TypeName())
	return n, nil
}
