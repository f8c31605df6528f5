// Package cli implements the placegraph command-line interface.
//
// The commands build a small sample building model in memory and drive the
// placement engine against it:
//   - demo: edit one object's placement and show every write it implies
//   - decompose: validate a 4x4 matrix and split it into origin and axes
//   - graph: render the sample placement graph (DOT, SVG, JSON, PDF, PNG)
//   - guid: generate and convert IFC GlobalIds
//   - config: print the effective configuration
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// carried in the command context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/placegraph/pkg/buildinfo"
	"github.com/matzehuels/placegraph/pkg/config"
	"github.com/matzehuels/placegraph/pkg/observability"
	"github.com/matzehuels/placegraph/pkg/placement"
)

// appName is the application name used for directories and display.
const appName = "placegraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Placegraph edits object placements in a building model",
		Long:         `Placegraph maintains the placement graph of a building model: it re-expresses an edited object's transform against the right parent, propagates the change to dependents and never leaves unreferenced placements behind.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/placegraph/config.toml)")

	root.AddCommand(c.demoCommand())
	root.AddCommand(c.decomposeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.guidCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, applies the log level and attaches the
// logger and logging hooks.
func (c *CLI) setup(cmd *cobra.Command) error {
	path := c.configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := cfg.Level()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	hooks := newLogHooks(c.Logger)
	observability.SetEditHooks(hooks)
	observability.SetGraphHooks(hooks)
	observability.SetRenderHooks(hooks)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// engineFor returns a placement engine over store configured from c.Config.
func (c *CLI) engineFor(store placement.Store) *placement.Engine {
	return placement.New(store, c.Config.EngineOptions(c.Logger))
}
