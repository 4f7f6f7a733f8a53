// Package cli implements the gestures command-line interface.
//
// The CLI replays touch scripts through the gesture engine, serves a
// websocket bridge that lets a remote device drive a gesture session, and
// writes starter config files. It is built on cobra and logs through
// charmbracelet/log; --verbose switches to debug level, which also turns on
// the engine's session tracing.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/gestures"
)

const appName = "gestures"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var version = "dev"

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI that logs to w at the given level. Command output goes
// to the command's configured stdout.
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
		Short:        "Drive and inspect the gestures transform engine",
		Long:         `gestures replays recorded touch scripts through the drag, pinch-rotate and pinch-scale engine, and bridges live touch streams over a websocket.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.AddCommand(c.replayCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	return root
}

// loadConfig returns the defaults when path is empty.
func loadConfig(ctx context.Context, path string) (gestures.Config, error) {
	if path == "" {
		return gestures.DefaultConfig(), nil
	}
	cfg, err := gestures.LoadConfigFile(path)
	if err != nil {
		return gestures.Config{}, err
	}
	loggerFromContext(ctx).Debug("loaded config", "path", path)
	return cfg, nil
}

// newGesture creates a gesture that traces through the context logger when
// it is at debug level.
func newGesture(ctx context.Context, name string, cfg gestures.Config) *gestures.Gesture {
	logger := loggerFromContext(ctx)
	g := gestures.New(name, cfg)
	g.SetLogger(logger)
	g.SetDebugMode(logger.GetLevel() <= log.DebugLevel)
	return g
}
