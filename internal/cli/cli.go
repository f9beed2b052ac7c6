// Package cli implements the releasecache command-line interface.
//
// # Commands
//
//   - serve: run the HTTP service
//   - check: run one update check from the terminal
//   - registry list: show the repositories that may be checked
//   - store show|path|clear: inspect or reset the cached releases
//   - config show: print the effective configuration
//   - version, completion
//
// All commands read the same config file (--config, or releasecache.toml /
// releasecache.yaml in the working directory or the user config directory)
// and support --verbose (-v) for debug-level logging.
package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/t1nkr/releasecache/internal/config"
	"github.com/t1nkr/releasecache/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = buildinfo.Name

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// configNames are the file names searched when --config is not given.
var configNames = []string{appName + ".toml", appName + ".yaml", appName + ".yml"}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
}

// New creates a new CLI instance logging to w.
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
		Use:           appName,
		Short:         "releasecache caches GitHub release information for update checks",
		Long:          `releasecache answers "is there a newer release?" for an allow-list of GitHub repositories, caching each answer so that clients never hit GitHub's rate limits.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.registryCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the config and applies its log settings. --verbose wins
// over log.level.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.configPath
	if path == "" {
		path = findConfig()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		c.Logger.Debug("config loaded", "path", path)
	}

	if !c.verbose {
		if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
			c.SetLogLevel(level)
		} else {
			c.Logger.Warn("unknown log level, keeping default", "level", cfg.Log.Level)
		}
	}
	setLogFormat(c.Logger, cfg.Log.Format)
	return cfg, nil
}

// findConfig returns the first config file found in the working directory
// or the user config directory, or "" when there is none.
func findConfig() string {
	dirs := []string{"."}
	if dir, err := configDir(); err == nil {
		dirs = append(dirs, dir)
	}
	for _, dir := range dirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// configDir returns the config directory using XDG standard (~/.config/releasecache/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if home == "" {
		return "", errors.New("no home directory")
	}
	return filepath.Join(home, ".config", appName), nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func trimSlug(s string) string {
	return strings.Trim(strings.TrimSpace(s), "/")
}
