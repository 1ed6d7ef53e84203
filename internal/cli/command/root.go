package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/yndnr/redikv/internal/cli/config"
	"github.com/yndnr/redikv/internal/cli/output"
	"github.com/yndnr/redikv/internal/infra/buildinfo"
)

const settingsKey = "settings"

// Settings are the resolved connection and output options.
type Settings struct {
	Server      string
	Format      output.Format
	Timeout     time.Duration
	HistoryFile string
}

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "redikv-cli",
		Usage:     "redikv command-line client",
		ArgsUsage: "[COMMAND ARG...]",
		Version:   buildinfo.String(),
		Flags:     globalFlags(),
		Commands: []*cli.Command{
			ExecCommand(),
			ReplCommand(),
			BenchCommand(),
		},
		Metadata: map[string]any{},
		Before:   loadSettings,
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return execArgs(c, c.Args().Slice())
			}
			return runRepl(c)
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "server address host:port",
			EnvVars: []string{"REDIKV_CLI_SERVER"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: text, json, yaml",
			EnvVars: []string{"REDIKV_CLI_OUTPUT"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "dial and request timeout",
			EnvVars: []string{"REDIKV_CLI_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "CLI config file (default ~/.redikv/cli.yaml)",
			EnvVars: []string{"REDIKV_CLI_CONFIG"},
		},
	}
}

// loadSettings merges the config file with flags, flags winning.
func loadSettings(c *cli.Context) error {
	cfg, err := cliconfig.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("load cli config: %w", err)
	}
	if c.IsSet("server") {
		cfg.Server = c.String("server")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}

	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}
	c.App.Metadata[settingsKey] = &Settings{
		Server:      cfg.Server,
		Format:      format,
		Timeout:     cfg.Timeout,
		HistoryFile: cfg.HistoryFile,
	}
	return nil
}

// GetSettings returns the settings resolved by the app's Before hook.
func GetSettings(c *cli.Context) *Settings {
	if s, ok := c.App.Metadata[settingsKey].(*Settings); ok {
		return s
	}
	return &Settings{Server: cliconfig.Default().Server, Format: output.FormatText}
}

// normalize lowercases the command name; the server matches names
// case-sensitively.
func normalize(args []string) []string {
	out := append([]string(nil), args...)
	if len(out) > 0 {
		out[0] = strings.ToLower(out[0])
	}
	return out
}
