package command

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/rudis-go/internal/cli/config"
	"github.com/yndnr/rudis-go/internal/cli/connection"
	"github.com/yndnr/rudis-go/internal/cli/output"
	"github.com/yndnr/rudis-go/internal/infra/buildinfo"
)

const metaConfig = "config"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "rudis-cli",
		Usage:   "command-line client for rudis",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ExecCommand(),
			REPLCommand(),
			PingCommand(),
		},
		Before: loadConfig,
		Action: replAction,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI config file (default ~/.rudis/cli.yaml)",
			EnvVars: []string{"RUDIS_CLI_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "rudis server address (e.g., 127.0.0.1:6666)",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "how long to wait for a reply",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: text, json, yaml",
		},
	}
}

// loadConfig reads the config file and environment, then applies flags
// that were set explicitly.
func loadConfig(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.IsSet("server") {
		cfg.Server = c.String("server")
	}
	if c.IsSet("timeout") {
		cfg.ReplyTimeout = c.Duration("timeout")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if err := config.Verify(cfg); err != nil {
		return err
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[metaConfig] = cfg
	return nil
}

// GetConfig retrieves the resolved configuration from context.
func GetConfig(c *cli.Context) *config.CLIConfig {
	if cfg, ok := c.App.Metadata[metaConfig].(*config.CLIConfig); ok {
		return cfg
	}
	return config.Default()
}

// NewClient builds a client from the resolved configuration.
func NewClient(c *cli.Context) *connection.Client {
	cfg := GetConfig(c)
	return connection.NewClient(cfg.Server,
		connection.WithDialTimeout(cfg.DialTimeout),
		connection.WithReplyTimeout(cfg.ReplyTimeout),
	)
}

// Formatter returns the formatter for the configured output format.
func Formatter(c *cli.Context) (output.Formatter, error) {
	format, err := output.ParseFormat(GetConfig(c).Output)
	if err != nil {
		return nil, err
	}
	return output.NewFormatter(format), nil
}

func writer(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
