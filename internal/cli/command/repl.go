package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/rudis-go/internal/cli/repl"
)

// REPLCommand returns the repl command.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Start an interactive prompt",
		Action: replAction,
	}
}

func replAction(c *cli.Context) error {
	f, err := Formatter(c)
	if err != nil {
		return err
	}

	client := NewClient(c)
	defer client.Close()

	history := repl.NewHistory(GetConfig(c).HistoryFile)
	if err := history.Load(); err != nil {
		PrintError("load history: %v", err)
	}
	defer func() {
		if err := history.Save(); err != nil {
			PrintError("save history: %v", err)
		}
	}()

	opts := []repl.Option{repl.WithFormatter(f), repl.WithHistory(history)}
	if c.App.Reader != nil && c.App.Writer != nil {
		opts = append(opts, repl.WithIO(c.App.Reader, c.App.Writer))
	}
	return repl.New(client, client.Addr(), opts...).Run()
}
