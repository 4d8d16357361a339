package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

// PingCommand returns the ping command.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:   "ping",
		Usage:  "Check that the server answers",
		Action: pingAction,
	}
}

func pingAction(c *cli.Context) error {
	client := NewClient(c)
	defer client.Close()

	rtt, err := client.Ping()
	if err != nil {
		return fmt.Errorf("ping %s: %w", client.Addr(), err)
	}
	fmt.Fprintf(writer(c), "PONG from %s in %s\n", client.Addr(), rtt.Round(time.Microsecond))
	return nil
}
