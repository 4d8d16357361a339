package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/rudis-go/internal/cli/output"
)

// ExecCommand returns the exec command.
func ExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Aliases:   []string{"x"},
		Usage:     "Send one command and print the reply",
		ArgsUsage: "VERB [ARG...]",
		Action:    execAction,
	}
}

func execAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("command required")
	}
	line := strings.Join(c.Args().Slice(), " ")

	f, err := Formatter(c)
	if err != nil {
		return err
	}

	client := NewClient(c)
	defer client.Close()

	reply, err := client.Execute(line)
	if err != nil {
		return err
	}
	return f.Format(writer(c), output.NewReply(line, reply))
}
