package command

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redikv/internal/cli/connection"
	"github.com/yndnr/redikv/internal/cli/output"
)

// ExecCommand returns the exec command.
func ExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Send one command and print the reply",
		ArgsUsage: "COMMAND [ARG...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("command required")
			}
			return execArgs(c, c.Args().Slice())
		},
	}
}

func execArgs(c *cli.Context, args []string) error {
	s := GetSettings(c)
	client, err := connection.Dial(c.Context, s.Server, s.Timeout)
	if err != nil {
		return err
	}
	defer client.Close()

	reply, err := client.Do(c.Context, normalize(args)...)
	if err != nil {
		return err
	}
	return output.NewFormatter(s.Format).Format(c.App.Writer, reply)
}
