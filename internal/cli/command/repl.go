package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redikv/internal/cli/connection"
	"github.com/yndnr/redikv/internal/cli/output"
	"github.com/yndnr/redikv/internal/cli/repl"
)

// ReplCommand returns the repl command.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Start an interactive shell",
		Action: runRepl,
	}
}

func runRepl(c *cli.Context) error {
	s := GetSettings(c)
	mgr := connection.NewManager(s.Server, s.Timeout)
	defer mgr.Disconnect()

	formatter := output.NewFormatter(s.Format)
	w := c.App.Writer

	exec := func(ctx context.Context, args []string) error {
		if strings.EqualFold(args[0], "connect") {
			if len(args) != 2 {
				return fmt.Errorf("usage: %s", repl.CommandHelp["connect"])
			}
			return mgr.Connect(ctx, args[1])
		}
		reply, err := mgr.Do(ctx, normalize(args)...)
		if err != nil {
			return err
		}
		return formatter.Format(w, reply)
	}

	if err := mgr.Connect(c.Context, s.Server); err != nil {
		fmt.Fprintf(w, "Could not connect to %s: %v\n", s.Server, err)
	}

	r := repl.New(exec,
		repl.WithIO(c.App.Reader, w),
		repl.WithPrompt(func() string {
			if !mgr.IsConnected() {
				return "not connected> "
			}
			return mgr.Addr() + "> "
		}),
		repl.WithHistory(repl.NewHistory(s.HistoryFile, 0)),
	)
	return r.Run(c.Context)
}
