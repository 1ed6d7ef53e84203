// Package command provides the redikv-cli command tree.
//
// It uses urfave/cli/v2. With arguments and no subcommand the CLI sends
// them as one request, like redis-cli; without arguments it starts the
// interactive shell:
//
//	redikv-cli set greeting hello
//	redikv-cli -o json hgetall user:1
//	redikv-cli repl
//	redikv-cli bench -c 50 -n 100000 -t set,get
package command
