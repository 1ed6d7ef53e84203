// Package repl provides the interactive shell of redikv-cli.
//
// Lines are split into arguments the way redis-cli does (see SplitArgs)
// and handed to an Executor. The shell itself handles help, history,
// exit and quit. History is kept across sessions in a file.
package repl
