// Package connection provides connections from redikv-cli to a server.
//
// Client sends one request at a time as an array of bulk strings and
// decodes the reply. Pool shares Clients between goroutines, and Manager
// tracks the server the interactive shell is connected to.
package connection
