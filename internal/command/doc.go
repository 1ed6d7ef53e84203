// Package command turns decoded request frames into typed commands and
// executes them against a Backend.
//
// Supported requests (element count includes the command name):
//
//	get key                 2
//	set key value           3
//	hget key field          3
//	hset key field value    4
//	hgetall key             2
//
// Names are matched literally in lowercase. Anything else, including a
// non-array frame, parses as Unknown, which replies with an empty array.
// A recognized name with the wrong arity or argument types fails with an
// error matching ErrInvalidArguments.
package command
