package command

import "github.com/yndnr/redikv/internal/resp"

// Get returns the value stored at Key, or null.
type Get struct {
	Key string
}

// NewGet validates "get key".
func NewGet(args []resp.Frame) (*Get, error) {
	if err := checkArity("get", args, 2); err != nil {
		return nil, err
	}
	key, err := textArg("get", args, 1, "key")
	if err != nil {
		return nil, err
	}
	return &Get{Key: key}, nil
}

// Name returns "get".
func (c *Get) Name() string { return "get" }

// Execute returns the stored value or null.
func (c *Get) Execute(b Backend) resp.Frame {
	if v, ok := b.Get(c.Key); ok {
		return v
	}
	return resp.Null()
}

func (*Get) sealed() {}

// Set stores Value at Key, replacing any previous value.
type Set struct {
	Key   string
	Value resp.Frame
}

// NewSet validates "set key value".
func NewSet(args []resp.Frame) (*Set, error) {
	if err := checkArity("set", args, 3); err != nil {
		return nil, err
	}
	key, err := textArg("set", args, 1, "key")
	if err != nil {
		return nil, err
	}
	value, err := valueArg("set", args, 2)
	if err != nil {
		return nil, err
	}
	return &Set{Key: key, Value: value}, nil
}

// Name returns "set".
func (c *Set) Name() string { return "set" }

// Execute stores the value and replies OK.
func (c *Set) Execute(b Backend) resp.Frame {
	b.Set(c.Key, c.Value)
	return resp.SimpleString("OK")
}

func (*Set) sealed() {}

// Unknown is any request that does not name a supported command.
type Unknown struct {
	// Command is the requested name, empty if the frame carried none.
	Command string
}

// Name returns "unknown" so every unsupported request shares one metric
// label.
func (c *Unknown) Name() string { return "unknown" }

// Execute replies with an empty array so unsupported commands never fail
// the connection.
func (c *Unknown) Execute(Backend) resp.Frame {
	return resp.Array()
}

func (*Unknown) sealed() {}
