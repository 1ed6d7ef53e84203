package command

import "github.com/yndnr/redikv/internal/resp"

// HGet returns Field of the hash at Key, or null.
type HGet struct {
	Key   string
	Field string
}

// NewHGet validates "hget key field".
func NewHGet(args []resp.Frame) (*HGet, error) {
	if err := checkArity("hget", args, 3); err != nil {
		return nil, err
	}
	key, err := textArg("hget", args, 1, "key")
	if err != nil {
		return nil, err
	}
	field, err := fieldArg("hget", args, 2)
	if err != nil {
		return nil, err
	}
	return &HGet{Key: key, Field: field}, nil
}

// Name returns "hget".
func (c *HGet) Name() string { return "hget" }

// Execute returns the stored field value or null.
func (c *HGet) Execute(b Backend) resp.Frame {
	if v, ok := b.HGet(c.Key, c.Field); ok {
		return v
	}
	return resp.Null()
}

func (*HGet) sealed() {}

// HSet stores Value in Field of the hash at Key.
type HSet struct {
	Key   string
	Field string
	Value resp.Frame
}

// NewHSet validates "hset key field value".
func NewHSet(args []resp.Frame) (*HSet, error) {
	if err := checkArity("hset", args, 4); err != nil {
		return nil, err
	}
	key, err := textArg("hset", args, 1, "key")
	if err != nil {
		return nil, err
	}
	field, err := fieldArg("hset", args, 2)
	if err != nil {
		return nil, err
	}
	value, err := valueArg("hset", args, 3)
	if err != nil {
		return nil, err
	}
	return &HSet{Key: key, Field: field, Value: value}, nil
}

// Name returns "hset".
func (c *HSet) Name() string { return "hset" }

// Execute always replies 1, whether the field was added or overwritten.
func (c *HSet) Execute(b Backend) resp.Frame {
	b.HSet(c.Key, c.Field, c.Value)
	return resp.Integer(1)
}

func (*HSet) sealed() {}

// HGetAll returns every field of the hash at Key as a map, or null when
// the hash does not exist.
type HGetAll struct {
	Key string
}

// NewHGetAll validates "hgetall key".
func NewHGetAll(args []resp.Frame) (*HGetAll, error) {
	if err := checkArity("hgetall", args, 2); err != nil {
		return nil, err
	}
	key, err := textArg("hgetall", args, 1, "key")
	if err != nil {
		return nil, err
	}
	return &HGetAll{Key: key}, nil
}

// Name returns "hgetall".
func (c *HGetAll) Name() string { return "hgetall" }

// Execute returns the hash as a map, or null when the key holds no hash.
func (c *HGetAll) Execute(b Backend) resp.Frame {
	fields, ok := b.HGetAll(c.Key)
	if !ok {
		return resp.Null()
	}
	return resp.Map(fields)
}

func (*HGetAll) sealed() {}
