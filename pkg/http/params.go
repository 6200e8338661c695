package http

import (
	"fmt"
	"sort"

	"github.com/spf13/cast"
)

// Param is a single query parameter. Value must be a scalar: a string, any
// integer or float type, or a bool.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered set of query parameters. Keys are unique when built
// through Set; BuildURL also collapses duplicates to their last value.
type Params []Param

// Set assigns value to key. An existing key keeps its position and takes the
// new value; a new key is appended.
func (p Params) Set(key string, value any) Params {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return append(p, Param{Key: key, Value: value})
}

// Get returns the value stored for key.
func (p Params) Get(key string) (any, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// Len returns the number of params.
func (p Params) Len() int {
	return len(p)
}

// ParamsFromMap converts a map into Params ordered by key, since map iteration
// order is random.
func ParamsFromMap(m map[string]string) Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make(Params, 0, len(keys))
	for _, k := range keys {
		params = append(params, Param{Key: k, Value: m[k]})
	}
	return params
}

func stringify(value any) (string, error) {
	switch value.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return cast.ToStringE(value)
	}
	return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
}
