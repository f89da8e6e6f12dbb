package cdif

import (
	"fmt"
	"reflect"
	"sync"
)

// cache is a concurrency-safe map from types to values. Reads never
// block, and the first value stored for a type wins.
type cache[V any] struct {
	m sync.Map
}

func (c *cache[V]) Get(t reflect.Type) (val V, found bool) {
	ent, ok := c.m.Load(t)
	if !ok {
		var zero V
		return zero, false
	}
	if val, ok := ent.(V); ok {
		return val, true
	}
	panic(fmt.Sprintf("mystery value %v (%T) in cache", ent, ent))
}

// Put stores val for t, unless a value is already present. It
// returns the value that is stored for t after the call, and whether
// that value was already present.
func (c *cache[V]) Put(t reflect.Type, val V) (actual V, loaded bool) {
	ent, loaded := c.m.LoadOrStore(t, val)
	return ent.(V), loaded
}
