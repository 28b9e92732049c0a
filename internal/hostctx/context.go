// Package hostctx provides the default host data context: a thread-safe
// key-value store suitable as the value an Evaluator.GetContext returns,
// with Snapshot/Restore for round-tripping through a persister.
package hostctx

import "sync"

// Context is a thread-safe key-value store backed by sync.Map, giving
// lock-free reads for the common case of a read-mostly evaluation context
// shared across guard/action/entry/exit callback invocations.
type Context struct {
	data sync.Map
}

// New creates an empty Context.
func New() *Context {
	return &Context{}
}

// Get retrieves a value by key.
func (c *Context) Get(key string) (any, bool) {
	return c.data.Load(key)
}

// Set stores a value by key.
func (c *Context) Set(key string, val any) {
	c.data.Store(key, val)
}

// Delete removes a key-value pair.
func (c *Context) Delete(key string) {
	c.data.Delete(key)
}

// Snapshot returns a serializable copy of the context's data, suitable for
// handing to a Persister.
func (c *Context) Snapshot() map[string]any {
	snap := map[string]any{}
	c.data.Range(func(k, v any) bool {
		snap[k.(string)] = v
		return true
	})
	return snap
}

// Restore replaces the context's data from a previously taken snapshot.
func (c *Context) Restore(snap map[string]any) {
	c.data.Range(func(k, _ any) bool {
		c.data.Delete(k)
		return true
	})
	for k, v := range snap {
		c.data.Store(k, v)
	}
}
