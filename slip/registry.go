// slip/registry.go
package slip

import (
	"sync"

	"stockroom/model"
)

// Registry holds the pending slip of each session, one per kind. A pending
// slip has a single logical owner; two sessions never share a builder, so
// conflicts can only surface at commit time through the store's uniqueness
// check.
type Registry struct {
	mu       sync.Mutex
	builders map[registryKey]*Builder
}

type registryKey struct {
	sessionToken string
	kind         model.Kind
}

func NewRegistry() *Registry {
	return &Registry{builders: make(map[registryKey]*Builder)}
}

// Get returns the session's builder for a kind, creating it on first use.
func (r *Registry) Get(sessionToken string, kind model.Kind, directory Directory) *Builder {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey{sessionToken: sessionToken, kind: kind}
	b, ok := r.builders[key]
	if !ok {
		b = NewBuilder(kind, directory)
		r.builders[key] = b
	}
	return b
}

// Discard drops a session's pending slip, e.g. after a successful commit.
// Nothing has been written for an abandoned slip, so no store rollback is
// needed.
func (r *Registry) Discard(sessionToken string, kind model.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.builders, registryKey{sessionToken: sessionToken, kind: kind})
}
