package layout

import (
	"sync"

	"go.uber.org/zap"
)

// Registry owns the derivation cache: named descriptors (Struct, Enum)
// resolve to the same *Encoding on every call, so the reflection-shaped
// analysis cost is paid once per type. The cache is insert-if-absent under
// a lock; a concurrent first derivation of the same name is a benign race
// resolved first-write-wins, and a failed derivation is never cached.
//
// A Registry is created at startup, populated lazily, and never invalidated
// mid-process. Most callers use the package-level Derive against the
// default registry; tests that need isolation construct their own.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Encoding
	log    *zap.Logger
}

// RegistryOption configures a Registry at construction.
type RegistryOption func(*Registry)

// WithLogger routes derivation events to the given logger instead of the
// package logger.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) { r.log = l }
}

// NewRegistry creates an empty derivation cache.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{byName: make(map[string]*Encoding)}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = Logger()
	}
	return r
}

// Derive resolves a descriptor into its compiled Encoding, reusing the
// cached result for named descriptors. It is idempotent; all failures are
// structural and reported here, never deferred to encode or decode.
func (r *Registry) Derive(d Descriptor) (*Encoding, error) {
	name := descriptorName(d)
	if name != "" {
		r.mu.RLock()
		cached, ok := r.byName[name]
		r.mu.RUnlock()
		if ok {
			return cached, nil
		}
	}

	enc, err := r.resolve(d)
	if err != nil {
		return nil, err
	}

	if name != "" {
		r.mu.Lock()
		if existing, ok := r.byName[name]; ok {
			r.mu.Unlock()
			return existing, nil
		}
		r.byName[name] = enc
		r.mu.Unlock()
		r.log.Debug("derived encoding",
			zap.String("name", name),
			zap.Int("size", enc.size),
			zap.Int("slots", enc.arity()))
	}
	return enc, nil
}

// descriptorName returns the cache key for named descriptors, or "" for
// structural ones that are cheap to re-derive.
func descriptorName(d Descriptor) string {
	switch t := d.(type) {
	case Struct:
		return t.Name
	case Enum:
		return t.Name
	default:
		return ""
	}
}

var defaultRegistry = NewRegistry()

// Derive resolves a descriptor against the shared default registry.
func Derive(d Descriptor) (*Encoding, error) {
	return defaultRegistry.Derive(d)
}

// MustDerive is Derive for statically known-good descriptors; it panics on
// schema errors.
func MustDerive(d Descriptor) *Encoding {
	enc, err := Derive(d)
	if err != nil {
		panic(err)
	}
	return enc
}
