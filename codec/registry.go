package codec

import "sync"

// Registry maps transfer syntax UIDs (and codec names) to codecs. The
// default registry is populated by codec package init functions; a pipeline
// resolves its source and destination codecs from it exactly once at
// construction, so failure modes stay exhaustive and testable.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

// NewRegistry returns an empty registry, for callers that want a closed
// codec set independent of the global one.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

var defaultRegistry = NewRegistry()

// Register registers a codec with the default registry.
func Register(codec Codec) {
	defaultRegistry.Register(codec)
}

// Get retrieves a codec from the default registry by UID or name.
func Get(nameOrUID string) (Codec, error) {
	return defaultRegistry.Get(nameOrUID)
}

// List returns all codecs in the default registry.
func List() []Codec {
	return defaultRegistry.List()
}

// Default returns the default registry.
func Default() *Registry {
	return defaultRegistry
}

// Register registers a codec under both its transfer syntax UID and its name.
func (r *Registry) Register(codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[codec.UID()] = codec
	r.codecs[codec.Name()] = codec
}

// Get retrieves a codec by transfer syntax UID or name.
func (r *Registry) Get(nameOrUID string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codec, ok := r.codecs[nameOrUID]
	if !ok {
		return nil, ErrCodecNotFound
	}
	return codec, nil
}

// Has reports whether a codec is registered for the UID or name.
func (r *Registry) Has(nameOrUID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.codecs[nameOrUID]
	return ok
}

// List returns all registered codecs (deduplicated).
func (r *Registry) List() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Codec]bool)
	codecs := make([]Codec, 0, len(r.codecs))

	for _, codec := range r.codecs {
		if !seen[codec] {
			seen[codec] = true
			codecs = append(codecs, codec)
		}
	}

	return codecs
}
