package source

// Registry is an ordered, immutable collection of sources, assembled once
// at startup and injected wherever fetching happens.
type Registry struct {
	sources []Source
	byKey   map[string]Source
}

func NewRegistry(sources ...Source) *Registry {
	r := &Registry{
		sources: sources,
		byKey:   make(map[string]Source, len(sources)),
	}
	for _, s := range sources {
		r.byKey[s.PlatformKey()] = s
	}
	return r
}

// List returns the sources in registration order.
func (r *Registry) List() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Find returns the source registered for the platform key.
func (r *Registry) Find(platformKey string) (Source, bool) {
	s, ok := r.byKey[platformKey]
	return s, ok
}
