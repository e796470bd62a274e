package featureflag

// Static holds flags set in code. Tests and local runs use it.
type Static struct {
	*registry
}

func NewStatic(values map[string]bool) *Static {
	s := &Static{registry: newRegistry()}
	s.registry.replace(copyValues(values))
	return s
}

// Set flips one flag and notifies its listeners.
func (s *Static) Set(key string, on bool) {
	s.registry.mu.RLock()
	values := copyValues(s.registry.values)
	s.registry.mu.RUnlock()

	values[key] = on
	s.registry.replace(values)
}

func copyValues(values map[string]bool) map[string]bool {
	res := make(map[string]bool, len(values))
	for k, v := range values {
		res[k] = v
	}
	return res
}
