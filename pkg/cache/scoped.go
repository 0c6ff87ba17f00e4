package cache

// ScopedKeyer wraps a Keyer with a prefix so several sites, or several
// deployments sharing one Redis, keep separate namespaces.
//
//	keys := NewScopedKeyer(NewDefaultKeyer(), "gridkit:shop-42:")
//	keys.PageKey("home") // "gridkit:shop-42:page:home"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PageKey returns the prefixed page key.
func (k *ScopedKeyer) PageKey(pageID string) string {
	return k.prefix + k.inner.PageKey(pageID)
}

// PageIndexKey returns the prefixed index key.
func (k *ScopedKeyer) PageIndexKey() string {
	return k.prefix + k.inner.PageIndexKey()
}
