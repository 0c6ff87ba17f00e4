package cache

// Keyer builds cache keys for the values gridkit stores.
type Keyer interface {
	// PageKey is the key of a persisted page.
	PageKey(pageID string) string
	// PageIndexKey is the key of the list of known page ids.
	PageIndexKey() string
}

// DefaultKeyer produces unprefixed keys such as "page:home".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PageKey returns "page:<id>".
func (DefaultKeyer) PageKey(pageID string) string { return "page:" + pageID }

// PageIndexKey returns "index:pages".
func (DefaultKeyer) PageIndexKey() string { return "index:pages" }
