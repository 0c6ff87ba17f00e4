package store

import (
	"context"
	"time"

	"github.com/matzehuels/gridkit/pkg/observability"
	"github.com/matzehuels/gridkit/pkg/page"
)

// instrumented reports loads and saves of the wrapped store to the
// registered observability hooks.
type instrumented struct {
	Store
	backend string
}

// Instrument wraps s so that Load and Save are reported to
// observability.Store under the given backend name.
func Instrument(backend string, s Store) Store {
	return &instrumented{Store: s, backend: backend}
}

func (s *instrumented) Load(ctx context.Context, pageID string) (*page.Page, error) {
	start := time.Now()
	p, err := s.Store.Load(ctx, pageID)
	observability.Store().OnLoad(ctx, s.backend, pageID, time.Since(start), err)
	return p, err
}

func (s *instrumented) Save(ctx context.Context, pageID string, p *page.Page) error {
	start := time.Now()
	err := s.Store.Save(ctx, pageID, p)
	observability.Store().OnSave(ctx, s.backend, pageID, p.Len(), time.Since(start), err)
	return err
}
