package store

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/gridkit/pkg/cache"
	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/page"
)

// KVStore keeps each page as a JSON value in a cache backend, plus an
// index value listing every page. Transient backend failures are retried
// with backoff.
//
// The index is updated with a read-modify-write under a process-local
// lock, so concurrent writers in different processes can lose index
// entries (never page data).
type KVStore struct {
	cache cache.Cache
	keys  cache.Keyer
	mu    sync.Mutex
	now   func() time.Time
}

// NewKVStore stores pages in c under keys from keys. A nil keyer uses
// cache.NewDefaultKeyer.
func NewKVStore(c cache.Cache, keys cache.Keyer) *KVStore {
	if keys == nil {
		keys = cache.NewDefaultKeyer()
	}
	return &KVStore{cache: c, keys: keys, now: time.Now}
}

// Load reads and decodes a page.
func (s *KVStore) Load(ctx context.Context, pageID string) (*page.Page, error) {
	if err := errors.ValidateID(pageID); err != nil {
		return nil, err
	}
	data, hit, err := s.get(ctx, s.keys.PageKey(pageID))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load page %s", pageID)
	}
	if !hit {
		return nil, notFound(pageID)
	}
	return page.Unmarshal(data)
}

// Save encodes and writes a page, then records it in the index.
func (s *KVStore) Save(ctx context.Context, pageID string, p *page.Page) error {
	if err := errors.ValidateID(pageID); err != nil {
		return err
	}
	data, err := page.Marshal(p)
	if err != nil {
		return err
	}
	if err := s.set(ctx, s.keys.PageKey(pageID), data); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save page %s", pageID)
	}

	sum := summarize(pageID, p, s.now())
	return s.updateIndex(ctx, func(idx []Summary) []Summary {
		idx = slices.DeleteFunc(idx, func(e Summary) bool { return e.ID == pageID })
		return append(idx, sum)
	})
}

// Delete removes a page and its index entry.
func (s *KVStore) Delete(ctx context.Context, pageID string) error {
	if err := errors.ValidateID(pageID); err != nil {
		return err
	}
	err := cache.RetryWithBackoff(ctx, func() error {
		return s.cache.Delete(ctx, s.keys.PageKey(pageID))
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete page %s", pageID)
	}
	return s.updateIndex(ctx, func(idx []Summary) []Summary {
		return slices.DeleteFunc(idx, func(e Summary) bool { return e.ID == pageID })
	})
}

// List returns the index, sorted by page id.
func (s *KVStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readIndex(ctx)
}

// Close closes the underlying cache.
func (s *KVStore) Close() error {
	return s.cache.Close()
}

func (s *KVStore) get(ctx context.Context, key string) (data []byte, hit bool, err error) {
	err = cache.RetryWithBackoff(ctx, func() error {
		var gerr error
		data, hit, gerr = s.cache.Get(ctx, key)
		return gerr
	})
	return data, hit, err
}

func (s *KVStore) set(ctx context.Context, key string, data []byte) error {
	return cache.RetryWithBackoff(ctx, func() error {
		return s.cache.Set(ctx, key, data, 0)
	})
}

func (s *KVStore) readIndex(ctx context.Context) ([]Summary, error) {
	data, hit, err := s.get(ctx, s.keys.PageIndexKey())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read page index")
	}
	idx := []Summary{}
	if hit {
		if err := json.Unmarshal(data, &idx); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "decode page index")
		}
	}
	slices.SortFunc(idx, func(a, b Summary) int { return strings.Compare(a.ID, b.ID) })
	return idx, nil
}

func (s *KVStore) updateIndex(ctx context.Context, fn func([]Summary) []Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.readIndex(ctx)
	if err != nil {
		return err
	}
	idx = fn(idx)
	data, err := json.Marshal(idx)
	if err != nil {
		return err
	}
	if err := s.set(ctx, s.keys.PageIndexKey(), data); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write page index")
	}
	return nil
}

var _ Store = (*KVStore)(nil)
