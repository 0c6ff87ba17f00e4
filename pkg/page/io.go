package page

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/gridkit/pkg/errors"
)

// Marshal encodes p as indented JSON.
func Marshal(p *Page) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode page: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a persisted page. Malformed JSON is an INVALID_PAGE
// error; missing layout fields are not (see [Deserialize]).
func Unmarshal(data []byte) (*Page, error) {
	var p Page
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPage, err, "decode page")
	}
	return &p, nil
}

// Read decodes a persisted page from r. It does not close r.
func Read(r io.Reader) (*Page, error) {
	var p Page
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPage, err, "decode page")
	}
	return &p, nil
}

// Write encodes p as indented JSON to w.
func Write(w io.Writer, p *Page) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	return nil
}

// ReadFile reads a persisted page from path.
func ReadFile(path string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// WriteFile writes p to path atomically: the page is written to a
// temporary file in the same directory and renamed into place.
func WriteFile(path string, p *Page) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".page-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
