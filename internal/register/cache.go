package register

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"faceconsole/internal/form"
)

// DraftCache persists the non-binary fields of a draft on each submit
// attempt, keyed by a generated draft identifier, so a form can be recovered
// after a failed submission. Images are never cached. Single writer, single
// reader; no locking needed.
type DraftCache struct {
	dir string
}

// CachedDraft is the on-disk shape of one cached draft.
type CachedDraft struct {
	ID       string            `json:"id"`
	Category form.Category     `json:"category"`
	Fields   map[string]string `json:"fields"`
}

// NewDraftCache creates the cache directory if needed.
func NewDraftCache(dir string) (*DraftCache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("could not create draft cache directory: %w", err)
	}
	return &DraftCache{dir: dir}, nil
}

func (c *DraftCache) path(id string) string {
	return filepath.Join(c.dir, id+".json")
}

// Save writes one draft's fields to disk.
func (c *DraftCache) Save(id string, category form.Category, fields map[string]string) error {
	data, err := json.MarshalIndent(CachedDraft{ID: id, Category: category, Fields: fields}, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal draft: %w", err)
	}
	if err := os.WriteFile(c.path(id), data, 0600); err != nil {
		return fmt.Errorf("could not write draft: %w", err)
	}
	return nil
}

// Load reads one cached draft back.
func (c *DraftCache) Load(id string) (*CachedDraft, error) {
	data, err := os.ReadFile(c.path(id))
	if err != nil {
		return nil, fmt.Errorf("could not read draft: %w", err)
	}
	var draft CachedDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("could not unmarshal draft: %w", err)
	}
	return &draft, nil
}

// List returns every cached draft, ordered by file name.
func (c *DraftCache) List() ([]*CachedDraft, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("could not read draft cache directory: %w", err)
	}
	var drafts []*CachedDraft
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		draft, err := c.Load(entry.Name()[:len(entry.Name())-len(".json")])
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// Remove deletes a cached draft once its registration succeeded.
func (c *DraftCache) Remove(id string) error {
	err := os.Remove(c.path(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not remove draft: %w", err)
	}
	return nil
}
