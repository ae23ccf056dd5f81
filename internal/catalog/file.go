// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/libris/pkg/types"
)

const fileVersion = 1

// file is the on-disk layout of the generated catalog. It is a cache of
// the base collection, not a source of truth.
type file struct {
	Version     int            `json:"version"`
	GeneratedAt time.Time      `json:"generated_at"`
	Entries     []types.Record `json:"entries"`
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if f.Version > fileVersion {
		return nil, fmt.Errorf("catalog %s has version %d, newer than supported %d", path, f.Version, fileVersion)
	}

	c, err := New(f.Entries)
	if err != nil {
		return nil, fmt.Errorf("validating catalog %s: %w", path, err)
	}
	return c, nil
}

// Save writes the catalog to path, creating parent directories. The file
// is written to a temporary name and renamed so readers never observe a
// partial catalog.
func (c *Catalog) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}

	data, err := json.MarshalIndent(file{
		Version:     fileVersion,
		GeneratedAt: time.Now().UTC(),
		Entries:     c.entries,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("creating temp catalog: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing catalog %s: %w", path, err)
	}
	return nil
}

// Initialize builds a catalog from the base collection and writes it to path.
func Initialize(path string) (*Catalog, error) {
	c, err := New(BaseCollection())
	if err != nil {
		return nil, fmt.Errorf("building base collection: %w", err)
	}
	if err := c.Save(path); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadOrInit loads the catalog at path, regenerating it from the base
// collection when the file does not exist. A file that exists but cannot
// be parsed is an error; regenerating it would hide the problem.
func LoadOrInit(path string, log zerolog.Logger) (*Catalog, error) {
	c, err := Load(path)
	if err == nil {
		log.Debug().Str("path", path).Int("entries", c.Len()).Msg("catalog loaded")
		return c, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	log.Info().Str("path", path).Msg("catalog file missing, regenerating from base collection")
	return Initialize(path)
}
