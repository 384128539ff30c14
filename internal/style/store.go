// Package style implements the voice style archive: a container of named
// 3-D style arrays ([511, 1, 256] float32) loaded from a ZIP of .npy files,
// plus the selection algorithm (single voice, weighted blend, and
// language-default fallback) used to pick the style row fed into the model.
package style

import (
	"archive/zip"
	"fmt"
	"path"
	"sort"
	"strings"
)

// RowWidth is the style vector width carried in each array's last dimension.
const RowWidth = 256

// MaxRows is the number of pre-pad token-length rows each style array holds.
const MaxRows = 511

// Store holds every named style array loaded from an archive, keyed by
// voice name (the .npy member's base name without extension).
type Store struct {
	names []string
	rows  map[string][][RowWidth]float32
}

// Load reads every .npy member of a ZIP style archive into memory. Voice
// names are sorted for stable diagnostic listing via Names.
func Load(archivePath string) (*Store, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open style archive: %w", err)
	}
	defer zr.Close()

	s := &Store{rows: make(map[string][][RowWidth]float32)}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || path.Ext(f.Name) != ".npy" {
			continue
		}
		name := strings.TrimSuffix(path.Base(f.Name), ".npy")

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open style member %q: %w", f.Name, err)
		}
		arr, err := readNPY(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("decode style member %q: %w", f.Name, err)
		}

		rows, err := reshapeRows(arr)
		if err != nil {
			return nil, fmt.Errorf("style member %q: %w", f.Name, err)
		}

		s.rows[name] = rows
		s.names = append(s.names, name)
	}

	sort.Strings(s.names)
	return s, nil
}

func reshapeRows(arr *array) ([][RowWidth]float32, error) {
	if len(arr.shape) != 3 || arr.shape[1] != 1 || arr.shape[2] != RowWidth {
		return nil, fmt.Errorf("unexpected style array shape %v, want [N, 1, %d]", arr.shape, RowWidth)
	}
	n := arr.shape[0]
	rows := make([][RowWidth]float32, n)
	for i := 0; i < n; i++ {
		copy(rows[i][:], arr.data[i*RowWidth:(i+1)*RowWidth])
	}
	return rows, nil
}

// Names returns every voice name present in the store, sorted.
func (s *Store) Names() []string {
	return append([]string(nil), s.names...)
}

// Has reports whether name is a known voice in the store.
func (s *Store) Has(name string) bool {
	_, ok := s.rows[name]
	return ok
}

// Row returns the style row at pre-pad token length l for the named voice,
// clamped to the array's available row count (mirroring the reference
// clamp-to-last-row behavior for inputs longer than MaxRows).
func (s *Store) Row(name string, l int) ([RowWidth]float32, bool) {
	rows, ok := s.rows[name]
	if !ok || len(rows) == 0 {
		return [RowWidth]float32{}, false
	}
	if l < 0 {
		l = 0
	}
	if l >= len(rows) {
		l = len(rows) - 1
	}
	return rows[l], true
}
