// Package index persists the face index as a single JSON snapshot file.
// Every save rewrites the whole index: the previous snapshot is moved aside
// to "<path>.backup" (one generation, silently overwritten) and the new one
// is written to a temp file and renamed into place, so a concurrent reader
// observes either the old or the new snapshot, never a torn file.
package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/saturnino-fabrica-de-software/photodex/internal/domain"
)

// BackupSuffix is appended to the index path for the prior-snapshot file.
const BackupSuffix = ".backup"

// Store reads and writes the face index snapshot at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Save writes the full ordered record sequence to the store path. If a
// snapshot already exists it becomes the ".backup" generation first.
func (s *Store) Save(records []domain.FaceRecord) error {
	if records == nil {
		records = []domain.FaceRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal face index: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		if err := os.Rename(s.path, s.path+BackupSuffix); err != nil {
			return fmt.Errorf("backup face index: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat face index: %w", err)
	}

	// Temp file in the same directory so the final rename stays on one
	// filesystem and is atomic.
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp index file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write face index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp index file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace face index: %w", err)
	}

	return nil
}

// Load reads the snapshot. A missing file yields an empty index, not an
// error; a present but malformed file yields ErrIndexCorrupt.
func (s *Store) Load() ([]domain.FaceRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.FaceRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read face index: %w", err)
	}

	var records []domain.FaceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, domain.ErrIndexCorrupt.WithError(err)
	}

	if err := validate(records); err != nil {
		return nil, domain.ErrIndexCorrupt.WithError(err)
	}

	return records, nil
}

// validate enforces the index invariant: every embedding shares one
// dimensionality. Comparisons across mismatched dimensions are undefined,
// so a mixed index must fail fast at load time.
func validate(records []domain.FaceRecord) error {
	if len(records) == 0 {
		return nil
	}
	dim := len(records[0].Embedding)
	if dim == 0 {
		return fmt.Errorf("record %q has an empty embedding", records[0].FaceID)
	}
	for _, r := range records[1:] {
		if len(r.Embedding) != dim {
			return fmt.Errorf("record %q has embedding dimension %d, index uses %d",
				r.FaceID, len(r.Embedding), dim)
		}
	}
	return nil
}
