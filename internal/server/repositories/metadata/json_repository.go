package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/softhub/internal/server/models"
)

const workInProgressSuffix = ".wip"

type JSONRepository struct {
	path string
	mu   sync.Mutex
}

func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{path: path}
}

// Path returns the metadata file location.
func (r *JSONRepository) Path() string {
	return r.path
}

func (r *JSONRepository) ReadAll(ctx context.Context) ([]models.SoftwareRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.readAll()
}

func (r *JSONRepository) WriteAll(ctx context.Context, records []models.SoftwareRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeAll(records)
}

func (r *JSONRepository) Append(ctx context.Context, record models.SoftwareRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.readAll()
	if err != nil {
		return err
	}

	return r.writeAll(append(records, record))
}

func (r *JSONRepository) readAll() ([]models.SoftwareRecord, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.SoftwareRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata %s: %w", r.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []models.SoftwareRecord{}, nil
	}

	var records []models.SoftwareRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", r.path, err)
	}
	if records == nil {
		records = []models.SoftwareRecord{}
	}
	return records, nil
}

// writeAll writes to a temporary sibling and renames it over the target,
// so readers see either the old or the new file, never a torn one.
func (r *JSONRepository) writeAll(records []models.SoftwareRecord) (err error) {
	if records == nil {
		records = []models.SoftwareRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	dir, base := filepath.Split(r.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, base+".*"+workInProgressSuffix)
	if err != nil {
		return fmt.Errorf("create temporary metadata file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync metadata: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close metadata: %w", err)
	}
	if err = os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("replace metadata file %s: %w", r.path, err)
	}
	return nil
}
