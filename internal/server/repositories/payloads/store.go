// Package payloads stores uploaded binaries as flat files in one directory.
// File names are chosen by the caller and are never derived from user input.
package payloads

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/softhub/internal/common"
	"github.com/dmitrijs2005/softhub/internal/filex"
)

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the upload directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the location of name inside the upload directory.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Save streams r into a new file called name and returns its size and
// SHA-256 digest. At most limit bytes are accepted; anything larger fails
// with common.ErrSizeLimit; a failing r is reported as common.ErrValidation.
// On any failure the partial file is removed.
func (s *Store) Save(ctx context.Context, name string, r io.Reader, limit int64) (size int64, digest string, err error) {
	if !isPlainName(name) {
		return 0, "", fmt.Errorf("payload name %q: %w", name, common.ErrValidation)
	}

	path := s.Path(name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return 0, "", fmt.Errorf("create payload: %w", err)
	}

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = filex.RemoveIfExists(path)
		}
	}()

	hasher := sha256.New()
	src := &sourceReader{r: contextReader{ctx: ctx, r: r}}
	size, err = io.Copy(io.MultiWriter(f, hasher), io.LimitReader(src, limit+1))
	if err != nil {
		if src.err != nil && ctx.Err() == nil {
			return 0, "", fmt.Errorf("read payload: %v: %w", src.err, common.ErrValidation)
		}
		return 0, "", fmt.Errorf("write payload: %w", err)
	}
	if size > limit {
		return 0, "", fmt.Errorf("payload exceeds %d bytes: %w", limit, common.ErrSizeLimit)
	}
	if err = f.Close(); err != nil {
		return 0, "", fmt.Errorf("close payload: %w", err)
	}

	return size, hex.EncodeToString(hasher.Sum(nil)), nil
}

// Remove deletes the payload; a missing payload is not an error.
func (s *Store) Remove(name string) error {
	if !isPlainName(name) {
		return fmt.Errorf("payload name %q: %w", name, common.ErrValidation)
	}
	return filex.RemoveIfExists(s.Path(name))
}

// Stat returns the payload's file info. Missing, inaccessible or non-regular
// entries are reported as common.ErrNotFound.
func (s *Store) Stat(name string) (fs.FileInfo, error) {
	if !isPlainName(name) {
		return nil, fmt.Errorf("payload name %q: %w", name, common.ErrValidation)
	}
	fi, err := os.Stat(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("payload %s: %w", name, common.ErrNotFound)
		}
		return nil, fmt.Errorf("stat payload %s: %w", name, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("payload %s is not a file: %w", name, common.ErrNotFound)
	}
	return fi, nil
}

func isPlainName(name string) bool {
	return name != "" && name != "." && !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}

// sourceReader remembers the error of the reader side of a copy.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		s.err = err
	}
	return n, err
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
