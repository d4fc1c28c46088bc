package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/softhub/internal/common"
	"github.com/dmitrijs2005/softhub/internal/logging"
	sc "github.com/dmitrijs2005/softhub/internal/server/config"
	"github.com/dmitrijs2005/softhub/internal/server/mirror"
	"github.com/dmitrijs2005/softhub/internal/server/notify"
	"github.com/dmitrijs2005/softhub/internal/server/models"
	"github.com/dmitrijs2005/softhub/internal/server/repositories/metadata"
)

// PayloadStore is the payload storage used by SoftwareService.
type PayloadStore interface {
	Save(ctx context.Context, name string, r io.Reader, limit int64) (int64, string, error)
	Remove(name string) error
	Stat(name string) (fs.FileInfo, error)
	Path(name string) string
}

type SoftwareService struct {
	config   *sc.Config
	records  metadata.Repository
	payloads PayloadStore
	mirror   mirror.Mirror
	notifier notify.Notifier
	logger   logging.Logger

	now   func() time.Time
	newID func() string
}

// NewSoftwareService wires the upload, listing and download workflow.
// m and n may be nil when mirroring or notifications are disabled.
func NewSoftwareService(c *sc.Config, records metadata.Repository, payloads PayloadStore, m mirror.Mirror, n notify.Notifier, l logging.Logger) *SoftwareService {
	return &SoftwareService{
		config:   c,
		records:  records,
		payloads: payloads,
		mirror:   m,
		notifier: n,
		logger:   l.With("module", "software_service"),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Authorize checks the caller's upload token against the configured secret.
// A missing secret is a configuration error, distinct from a bad token.
func (s *SoftwareService) Authorize(ctx context.Context, token string) error {
	if !s.config.UploadTokenConfigured() {
		s.logger.Error(ctx, "upload rejected: upload token is not configured", "critical", true)
		return fmt.Errorf("upload token not configured: %w", common.ErrConfiguration)
	}
	if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.config.UploadToken)) != 1 {
		s.logger.Warn(ctx, "upload rejected: invalid upload token")
		return common.ErrUnauthorized
	}
	return nil
}

// CheckFilename validates the uploaded file's extension against the allow
// list (case-insensitive) and returns the extension as supplied.
func (s *SoftwareService) CheckFilename(filename string) (string, error) {
	ext := filepath.Ext(baseName(filename))
	lower := strings.ToLower(ext)
	for _, allowed := range s.config.AllowedExtensions {
		if lower == allowed {
			return ext, nil
		}
	}
	return "", fmt.Errorf("only %s files are allowed, got %q: %w",
		strings.Join(s.config.AllowedExtensions, ", "), filename, common.ErrValidation)
}

// StorePayload streams r into the upload directory under a fresh random
// name that keeps the original extension.
func (s *SoftwareService) StorePayload(ctx context.Context, originalFilename string, r io.Reader) (*models.StoredPayload, error) {
	ext, err := s.CheckFilename(originalFilename)
	if err != nil {
		return nil, err
	}

	serverFilename := s.newID() + ext

	size, digest, err := s.payloads.Save(ctx, serverFilename, r, s.config.MaxUploadSize)
	if err != nil {
		if errors.Is(err, common.ErrSizeLimit) {
			s.logger.Warn(ctx, "upload rejected: size limit exceeded", "limit", s.config.MaxUploadSize)
			return nil, err
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		if errors.Is(err, common.ErrValidation) {
			s.logger.Warn(ctx, "upload rejected: body could not be read", "error", err)
			return nil, fmt.Errorf("malformed multipart body: %w", common.ErrValidation)
		}
		s.logger.Error(ctx, "storing payload failed", "server_filename", serverFilename, "error", err)
		return nil, fmt.Errorf("store payload: %w", common.ErrStorage)
	}

	s.logger.Debug(ctx, "payload stored", "server_filename", serverFilename, "size", size)

	return &models.StoredPayload{
		OriginalFilename: baseName(originalFilename),
		ServerFilename:   serverFilename,
		Size:             size,
		SHA256:           digest,
	}, nil
}

// Discard removes a stored payload that will not get a record.
// Failures are logged only.
func (s *SoftwareService) Discard(ctx context.Context, p *models.StoredPayload) {
	if p == nil {
		return
	}
	if err := s.payloads.Remove(p.ServerFilename); err != nil {
		s.logger.Warn(ctx, "cleanup of orphaned payload failed", "server_filename", p.ServerFilename, "error", err)
	}
}

// Register creates the metadata record for a stored payload. A missing name
// deletes the payload and fails validation; a metadata write failure deletes
// the payload and fails with a storage error.
func (s *SoftwareService) Register(ctx context.Context, p *models.StoredPayload, meta models.SoftwareMeta) (*models.SoftwareRecord, error) {
	name := strings.TrimSpace(meta.Name)
	if name == "" {
		s.Discard(ctx, p)
		return nil, fmt.Errorf("software name is required: %w", common.ErrValidation)
	}

	record := models.SoftwareRecord{
		ID:               s.newID(),
		Name:             name,
		Version:          strings.TrimSpace(meta.Version),
		Description:      strings.TrimSpace(meta.Description),
		OriginalFilename: p.OriginalFilename,
		ServerFilename:   p.ServerFilename,
		UploadedAt:       s.now(),
		Size:             p.Size,
		SHA256:           p.SHA256,
	}

	if err := s.records.Append(ctx, record); err != nil {
		s.logger.Error(ctx, "saving metadata failed", "server_filename", p.ServerFilename, "error", err)
		s.Discard(ctx, p)
		return nil, fmt.Errorf("save metadata: %w", common.ErrStorage)
	}

	s.logger.Info(ctx, "software uploaded",
		"id", record.ID, "name", record.Name, "version", record.Version,
		"server_filename", record.ServerFilename, "size", record.Size)

	s.mirrorPayload(ctx, record.ServerFilename)
	s.notifyUploaded(ctx, record)

	return &record, nil
}

func (s *SoftwareService) mirrorPayload(ctx context.Context, serverFilename string) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.Put(ctx, serverFilename, s.payloads.Path(serverFilename)); err != nil {
		s.logger.Warn(ctx, "mirroring payload failed", "server_filename", serverFilename, "error", err)
		return
	}
	s.logger.Debug(ctx, "payload mirrored", "server_filename", serverFilename)
}

func (s *SoftwareService) notifyUploaded(ctx context.Context, record models.SoftwareRecord) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SoftwareUploaded(ctx, record); err != nil {
		s.logger.Warn(ctx, "upload notification failed", "id", record.ID, "error", err)
	}
}

// List returns all records, most recent upload first.
func (s *SoftwareService) List(ctx context.Context) ([]models.SoftwareRecord, error) {
	records, err := s.records.ReadAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "reading metadata failed", "error", err)
		return nil, fmt.Errorf("read metadata: %w", common.ErrStorage)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].UploadedAt.After(records[j].UploadedAt)
	})
	return records, nil
}

// Resolve maps a stored filename to a payload on disk. The name is checked
// for path separators and ".." before the filesystem is touched. The
// download name comes from the matching record when there is one.
func (s *SoftwareService) Resolve(ctx context.Context, serverFilename string) (*models.Download, error) {
	if err := ValidateServerFilename(serverFilename); err != nil {
		s.logger.Warn(ctx, "download rejected: unsafe filename", "server_filename", serverFilename)
		return nil, err
	}

	fi, err := s.payloads.Stat(serverFilename)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		s.logger.Error(ctx, "stat payload failed", "server_filename", serverFilename, "error", err)
		return nil, fmt.Errorf("stat payload: %w", common.ErrNotFound)
	}

	download := &models.Download{
		Path:     s.payloads.Path(serverFilename),
		Filename: serverFilename,
		Size:     fi.Size(),
	}

	records, err := s.records.ReadAll(ctx)
	if err != nil {
		s.logger.Warn(ctx, "metadata lookup for download failed, using stored name", "error", err)
		return download, nil
	}
	for _, r := range records {
		if r.ServerFilename == serverFilename && r.OriginalFilename != "" {
			download.Filename = r.OriginalFilename
			break
		}
	}
	return download, nil
}

// ValidateServerFilename rejects empty names, ".", names with a path
// separator and names containing "..".
func ValidateServerFilename(name string) error {
	if name == "" || name == "." || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid filename %q: %w", name, common.ErrValidation)
	}
	return nil
}

// baseName strips any client-side directory from an uploaded filename.
func baseName(filename string) string {
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		return filename[i+1:]
	}
	return filename
}
