package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/softhub/internal/common"
	"github.com/dmitrijs2005/softhub/internal/logging"
	"github.com/dmitrijs2005/softhub/internal/server/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ---- fakes ----

type fakeService struct {
	authErr    error
	authCalls  int
	storeCalls int

	records []models.SoftwareRecord
	listErr error

	download   *models.Download
	resolveErr error
}

func (f *fakeService) Authorize(context.Context, string) error {
	f.authCalls++
	return f.authErr
}

func (f *fakeService) StorePayload(_ context.Context, name string, r io.Reader) (*models.StoredPayload, error) {
	f.storeCalls++
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return nil, err
	}
	return &models.StoredPayload{OriginalFilename: name, ServerFilename: "x.exe", Size: n}, nil
}

func (f *fakeService) Discard(context.Context, *models.StoredPayload) {}

func (f *fakeService) Register(_ context.Context, p *models.StoredPayload, meta models.SoftwareMeta) (*models.SoftwareRecord, error) {
	return &models.SoftwareRecord{ID: "1", Name: meta.Name, ServerFilename: p.ServerFilename, Size: p.Size}, nil
}

func (f *fakeService) List(context.Context) ([]models.SoftwareRecord, error) {
	return f.records, f.listErr
}

func (f *fakeService) Resolve(context.Context, string) (*models.Download, error) {
	return f.download, f.resolveErr
}

// ---- helpers ----

func newTestServer(t *testing.T, svc SoftwareService, frontendDir string) *HTTPServer {
	t.Helper()
	return NewHTTPServer("127.0.0.1:0", frontendDir, time.Second, logging.Nop{}, svc)
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error
}

// ---- tests ----

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeService{}, t.TempDir())

	w := do(t, s.Handler(), httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{common.ErrConfiguration, http.StatusInternalServerError, "Server configuration error: upload token is not configured"},
		{common.ErrUnauthorized, http.StatusUnauthorized, "Invalid or missing upload token"},
		{fmt.Errorf("x: %w", common.ErrSizeLimit), http.StatusBadRequest, "File too large"},
		{fmt.Errorf("bad thing: %w", common.ErrValidation), http.StatusBadRequest, "bad thing"},
		{fmt.Errorf("gone: %w", common.ErrNotFound), http.StatusNotFound, "File not found"},
		{fmt.Errorf("write /secret/path: %w", common.ErrStorage), http.StatusInternalServerError, "Internal server error"},
		{errors.New("surprise"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, msg := errorResponse(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestList_StorageFailure(t *testing.T) {
	s := newTestServer(t, &fakeService{listErr: fmt.Errorf("read metadata: %w", common.ErrStorage)}, t.TempDir())

	w := do(t, s.Handler(), httptest.NewRequest(http.MethodGet, "/api/software", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeError(t, w))
}

func TestList_EmptyIsArray(t *testing.T) {
	s := newTestServer(t, &fakeService{records: []models.SoftwareRecord{}}, t.TempDir())

	w := do(t, s.Handler(), httptest.NewRequest(http.MethodGet, "/api/software", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUpload_TokenCheckedBeforeBody(t *testing.T) {
	for _, authErr := range []error{common.ErrUnauthorized, common.ErrConfiguration} {
		svc := &fakeService{authErr: authErr}
		s := newTestServer(t, svc, t.TempDir())

		body, ct := multipartBody(t, map[string]string{common.FormFieldName: "a"}, "a.exe", "data")
		req := httptest.NewRequest(http.MethodPost, "/api/software/upload", body)
		req.Header.Set("Content-Type", ct)

		w := do(t, s.Handler(), req)
		status, _ := errorResponse(authErr)
		assert.Equal(t, status, w.Code)
		assert.Equal(t, 1, svc.authCalls)
		assert.Zero(t, svc.storeCalls)
	}
}

func TestUpload_NotMultipart(t *testing.T) {
	s := newTestServer(t, &fakeService{}, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/api/software/upload", strings.NewReader(`{"name":"a"}`))
	req.Header.Set("Content-Type", "application/json")

	w := do(t, s.Handler(), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "multipart/form-data")
}

func TestUpload_FieldTooLong(t *testing.T) {
	svc := &fakeService{}
	s := newTestServer(t, svc, t.TempDir())

	long := strings.Repeat("d", maxFieldSize+1)
	body, ct := multipartBody(t, map[string]string{common.FormFieldDescription: long}, "a.exe", "x")
	req := httptest.NewRequest(http.MethodPost, "/api/software/upload", body)
	req.Header.Set("Content-Type", ct)

	w := do(t, s.Handler(), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), common.FormFieldDescription)
}

func TestDownload_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", fmt.Errorf("bad: %w", common.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("missing: %w", common.ErrNotFound), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &fakeService{resolveErr: tt.err}, t.TempDir())
			w := do(t, s.Handler(), httptest.NewRequest(http.MethodGet, "/api/software/download/a.exe", nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestFrontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(dir), "outside.txt"), []byte("secret"), 0o600))

	s := newTestServer(t, &fakeService{}, dir)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"root", http.MethodGet, "/", http.StatusOK, "<html>app</html>"},
		{"asset", http.MethodGet, "/assets/app.js", http.StatusOK, "console.log(1)"},
		{"spa route", http.MethodGet, "/software/42", http.StatusOK, "<html>app</html>"},
		{"directory falls back", http.MethodGet, "/assets", http.StatusOK, "<html>app</html>"},
		{"traversal stays inside", http.MethodGet, "/../outside.txt", http.StatusOK, "<html>app</html>"},
		{"head", http.MethodHead, "/anything", http.StatusOK, ""},
		{"post is not frontend", http.MethodPost, "/anything", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s.Handler(), httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestFrontend_MissingEntry(t *testing.T) {
	dir := t.TempDir()
	s := newTestServer(t, &fakeService{}, dir)

	w := do(t, s.Handler(), httptest.NewRequest(http.MethodGet, "/whatever", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Frontend entry not found at "+filepath.Join(dir, "index.html"), w.Body.String())
}
