package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/softhub/internal/client/config"
	"github.com/dmitrijs2005/softhub/internal/client/models"
	"github.com/dmitrijs2005/softhub/internal/common"
)

type fakeClient struct {
	pingErr error

	items   []models.Software
	listErr error

	uploads   []models.Upload
	tokens    []string
	uploadErr error

	downloads   []string
	downloadErr error
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func (f *fakeClient) List(context.Context) ([]models.Software, error) {
	return f.items, f.listErr
}

func (f *fakeClient) Upload(_ context.Context, token string, u models.Upload) (*models.Software, error) {
	f.tokens = append(f.tokens, token)
	f.uploads = append(f.uploads, u)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &models.Software{ID: "1", Name: u.Name, Version: u.Version, ServerFilename: "x.exe"}, nil
}

func (f *fakeClient) Download(_ context.Context, name, dir string) (string, error) {
	f.downloads = append(f.downloads, name)
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	return filepath.Join(dir, name), nil
}

func testApp(t *testing.T, fc *fakeClient, input string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DownloadDir = t.TempDir()

	var out bytes.Buffer
	return newApp(cfg, fc, strings.NewReader(input), &out), &out
}

func stubSecret(t *testing.T, secret string) *int {
	t.Helper()
	calls := 0
	old := readPassword
	readPassword = func(int) ([]byte, error) {
		calls++
		return []byte(secret), nil
	}
	t.Cleanup(func() { readPassword = old })
	return &calls
}

func exeFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "setup.EXE")
	require.NoError(t, os.WriteFile(path, []byte("MZ"), 0o600))
	return path
}

func TestList_PrintsTable(t *testing.T) {
	captureOutput(t)
	fc := &fakeClient{items: []models.Software{{Name: "App", Version: "1.0", Size: 10, UploadedAt: time.Now(), ServerFilename: "a.exe"}}}
	a, out := testApp(t, fc, "")

	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "App")
	assert.Contains(t, out.String(), "a.exe")
	assert.True(t, a.online)
}

func TestList_Empty(t *testing.T) {
	lines := captureOutput(t)
	a, out := testApp(t, &fakeClient{}, "")

	require.NoError(t, a.List(context.Background()))
	assert.Empty(t, out.String())
	assert.Contains(t, *lines, "No software uploaded yet")
}

func TestList_UnavailableGoesOffline(t *testing.T) {
	captureOutput(t)
	a, _ := testApp(t, &fakeClient{listErr: fmt.Errorf("dial: %w", common.ErrUnavailable)}, "")
	a.online = true

	assert.ErrorIs(t, a.List(context.Background()), common.ErrUnavailable)
	assert.False(t, a.online)
}

func TestTree(t *testing.T) {
	captureOutput(t)
	fc := &fakeClient{items: []models.Software{
		{Name: "App", Version: "2.0", ServerFilename: "a2.exe"},
		{Name: "App", Version: "1.0", ServerFilename: "a1.exe"},
	}}
	a, out := testApp(t, fc, "")

	require.NoError(t, a.Tree(context.Background()))
	assert.True(t, strings.HasPrefix(out.String(), a.config.ServerURL))
	assert.Equal(t, 1, strings.Count(out.String(), "App\n"))
}

func TestUpload_PromptsForTokenAndFields(t *testing.T) {
	captureOutput(t)
	secretCalls := stubSecret(t, "tok")
	path := exeFile(t)

	fc := &fakeClient{}
	a, _ := testApp(t, fc, path+"\nApp\n1.0\nline one\nline two\n\n")

	require.NoError(t, a.Upload(context.Background()))
	assert.Equal(t, 1, *secretCalls)
	require.Len(t, fc.uploads, 1)
	assert.Equal(t, models.Upload{Path: path, Name: "App", Version: "1.0", Description: "line one\nline two"}, fc.uploads[0])
	assert.Equal(t, []string{"tok"}, fc.tokens)
	assert.Equal(t, "tok", a.token)
}

func TestUpload_ConfiguredTokenIsNotPrompted(t *testing.T) {
	captureOutput(t)
	secretCalls := stubSecret(t, "other")
	path := exeFile(t)

	fc := &fakeClient{}
	a, _ := testApp(t, fc, path+"\nApp\n\n\n")
	a.token = "configured"

	require.NoError(t, a.Upload(context.Background()))
	assert.Zero(t, *secretCalls)
	assert.Equal(t, []string{"configured"}, fc.tokens)
}

func TestUpload_LocalValidation(t *testing.T) {
	captureOutput(t)
	stubSecret(t, "tok")

	zip := filepath.Join(t.TempDir(), "a.zip")
	require.NoError(t, os.WriteFile(zip, []byte("PK"), 0o600))

	tests := []struct {
		name  string
		input string
	}{
		{"wrong extension", zip + "\n"},
		{"directory", t.TempDir() + "\n"},
		{"missing name", exeFile(t) + "\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{}
			a, _ := testApp(t, fc, tt.input)

			assert.ErrorIs(t, a.Upload(context.Background()), common.ErrValidation)
			assert.Empty(t, fc.uploads)
		})
	}
}

func TestUpload_UnauthorizedForgetsToken(t *testing.T) {
	captureOutput(t)
	path := exeFile(t)

	fc := &fakeClient{uploadErr: fmt.Errorf("Invalid or missing upload token: %w", common.ErrUnauthorized)}
	a, _ := testApp(t, fc, path+"\nApp\n\n\n")
	a.token = "stale"

	assert.ErrorIs(t, a.Upload(context.Background()), common.ErrUnauthorized)
	assert.Empty(t, a.token)
}

func TestSetToken_Empty(t *testing.T) {
	captureOutput(t)
	stubSecret(t, "   ")
	a, _ := testApp(t, &fakeClient{}, "")

	assert.ErrorIs(t, a.SetToken(context.Background()), common.ErrValidation)
	assert.Empty(t, a.token)
}

func TestDownload(t *testing.T) {
	lines := captureOutput(t)
	fc := &fakeClient{}
	a, _ := testApp(t, fc, "")

	require.NoError(t, a.Download(context.Background(), "a.exe"))
	assert.Equal(t, []string{"a.exe"}, fc.downloads)
	assert.Contains(t, *lines, "Saved to"+filepath.Join(a.config.DownloadDir, "a.exe"))
}

func TestRun_EndToEnd(t *testing.T) {
	lines := captureOutput(t)
	fc := &fakeClient{pingErr: common.ErrUnavailable}
	a, _ := testApp(t, fc, "download a.exe\nexit\n")

	a.Run(context.Background())

	assert.Equal(t, []string{"a.exe"}, fc.downloads)
	assert.Contains(t, *lines, "Server"+a.config.ServerURL+"is not reachable")
	assert.True(t, a.online)
}

func TestGetStatus(t *testing.T) {
	a, _ := testApp(t, &fakeClient{}, "")
	assert.Equal(t, "(http://127.0.0.1:3001, offline)", a.getStatus())

	a.online = true
	a.token = "x"
	assert.Equal(t, "(http://127.0.0.1:3001, online, token set)", a.getStatus())
}
