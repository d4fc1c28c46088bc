package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/softhub/internal/client/models"
	"github.com/dmitrijs2005/softhub/internal/common"
	"github.com/dmitrijs2005/softhub/internal/netx"
)

type HTTPClient struct {
	baseURL        string
	requestTimeout time.Duration
	http           *http.Client
}

func NewHTTPClient(baseURL string, requestTimeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("server url %q: expected http(s)://host[:port]", baseURL)
	}

	return &HTTPClient{
		baseURL:        strings.TrimRight(baseURL, "/"),
		requestTimeout: requestTimeout,
		http:           &http.Client{},
	}, nil
}

func (c *HTTPClient) endpoint(path string) string {
	return c.baseURL + path
}

// withTimeout bounds short calls; transfers rely on the caller's context.
func (c *HTTPClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.requestTimeout)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/health"), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return common.ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) List(ctx context.Context) ([]models.Software, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/software"), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, mapResponseError(resp)
	}

	var items []models.Software
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode software list: %w", err)
	}
	return items, nil
}

type uploadResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Software models.Software `json:"software"`
}

// Upload streams u.Path to the server. The file is never held in memory.
func (c *HTTPClient) Upload(ctx context.Context, token string, u models.Upload) (*models.Software, error) {
	f, err := os.Open(u.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fields := []netx.FormField{
		{Name: common.FormFieldName, Value: u.Name},
		{Name: common.FormFieldVersion, Value: u.Version},
		{Name: common.FormFieldDescription, Value: u.Description},
	}
	body, contentType := netx.MultipartStream(fields, common.FormFieldFile, filepath.Base(u.Path), f)
	defer body.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/software/upload"), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(common.UploadTokenHeaderName, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, mapResponseError(resp)
	}

	var ur uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &ur.Software, nil
}

// Download fetches a payload into dir and returns the written path. The
// local name is the one offered by the server, reduced to a base name,
// falling back to serverFilename. Existing files are kept; the new copy gets
// a " (n)" suffix.
func (c *HTTPClient) Download(ctx context.Context, serverFilename, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint("/api/software/download/"+url.PathEscape(serverFilename)), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", mapResponseError(resp)
	}

	name := netx.AttachmentFilename(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = netx.SafeBaseName(serverFilename)
	}
	if name == "" {
		return "", fmt.Errorf("no usable file name for %q: %w", serverFilename, common.ErrValidation)
	}

	return writeAtomically(filepath.Join(dir, name), resp.Body)
}

func writeAtomically(path string, r io.Reader) (_ string, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.part")
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, r); err != nil {
		return "", fmt.Errorf("download interrupted: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", err
	}
	if path, err = availablePath(path); err != nil {
		return "", err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

// maxNameAttempts bounds the " (n)" suffixes tried by availablePath.
const maxNameAttempts = 1000

// availablePath returns path, or path with a " (n)" suffix before the
// extension when a file of that name already exists.
func availablePath(path string) (string, error) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	for i := 0; i < maxNameAttempts; i++ {
		candidate := path
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		_, err := os.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("no free file name for %s", path)
}
