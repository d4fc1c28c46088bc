// Package config handles configuration for the softhub server, including
// defaults, a JSON overlay, environment variables (with .env support) and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/softhub/internal/filex"
)

// MiB is one mebibyte.
const MiB = 1 << 20

// Config holds runtime settings for the softhub server.
//
// Fields:
//   - Address: bind address of the HTTP listener.
//   - UploadToken: shared secret expected in the x-upload-token header.
//   - RequireUploadToken: refuse to start without UploadToken (fail-closed).
//   - DataDir: base directory; UploadsDir and MetadataFile default below it.
//   - FrontendDir: pre-built single-page frontend served as fallback.
//   - MaxUploadSize: per-file ceiling in bytes.
//   - AllowedExtensions: accepted payload extensions, lower-case with dot.
//   - S3*: optional off-site mirror; disabled when S3Bucket is empty.
//     S3Region and the S3 keys are also used for SQS.
//   - SQS*: optional upload notifications; disabled when SQSQueueURL is empty.
type Config struct {
	Address            string
	UploadToken        string
	RequireUploadToken bool
	DataDir            string
	UploadsDir         string
	MetadataFile       string
	FrontendDir        string
	MaxUploadSize      int64
	AllowedExtensions  []string
	ShutdownTimeout    time.Duration
	S3Bucket           string
	S3Region           string
	S3BaseEndpoint     string
	S3AccessKey        string
	S3SecretKey        string
	S3Prefix           string
	SQSQueueURL        string
	SQSBaseEndpoint    string
}

// LoadDefaults populates Config with development defaults.
// UploadToken stays empty on purpose: it must come from the environment,
// a config file or a flag.
func (c *Config) LoadDefaults() {
	c.Address = ":3001"
	c.DataDir = "data"
	c.FrontendDir = filepath.Join("frontend", "dist")
	c.MaxUploadSize = 200 * MiB
	c.AllowedExtensions = []string{".exe"}
	c.ShutdownTimeout = 10 * time.Second
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// UploadTokenConfigured reports whether a shared upload secret is set.
func (c *Config) UploadTokenConfigured() bool {
	return c.UploadToken != ""
}

// MirrorEnabled reports whether uploads are mirrored to S3.
func (c *Config) MirrorEnabled() bool {
	return c.S3Bucket != ""
}

// NotifyEnabled reports whether upload events are published to SQS.
func (c *Config) NotifyEnabled() bool {
	return c.SQSQueueURL != ""
}

// Validate checks settings that do not touch the filesystem.
func (c *Config) Validate() error {
	if c.Address == "" {
		return errors.New("listen address is empty")
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.MaxUploadSize)
	}
	if len(c.AllowedExtensions) == 0 {
		return errors.New("no allowed upload extensions configured")
	}
	for i, ext := range c.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			return fmt.Errorf("invalid upload extension %q", c.AllowedExtensions[i])
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.AllowedExtensions[i] = ext
	}
	if c.RequireUploadToken && !c.UploadTokenConfigured() {
		return errors.New("upload token is required but not configured")
	}
	return nil
}

// Prepare resolves the data layout to absolute paths and creates the data
// and upload directories. It must run before the HTTP layer is wired.
func (c *Config) Prepare() error {
	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	c.DataDir = dataDir

	if c.UploadsDir == "" {
		c.UploadsDir = filepath.Join(dataDir, "uploads")
	}
	if c.UploadsDir, err = filex.EnsureDir(c.UploadsDir); err != nil {
		return fmt.Errorf("uploads dir: %w", err)
	}

	if c.MetadataFile == "" {
		c.MetadataFile = filepath.Join(dataDir, "software.json")
	}
	if c.MetadataFile, err = filepath.Abs(c.MetadataFile); err != nil {
		return fmt.Errorf("metadata file: %w", err)
	}
	if _, err := filex.EnsureDir(filepath.Dir(c.MetadataFile)); err != nil {
		return fmt.Errorf("metadata dir: %w", err)
	}

	if c.FrontendDir, err = filepath.Abs(c.FrontendDir); err != nil {
		return fmt.Errorf("frontend dir: %w", err)
	}
	return nil
}
