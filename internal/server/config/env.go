package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// dotenvFiles are loaded (if present) before the environment is read.
// Variables already set in the process environment win over the files.
var dotenvFiles = []string{".env"}

// parseEnv overlays config with environment variables:
//
//	PORT                     listen port (Address becomes ":<PORT>")
//	UPLOAD_TOKEN             shared upload secret
//	SOFTHUB_REQUIRE_TOKEN    refuse to start without UPLOAD_TOKEN
//	SOFTHUB_DATA_DIR         base data directory
//	SOFTHUB_FRONTEND_DIR     pre-built frontend directory
//	SOFTHUB_MAX_UPLOAD_MB    per-file limit in MiB
//	SOFTHUB_S3_BUCKET, SOFTHUB_S3_REGION, SOFTHUB_S3_ENDPOINT,
//	SOFTHUB_S3_ACCESS_KEY, SOFTHUB_S3_SECRET_KEY, SOFTHUB_S3_PREFIX
//	SOFTHUB_SQS_QUEUE_URL, SOFTHUB_SQS_ENDPOINT
//
// Malformed numeric or boolean values panic, like malformed flags.
func parseEnv(config *Config) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.Address = ":" + v
	}
	lookupString("UPLOAD_TOKEN", &config.UploadToken)
	if v, ok := os.LookupEnv("SOFTHUB_REQUIRE_TOKEN"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		config.RequireUploadToken = b
	}
	lookupString("SOFTHUB_DATA_DIR", &config.DataDir)
	lookupString("SOFTHUB_FRONTEND_DIR", &config.FrontendDir)
	if v, ok := os.LookupEnv("SOFTHUB_MAX_UPLOAD_MB"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			panic(err)
		}
		config.MaxUploadSize = n * MiB
	}
	lookupString("SOFTHUB_S3_BUCKET", &config.S3Bucket)
	lookupString("SOFTHUB_S3_REGION", &config.S3Region)
	lookupString("SOFTHUB_S3_ENDPOINT", &config.S3BaseEndpoint)
	lookupString("SOFTHUB_S3_ACCESS_KEY", &config.S3AccessKey)
	lookupString("SOFTHUB_S3_SECRET_KEY", &config.S3SecretKey)
	lookupString("SOFTHUB_S3_PREFIX", &config.S3Prefix)
	lookupString("SOFTHUB_SQS_QUEUE_URL", &config.SQSQueueURL)
	lookupString("SOFTHUB_SQS_ENDPOINT", &config.SQSBaseEndpoint)
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
