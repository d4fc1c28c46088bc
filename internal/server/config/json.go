package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/softhub/internal/flagx"
	"github.com/dmitrijs2005/softhub/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Absent keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	Address            *string         `json:"address"`
	UploadToken        *string         `json:"upload_token"`
	RequireUploadToken *bool           `json:"require_upload_token"`
	DataDir            *string         `json:"data_dir"`
	UploadsDir         *string         `json:"uploads_dir"`
	MetadataFile       *string         `json:"metadata_file"`
	FrontendDir        *string         `json:"frontend_dir"`
	MaxUploadSizeMiB   *int64          `json:"max_upload_size_mib"`
	AllowedExtensions  []string        `json:"allowed_extensions"`
	ShutdownTimeout    *timex.Duration `json:"shutdown_timeout"`
	S3Bucket           *string         `json:"s3_bucket"`
	S3Region           *string         `json:"s3_region"`
	S3BaseEndpoint     *string         `json:"s3_base_endpoint"`
	S3AccessKey        *string         `json:"s3_access_key"`
	S3SecretKey        *string         `json:"s3_secret_key"`
	S3Prefix           *string         `json:"s3_prefix"`
	SQSQueueURL        *string         `json:"sqs_queue_url"`
	SQSBaseEndpoint    *string         `json:"sqs_base_endpoint"`
}

// parseJson loads the file named by -c / -config (if any) into config.
// It panics when the file cannot be read or is not valid JSON.
func parseJson(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&config.Address, jc.Address)
	setString(&config.UploadToken, jc.UploadToken)
	if jc.RequireUploadToken != nil {
		config.RequireUploadToken = *jc.RequireUploadToken
	}
	setString(&config.DataDir, jc.DataDir)
	setString(&config.UploadsDir, jc.UploadsDir)
	setString(&config.MetadataFile, jc.MetadataFile)
	setString(&config.FrontendDir, jc.FrontendDir)
	if jc.MaxUploadSizeMiB != nil {
		config.MaxUploadSize = *jc.MaxUploadSizeMiB * MiB
	}
	if jc.AllowedExtensions != nil {
		config.AllowedExtensions = jc.AllowedExtensions
	}
	if jc.ShutdownTimeout != nil {
		config.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
	setString(&config.S3Bucket, jc.S3Bucket)
	setString(&config.S3Region, jc.S3Region)
	setString(&config.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&config.S3AccessKey, jc.S3AccessKey)
	setString(&config.S3SecretKey, jc.S3SecretKey)
	setString(&config.S3Prefix, jc.S3Prefix)
	setString(&config.SQSQueueURL, jc.SQSQueueURL)
	setString(&config.SQSBaseEndpoint, jc.SQSBaseEndpoint)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
