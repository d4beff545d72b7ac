package s3fs

import "time"

// Config holds S3 backend settings with environment variable support.
type Config struct {
	Bucket         string `env:"S3_BUCKET"`
	Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_ACCESS_KEY"`
	// Endpoint and ForcePathStyle are for S3-compatible services like MinIO.
	Endpoint       string `env:"S3_ENDPOINT"`
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`

	// Prefix is the key prefix that acts as the file system root ("site" serves site/*).
	Prefix string `env:"S3_PREFIX"`

	// Timeout bounds metadata calls (HEAD and LIST) made while opening files.
	Timeout time.Duration `env:"S3_TIMEOUT" envDefault:"10s"`
}
