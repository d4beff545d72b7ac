package main

import (
	"github.com/dmitrymomot/fileserver/core/server"
	"github.com/dmitrymomot/fileserver/core/static"
	"github.com/dmitrymomot/fileserver/integration/s3fs"
)

type Config struct {
	AppName    string `env:"APP_NAME" envDefault:"fileserver"`
	AppEnv     string `env:"APP_ENV" envDefault:"production"` // development or production
	AppVersion string `env:"APP_VERSION" envDefault:""`
	// LogLevel and LogFormat override the APP_ENV preset when set
	LogLevel  string `env:"LOG_LEVEL" envDefault:""`
	LogFormat string `env:"LOG_FORMAT" envDefault:""` // text or json

	// Security headers suited for public static content
	SecurityHeaders bool `env:"SECURITY_HEADERS" envDefault:"true"`
	// Keep X-Request-ID sent by a fronting proxy
	TrustRequestID bool `env:"TRUST_REQUEST_ID" envDefault:"false"`
	// Read client IPs from X-Forwarded-For and X-Real-IP
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	Server     server.Config
	FileServer static.Config
	// S3 replaces the local root when S3_BUCKET is set
	S3 s3fs.Config
}
