// Package config loads typed settings from the environment.
//
// Load and MustLoad read a .env file from the working directory once (a
// missing file is fine), parse `env` struct tags with caarlos0/env and cache
// the result per type, so every package asking for the same type sees the
// same values.
//
// The file server keeps one config type per concern and nests them in the
// command's own struct:
//
//	type Config struct {
//		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//
//		Server     server.Config // SERVER_ADDR, SERVER_READ_TIMEOUT, ...
//		FileServer static.Config // FILESERVER_ROOT, FILESERVER_DIRECTORY_BROWSING, ...
//		S3         s3fs.Config   // S3_BUCKET, S3_PREFIX, ...
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg) // panics at startup on a malformed value
//
// A single section can be loaded on its own as well:
//
//	var fsCfg static.Config
//	if err := config.Load(&fsCfg); err != nil {
//		return err
//	}
//
// # Caching
//
// The first successful Load of a type is copied into every later call for
// that type; changing the environment afterwards has no effect. Failed
// loads are not cached. Different types are cached independently, so
// static.Config loaded alone and the same fields inside the command's
// Config are separate entries.
//
// # Errors
//
// Load returns ErrNilTarget for a nil pointer, and a "config: parse <type>"
// error wrapping the caarlos0/env error for missing required variables or
// values that do not parse.
package config
