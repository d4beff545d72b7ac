package s3fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/fileserver/core/logger"
)

// Compile-time check that FileSystem can back the static stages.
var _ http.FileSystem = (*FileSystem)(nil)

// S3Client defines the S3 operations FileSystem uses.
// *s3.Client satisfies it; tests supply mocks.
type S3Client interface {
	GetObject(ctx context.Context, params *s3aws.GetObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3aws.HeadObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3aws.ListObjectsV2Input, optFns ...func(*s3aws.Options)) (*s3aws.ListObjectsV2Output, error)
}

// FileSystem is a read-only http.FileSystem over an S3 bucket.
//
// Object keys are paths; key prefixes ending in '/' act as directories, so a
// directory exists when at least one key lies below it. Files are read with
// ranged GetObject requests starting at the current offset, so range
// requests only fetch the bytes they need.
// Safe for concurrent use.
type FileSystem struct {
	client  S3Client
	bucket  string
	prefix  string
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures FileSystem.
type Option func(*options)

type options struct {
	httpClient      *http.Client
	s3Client        S3Client
	s3ConfigOptions []func(*config.LoadOptions) error
	s3ClientOptions []func(*s3aws.Options)
	logger          *slog.Logger
}

// WithS3Client sets a custom pre-configured S3 client.
// Primarily used for testing with mocks, but also allows advanced client customization.
func WithS3Client(client S3Client) Option {
	return func(o *options) {
		o.s3Client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithS3ConfigOption adds a custom AWS config option.
func WithS3ConfigOption(option func(*config.LoadOptions) error) Option {
	return func(o *options) {
		o.s3ConfigOptions = append(o.s3ConfigOptions, option)
	}
}

// WithS3ClientOption adds a custom S3 client option.
func WithS3ClientOption(option func(*s3aws.Options)) Option {
	return func(o *options) {
		o.s3ClientOptions = append(o.s3ClientOptions, option)
	}
}

// WithLogger sets the logger for backend errors.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}

// New creates a FileSystem for cfg.Bucket.
// Credentials fall back to the AWS default chain (env vars, IAM roles) when
// cfg carries no static keys.
func New(ctx context.Context, cfg Config, opts ...Option) (*FileSystem, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.s3Client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}

		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}

		if o.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(o.httpClient))
		}

		awsOptions = append(awsOptions, o.s3ConfigOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("s3fs: load AWS config: %w", err)
		}

		client = s3aws.NewFromConfig(awsConfig, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle

			for _, opt := range o.s3ClientOptions {
				opt(so)
			}
		})
	}

	log := o.logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &FileSystem{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  strings.Trim(cfg.Prefix, "/"),
		timeout: timeout,
		logger:  log.With(logger.Component("s3fs"), slog.String("bucket", cfg.Bucket)),
	}, nil
}

// Open implements http.FileSystem. name is slash-separated and rooted at the
// configured prefix; ".." segments cannot escape it.
func (f *FileSystem) Open(name string) (http.File, error) {
	name = path.Clean("/" + name)

	if name == "/" {
		return f.newDir(name), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	key := f.key(name)
	head, err := f.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return f.newFile(name, key, head), nil
	}

	err = classifyError(err, "head object")
	if !isNotExist(err) {
		f.logger.Error("open failed", logger.Path(name), logger.Error(err))
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}

	isDir, err := f.hasChildren(ctx, key+"/")
	if err != nil {
		f.logger.Error("open failed", logger.Path(name), logger.Error(err))
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	if !isDir {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	return f.newDir(name), nil
}

// key maps a cleaned file system path to an object key.
func (f *FileSystem) key(name string) string {
	rel := strings.TrimPrefix(name, "/")
	if f.prefix == "" {
		return rel
	}
	if rel == "" {
		return f.prefix
	}
	return f.prefix + "/" + rel
}

// dirPrefix is the listing prefix of a directory path ("" for the bucket root).
func (f *FileSystem) dirPrefix(name string) string {
	k := f.key(name)
	if k == "" {
		return ""
	}
	return k + "/"
}

func (f *FileSystem) hasChildren(ctx context.Context, prefix string) (bool, error) {
	out, err := f.client.ListObjectsV2(ctx, &s3aws.ListObjectsV2Input{
		Bucket:  aws.String(f.bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, classifyError(err, "list objects")
	}
	return len(out.Contents) > 0 || len(out.CommonPrefixes) > 0, nil
}

// list returns the immediate children of the directory at prefix.
func (f *FileSystem) list(ctx context.Context, prefix string) ([]fs.FileInfo, error) {
	paginator := s3aws.NewListObjectsV2Paginator(f.client, &s3aws.ListObjectsV2Input{
		Bucket:    aws.String(f.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var entries []fs.FileInfo
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classifyError(err, "list objects")
		}

		for _, cp := range page.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			if name == "" {
				continue
			}
			entries = append(entries, &fileInfo{name: name, dir: true})
		}

		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if name == "" || strings.Contains(name, "/") {
				continue // directory marker or deeper key
			}
			entries = append(entries, &fileInfo{
				name:    name,
				size:    aws.ToInt64(obj.Size),
				modTime: aws.ToTime(obj.LastModified),
			})
		}
	}

	return entries, nil
}

func isNotExist(err error) bool {
	return err != nil && errors.Is(err, fs.ErrNotExist)
}
