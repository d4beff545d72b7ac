// Package s3fs serves an Amazon S3 (or S3-compatible) bucket as a read-only
// http.FileSystem, so the static file stages can serve objects directly.
//
// Basic usage:
//
//	import (
//		"context"
//		"net/http"
//
//		"github.com/dmitrymomot/fileserver/core/pipeline"
//		"github.com/dmitrymomot/fileserver/core/static"
//		"github.com/dmitrymomot/fileserver/integration/s3fs"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		fsys, err := s3fs.New(ctx, s3fs.Config{
//			Bucket: "my-site",
//			Region: "eu-central-1",
//			Prefix: "public", // serve public/* as the root
//		})
//		if err != nil {
//			panic(err)
//		}
//
//		opts := static.NewFileServerOptions()
//		opts.FileSystem = fsys
//		opts.EnableDirectoryBrowsing = true
//
//		b := static.UseFileServerWithOptions(pipeline.New[*pipeline.Context](), opts)
//		http.ListenAndServe(":8080", b.Handler(nil))
//	}
//
// # Layout
//
// Keys are paths below Prefix. A path is a directory when some key lies
// below it; empty keys ending in '/' (folder markers created by consoles)
// are skipped in listings. Directory listings use delimiter queries, so only
// immediate children are fetched.
//
// # Reads
//
// Opening a file issues a HEAD request for its size, modification time and
// ETag. Reads stream ranged GetObject responses pinned to that ETag with
// If-Match, so a replaced object fails the read instead of mixing content.
// Metadata calls are bounded by Config.Timeout.
//
// # Errors
//
// Missing keys and buckets are reported as fs.ErrNotExist, denied access as
// fs.ErrPermission, throttling as ErrUnavailable, and context errors as
// ErrTimeout or ErrCanceled. All are wrapped in *fs.PathError.
//
// # S3-Compatible Services
//
//	cfg := s3fs.Config{
//		Bucket:         "files",
//		Region:         "us-east-1",
//		Endpoint:       "http://localhost:9000",
//		ForcePathStyle: true,
//	}
package s3fs
