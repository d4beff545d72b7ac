package s3fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	ErrInvalidConfig = errors.New("s3fs: bucket and region are required")
	ErrTimeout       = errors.New("s3fs: operation timed out")
	ErrCanceled      = errors.New("s3fs: operation canceled")
	ErrUnavailable   = errors.New("s3fs: service unavailable")
	ErrIsDirectory   = errors.New("s3fs: is a directory")
	ErrNotDirectory  = errors.New("s3fs: not a directory")
)

// classifyError maps S3 errors onto io/fs errors so http.FileSystem callers
// (and os.IsNotExist style checks) see missing and forbidden objects the
// usual way. Anything else is wrapped with the operation name.
func classifyError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %w", ErrTimeout, op, err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %w", ErrCanceled, op, err)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %s: %w", fs.ErrNotExist, op, err)
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return fmt.Errorf("%w: %s: %w", fs.ErrNotExist, op, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.ErrorCode(); code {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return fmt.Errorf("%w: %s: %w", fs.ErrNotExist, op, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %s: %w", fs.ErrPermission, op, err)
		case "SlowDown", "ServiceUnavailable", "RequestTimeout":
			return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
		default:
			return fmt.Errorf("s3fs: %s failed (code: %s): %w", op, code, err)
		}
	}

	return fmt.Errorf("s3fs: %s failed: %w", op, err)
}
