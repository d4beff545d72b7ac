package s3fs

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
)

type fileInfo struct {
	name    string
	size    int64
	modTime time.Time
	dir     bool
}

func (i *fileInfo) Name() string       { return i.name }
func (i *fileInfo) Size() int64        { return i.size }
func (i *fileInfo) ModTime() time.Time { return i.modTime }
func (i *fileInfo) IsDir() bool        { return i.dir }
func (i *fileInfo) Sys() any           { return nil }

func (i *fileInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o555
	}
	return 0o444
}

// object is an open S3 object. Reads stream from a GetObject response that
// starts at the current offset; seeking elsewhere drops the stream and the
// next read requests a new range.
type object struct {
	fsys *FileSystem
	name string
	key  string
	etag string
	info *fileInfo

	offset int64
	body   io.ReadCloser
	cancel context.CancelFunc
}

var _ http.File = (*object)(nil)

func (f *FileSystem) newFile(name, key string, head *s3aws.HeadObjectOutput) *object {
	return &object{
		fsys: f,
		name: name,
		key:  key,
		etag: aws.ToString(head.ETag),
		info: &fileInfo{
			name:    path.Base(name),
			size:    aws.ToInt64(head.ContentLength),
			modTime: aws.ToTime(head.LastModified),
		},
	}
}

func (o *object) Read(p []byte) (int, error) {
	if o.offset >= o.info.size {
		return 0, io.EOF
	}

	if o.body == nil {
		if err := o.openBody(); err != nil {
			return 0, &fs.PathError{Op: "read", Path: o.name, Err: err}
		}
	}

	n, err := o.body.Read(p)
	o.offset += int64(n)
	return n, err
}

func (o *object) openBody() error {
	ctx, cancel := context.WithCancel(context.Background())

	in := &s3aws.GetObjectInput{
		Bucket: aws.String(o.fsys.bucket),
		Key:    aws.String(o.key),
	}
	if o.offset > 0 {
		in.Range = aws.String(fmt.Sprintf("bytes=%d-", o.offset))
	}
	if o.etag != "" {
		// fail instead of mixing bytes of a replaced object
		in.IfMatch = aws.String(o.etag)
	}

	out, err := o.fsys.client.GetObject(ctx, in)
	if err != nil {
		cancel()
		return classifyError(err, "get object")
	}

	o.body = out.Body
	o.cancel = cancel
	return nil
}

func (o *object) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = o.offset + offset
	case io.SeekEnd:
		abs = o.info.size + offset
	default:
		return 0, &fs.PathError{Op: "seek", Path: o.name, Err: fs.ErrInvalid}
	}
	if abs < 0 {
		return 0, &fs.PathError{Op: "seek", Path: o.name, Err: fs.ErrInvalid}
	}

	if abs != o.offset {
		o.closeBody()
		o.offset = abs
	}
	return abs, nil
}

func (o *object) closeBody() {
	if o.body != nil {
		_ = o.body.Close()
		o.body = nil
	}
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

func (o *object) Close() error {
	o.closeBody()
	return nil
}

func (o *object) Readdir(int) ([]fs.FileInfo, error) {
	return nil, &fs.PathError{Op: "readdir", Path: o.name, Err: ErrNotDirectory}
}

func (o *object) Stat() (fs.FileInfo, error) {
	return o.info, nil
}

// dir is an open directory; entries are listed on the first Readdir.
type dir struct {
	fsys    *FileSystem
	name    string
	entries []fs.FileInfo
	loaded  bool
	pos     int
}

var _ http.File = (*dir)(nil)

func (f *FileSystem) newDir(name string) *dir {
	return &dir{fsys: f, name: name}
}

func (d *dir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.name, Err: ErrIsDirectory}
}

func (d *dir) Seek(offset int64, whence int) (int64, error) {
	if offset == 0 && whence == io.SeekStart {
		d.pos = 0
		return 0, nil
	}
	return 0, &fs.PathError{Op: "seek", Path: d.name, Err: ErrIsDirectory}
}

func (d *dir) Close() error {
	return nil
}

// Readdir follows os.File semantics: count <= 0 returns everything left;
// otherwise at most count entries and io.EOF once exhausted.
func (d *dir) Readdir(count int) ([]fs.FileInfo, error) {
	if !d.loaded {
		ctx, cancel := context.WithTimeout(context.Background(), d.fsys.timeout)
		defer cancel()

		entries, err := d.fsys.list(ctx, d.fsys.dirPrefix(d.name))
		if err != nil {
			return nil, &fs.PathError{Op: "readdir", Path: d.name, Err: err}
		}
		d.entries = entries
		d.loaded = true
	}

	rest := d.entries[d.pos:]
	if count <= 0 {
		d.pos = len(d.entries)
		return rest, nil
	}
	if len(rest) == 0 {
		return nil, io.EOF
	}

	n := min(count, len(rest))
	d.pos += n
	return rest[:n], nil
}

func (d *dir) Stat() (fs.FileInfo, error) {
	name := path.Base(d.name)
	return &fileInfo{name: name, dir: true}, nil
}
