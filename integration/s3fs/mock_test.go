package s3fs_test

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var modTime = time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

type mockObject struct {
	data []byte
	etag string
}

// mockS3 is an in-memory bucket.
type mockS3 struct {
	mu       sync.Mutex
	objects  map[string]mockObject
	pageSize int
	headErr  error
	listErr  error
	ranges   []string
	listings int
	version  int
}

func newMockS3(files map[string]string) *mockS3 {
	m := &mockS3{objects: make(map[string]mockObject)}
	for k, v := range files {
		m.put(k, v)
	}
	return m
}

func (m *mockS3) put(key, data string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version++
	m.objects[key] = mockObject{data: []byte(data), etag: `"v` + strconv.Itoa(m.version) + `"`}
}

func (m *mockS3) HeadObject(ctx context.Context, in *s3aws.HeadObjectInput, _ ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.headErr != nil {
		return nil, m.headErr
	}
	obj, ok := m.objects[aws.ToString(in.Key)]
	if !ok || strings.HasSuffix(aws.ToString(in.Key), "/") {
		return nil, &types.NotFound{}
	}
	return &s3aws.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(obj.data))),
		LastModified:  aws.Time(modTime),
		ETag:          aws.String(obj.etag),
	}, nil
}

func (m *mockS3) GetObject(ctx context.Context, in *s3aws.GetObjectInput, _ ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	if in.IfMatch != nil && aws.ToString(in.IfMatch) != obj.etag {
		return nil, &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "etag mismatch"}
	}

	data := obj.data
	if in.Range != nil {
		m.ranges = append(m.ranges, aws.ToString(in.Range))
		from, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(aws.ToString(in.Range), "bytes="), "-"))
		if err != nil {
			return nil, &smithy.GenericAPIError{Code: "InvalidRange"}
		}
		data = data[from:]
	} else {
		m.ranges = append(m.ranges, "")
	}

	return &s3aws.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *mockS3) ListObjectsV2(ctx context.Context, in *s3aws.ListObjectsV2Input, _ ...func(*s3aws.Options)) (*s3aws.ListObjectsV2Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listings++
	if m.listErr != nil {
		return nil, m.listErr
	}

	prefix := aws.ToString(in.Prefix)
	delim := aws.ToString(in.Delimiter)

	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	// entries are object keys or common prefixes, in key order
	type entry struct {
		key    string
		common bool
	}
	var entries []entry
	for _, k := range keys {
		rest := k[len(prefix):]
		if delim != "" {
			if i := strings.Index(rest, delim); i >= 0 {
				cp := prefix + rest[:i+len(delim)]
				if len(entries) == 0 || entries[len(entries)-1].key != cp {
					entries = append(entries, entry{key: cp, common: true})
				}
				continue
			}
		}
		entries = append(entries, entry{key: k})
	}

	start := 0
	if in.ContinuationToken != nil {
		start, _ = strconv.Atoi(aws.ToString(in.ContinuationToken))
	}

	limit := len(entries)
	if m.pageSize > 0 {
		limit = m.pageSize
	}
	if in.MaxKeys != nil && int(*in.MaxKeys) < limit {
		limit = int(*in.MaxKeys)
	}
	end := min(start+limit, len(entries))

	out := &s3aws.ListObjectsV2Output{}
	for _, e := range entries[start:end] {
		if e.common {
			out.CommonPrefixes = append(out.CommonPrefixes, types.CommonPrefix{Prefix: aws.String(e.key)})
			continue
		}
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(e.key),
			Size:         aws.Int64(int64(len(m.objects[e.key].data))),
			LastModified: aws.Time(modTime),
		})
	}
	out.KeyCount = aws.Int32(int32(end - start))
	if end < len(entries) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(strconv.Itoa(end))
	}

	return out, nil
}
