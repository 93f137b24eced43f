package source_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingo/pkg/fence"
	"github.com/dmitrymomot/lingo/pkg/source"
)

// fakeS3 serves objects from memory, two keys per listing page.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	getErr  error
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	start := 0
	if in.ContinuationToken != nil {
		_, _ = fmt.Sscan(*in.ContinuationToken, &start)
	}
	end := min(start+2, len(keys))

	out := &s3.ListObjectsV2Output{}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	if end < len(keys) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(fmt.Sprint(end))
	}
	return out, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

type apiError struct{ code string }

func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.code }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultUnknown }
func (e *apiError) Error() string                 { return e.code }

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{
		"locales/en/common.json": []byte(`{"hello": "Hello", "card": {"$fence": {"a": 1}}}`),
		"locales/en/errors.yaml": []byte("not_found: Not found\n"),
		"locales/de/common.yml":  []byte("hello: Hallo\n"),
		"locales/de/README.md":   []byte("# ignored"),
		"other/en/common.json":   []byte(`{"hello": "outside the prefix"}`),
	}}
}

func TestNewS3_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     source.S3Config
		wantErr bool
	}{
		{name: "valid", cfg: source.S3Config{Bucket: "b", AccessKey: "a", SecretKey: "s"}},
		{name: "valid with endpoint", cfg: source.S3Config{Bucket: "b", AccessKey: "a", SecretKey: "s", Endpoint: "http://localhost:9000", PathStyle: true}},
		{name: "missing bucket", cfg: source.S3Config{AccessKey: "a", SecretKey: "s"}, wantErr: true},
		{name: "missing credentials", cfg: source.S3Config{Bucket: "b"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := source.NewS3(tt.cfg)
			if tt.wantErr {
				require.ErrorIs(t, err, source.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestS3_Load(t *testing.T) {
	t.Parallel()

	src := source.NewS3WithClient(newFakeS3(), source.S3Config{Bucket: "b", Prefix: "/locales/", Concurrency: 2})
	trees, err := src.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, trees, 2)
	en := trees["en"]["common"].(map[string]any)
	assert.Equal(t, "Hello", en["hello"])
	assert.IsType(t, &fence.Fence{}, en["card"])
	assert.Equal(t, "Not found", trees["en"]["errors"].(map[string]any)["not_found"])
	assert.Equal(t, map[string]any{"hello": "Hallo"}, trees["de"]["common"])
}

func TestS3_Put(t *testing.T) {
	t.Parallel()

	client := newFakeS3()
	src := source.NewS3WithClient(client, source.S3Config{Bucket: "b", Prefix: "locales"})

	require.NoError(t, src.Put(context.Background(), "fr", "common", map[string]any{"hello": "Bonjour"}))
	assert.Contains(t, client.objects, "locales/fr/common.json")

	trees, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"hello": "Bonjour"}, trees["fr"]["common"])
}

func TestS3_LoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		getErr  error
		wantErr error
	}{
		{name: "access denied", getErr: &apiError{code: "AccessDenied"}, wantErr: source.ErrAccessDenied},
		{name: "missing key", getErr: &types.NoSuchKey{}, wantErr: source.ErrNotFound},
		{name: "not found code", getErr: &apiError{code: "NotFound"}, wantErr: source.ErrNotFound},
		{name: "other", getErr: errors.New("network down"), wantErr: source.ErrLoadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := newFakeS3()
			client.getErr = tt.getErr

			_, err := source.NewS3WithClient(client, source.S3Config{Bucket: "b", Prefix: "locales"}).Load(context.Background())
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, tt.getErr, "the SDK error stays reachable")
		})
	}
}

func TestS3_InvalidDocument(t *testing.T) {
	t.Parallel()

	client := &fakeS3{objects: map[string][]byte{"en/common.json": []byte(`{"a":`)}}
	_, err := source.NewS3WithClient(client, source.S3Config{Bucket: "b"}).Load(context.Background())
	require.ErrorIs(t, err, source.ErrInvalidFile)
}
