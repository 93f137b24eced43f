package source

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Sentinel errors for loading and storing trees.
var (
	// ErrInvalidFile is returned for misplaced or unparsable translation files.
	ErrInvalidFile = errors.New("source: invalid translation file")
	// ErrNotFound is returned when a backend holds no trees under the key.
	ErrNotFound = errors.New("source: not found")
	// ErrAccessDenied maps backend permission failures.
	ErrAccessDenied = errors.New("source: access denied")
	// ErrLoadFailed wraps any other backend failure.
	ErrLoadFailed = errors.New("source: failed to load translations")
	// ErrInvalidConfig is returned by constructors given incomplete settings.
	ErrInvalidConfig = errors.New("source: invalid configuration")
	// ErrDecode is returned for malformed documents and misused markers.
	ErrDecode = errors.New("source: failed to decode content")
	// ErrEncode is returned when a tree holds values that cannot be written back.
	ErrEncode = errors.New("source: failed to encode content")
)

// wrapS3Error maps S3 API error codes to source sentinels.
// Joins the original error so callers can still unwrap SDK details.
func wrapS3Error(err error, fallback error) error {
	if err == nil {
		return nil
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return errors.Join(ErrNotFound, err)
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return errors.Join(ErrNotFound, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return errors.Join(ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return errors.Join(ErrAccessDenied, err)
		}
	}

	return errors.Join(fallback, err)
}
