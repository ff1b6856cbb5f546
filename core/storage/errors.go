package storage

import "errors"

var (
	// ErrBucketExists is returned when creating a bucket that is already present.
	ErrBucketExists = errors.New("bucket already exists")
	// ErrBucketNotExist is returned when the bucket cannot be found.
	ErrBucketNotExist = errors.New("bucket does not exist")
	// ErrObjectNotExist is returned when the object cannot be found.
	ErrObjectNotExist = errors.New("object does not exist")
	// ErrUnknownProvider is returned for an unsupported Config.Provider.
	ErrUnknownProvider = errors.New("unknown storage provider")
)
