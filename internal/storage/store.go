package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Entry is one child of a listed folder.
type Entry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"isdir"`
}

// FileStore abstracts the remote file server holding the controlled documents.
// Calls are single-shot: implementations never retry.
type FileStore interface {
	ListChildren(ctx context.Context, folderPath string) ([]Entry, error)
	CreateSharingLink(ctx context.Context, path, password string, expiresAt time.Time) (string, error)
	DeleteSharingLink(ctx context.Context, linkID string) error
}

// ErrRemoteStore matches every RemoteStoreError with errors.Is.
var ErrRemoteStore = errors.New("remote store failure")

// RemoteStoreError reports a failed file store call.
type RemoteStoreError struct {
	Op   string
	Path string
	Code int // API error code, 0 when the call failed below the API
	Err  error
}

func (e *RemoteStoreError) Error() string {
	msg := "filestore " + e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Code != 0 {
		msg += fmt.Sprintf(": api error %d", e.Code)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RemoteStoreError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrRemoteStore) hold for any RemoteStoreError.
func (e *RemoteStoreError) Is(target error) bool {
	return target == ErrRemoteStore
}

// Close releases whatever fs holds open, such as a login session.
func Close(ctx context.Context, fs FileStore) error {
	if c, ok := fs.(interface{ Close(context.Context) error }); ok {
		return c.Close(ctx)
	}
	return nil
}
