package domain

import (
	"errors"
	"strings"
)

// Sentinel errors for catalog and store operations
var (
	// ErrShowNotFound indicates the catalog has no show with the requested id
	ErrShowNotFound = errors.New("show not found")

	// ErrCatalogUnreachable indicates the catalog API could not be reached
	ErrCatalogUnreachable = errors.New("catalog is unreachable")

	// ErrUnexpectedStatus indicates the catalog answered with a non-200 status
	ErrUnexpectedStatus = errors.New("unexpected catalog response")

	// ErrInvalidShowID indicates an identifier that cannot key a favorite
	ErrInvalidShowID = errors.New("invalid show id")
)

// RemoteError is a transport, decoding, or not-found failure from the catalog.
type RemoteError struct {
	Op  string // e.g. "list shows", "get show"
	Err error
}

func (e *RemoteError) Error() string {
	return "catalog: " + e.Op + ": " + e.Err.Error()
}

func (e *RemoteError) Unwrap() error { return e.Err }

// StoreError is a failure from the local favorites store.
type StoreError struct {
	Op  string // e.g. "put favorite"
	Err error
}

func (e *StoreError) Error() string {
	return "store: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// UserMessage collapses any failure into the single string presentation shows.
// For catalog and store errors this is the underlying cause's message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Err != nil {
		return causeMessage(remote.Err)
	}
	var store *StoreError
	if errors.As(err, &store) && store.Err != nil {
		return causeMessage(store.Err)
	}
	return causeMessage(err)
}

func causeMessage(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "unknown error"
	}
	return msg
}
