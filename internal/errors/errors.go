// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages. This enables better error categorization, logging,
// and user experience by providing context-aware error information.
//
// The package supports wrapping underlying errors while maintaining error kind information,
// making it easier to handle different types of failures appropriately.
package errors

import "fmt"

// Kind is a machine-readable error category.
type Kind string

const (
	// MissingPrerequisite indicates a required external tool is absent
	// and could not be installed.
	MissingPrerequisite Kind = "missing_prerequisite"
	// CloneFailed indicates the upstream repository could not be fetched.
	CloneFailed Kind = "clone_failed"
	// BuildFailed indicates the initial dependency-install/build step failed.
	BuildFailed Kind = "build_failed"
	// ArtifactNotFound indicates the built entry point was not found anywhere
	// under the server subproject.
	ArtifactNotFound Kind = "artifact_not_found"
	// DownloadFailed indicates the authentication-variant transfer errored.
	DownloadFailed Kind = "download_failed"
	// EmptyDownload indicates the transfer produced a zero-length file.
	EmptyDownload Kind = "empty_download"
	// RebuildFailed indicates the post-patch rebuild failed, including the
	// direct-build fallback.
	RebuildFailed Kind = "rebuild_failed"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying error for errors.Is/As chains.
func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the Kind of err when it is an *E, or "" otherwise.
func KindOf(err error) Kind {
	if e, ok := err.(*E); ok {
		return e.Kind
	}
	return ""
}
