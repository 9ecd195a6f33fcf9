package errors

// Package errors provides sentinel errors for document discovery.

import "errors"

var (
	// ErrNoContentRoots indicates neither a base nor a localized content path was configured.
	ErrNoContentRoots = errors.New("no content roots configured")

	// ErrDocsDirWalkFailed indicates filesystem traversal of a content root failed.
	ErrDocsDirWalkFailed = errors.New("content directory walk failed")

	// ErrFileReadFailed indicates reading a discovered document failed.
	ErrFileReadFailed = errors.New("document read failed")

	// ErrInvalidFrontMatter indicates a document's YAML front matter could not be parsed.
	ErrInvalidFrontMatter = errors.New("invalid front matter")

	// ErrInvalidExcludePattern indicates an exclude glob is malformed.
	ErrInvalidExcludePattern = errors.New("invalid exclude pattern")
)
