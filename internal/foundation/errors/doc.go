// Package errors provides the classified error type shared by sitelinks packages.
//
// A ClassifiedError carries a category (config, filesystem, links, ...), a
// severity and a free-form context map. The CLI adapter turns categories into
// process exit codes.
//
//	err := errors.WrapError(readErr, errors.CategoryFileSystem, "failed to read document").
//		WithContext("path", path).
//		Build()
package errors
