package rerrors

import "fmt"

// IOError wraps a local filesystem problem: an output directory that
// already exists and is non-empty, or that exists as a regular file.
type IOError struct {
	*Error
	Path string
}

// NewOutputDirNotEmptyError reports that fetch's output directory already
// has content in it.
func NewOutputDirNotEmptyError(path string) *IOError {
	return &IOError{
		Error: &Error{
			Category: CategoryIO,
			Code:     CodeOutputDirNotEmpty,
			Message:  fmt.Sprintf("output directory %s is not empty", path),
		},
		Path: path,
	}
}

// NewOutputDirIsFileError reports that fetch's output directory path
// already exists as a regular file.
func NewOutputDirIsFileError(path string) *IOError {
	return &IOError{
		Error: &Error{
			Category: CategoryIO,
			Code:     CodeOutputDirIsFile,
			Message:  fmt.Sprintf("output path %s exists and is not a directory", path),
		},
		Path: path,
	}
}
