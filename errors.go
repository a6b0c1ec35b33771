// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package augment

import "fmt"

// DecodeError means the source image could not be opened or decoded. Nothing
// is written for that source, not even its output directory.
type DecodeError struct {
	// Path of the source image.
	Path string
	// Err is the underlying open or decode failure.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode source image %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DirCreateError means the output directory could not be created. It is
// raised before any transformation runs, so nothing is written.
type DirCreateError struct {
	// Path of the directory that could not be created.
	Path string
	// Err is the underlying filesystem failure.
	Err error
}

func (e *DirCreateError) Error() string {
	return fmt.Sprintf("cannot create output directory %q: %v", e.Path, e.Err)
}

func (e *DirCreateError) Unwrap() error { return e.Err }

// SaveError means one output file could not be encoded or written. The
// remaining repetitions of that source are abandoned, but outputs already
// written stay on disk -- the Report returned along with the error lists
// them.
type SaveError struct {
	// Path of the output file that failed.
	Path string
	// Err is the underlying encode or write failure.
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("cannot save output image %q: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
