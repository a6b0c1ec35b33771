// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package imageio reads source images and writes JPEG outputs.
//
// Decoding goes through image.Decode with the JPEG, PNG, GIF and BMP formats
// registered, so any of those is readable whatever the file extension says.
package imageio

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
)

// Decode opens and decodes the image at path with any of the registered
// formats.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image file %q", path)
	}
	defer func() { _ = f.Close() }()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode image file %q", path)
	}
	return img, nil
}

// SaveJPEG encodes img as JPEG with the given quality (1 to 100) and writes
// it to path, replacing whatever file is there. It returns the number of
// bytes written.
func SaveJPEG(img image.Image, path string, quality int) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to create output file %q", path)
	}
	counter := &countingWriter{w: f}
	err = imaging.Encode(counter, img, imaging.JPEG, imaging.JPEGQuality(quality))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return counter.written, errors.Wrapf(err, "failed to write image to %q", path)
	}
	return counter.written, nil
}

// countingWriter counts the bytes that reach the wrapped writer.
type countingWriter struct {
	w       io.Writer
	written int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.written += int64(n)
	return n, err
}
