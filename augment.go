// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package augment generates randomized "day" and "night" JPEG variants of
// source images, the usual augmentation step when growing small image
// datasets for training.
//
// Each call decodes one source image, builds one pipeline per variant (see
// package transform) sized to the decoded image, and writes
// 2 x repetitions outputs named
//
//	{stem}_day_{i}.jpg and {stem}_night_{i}.jpg, i = 1..repetitions
//
// under {outputRoot}/{namespace}/. Outputs are always JPEG, whatever the
// source format. See package walker for running this over a directory tree.
package augment

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomlx/augment/internal/imageio"
	"github.com/gomlx/augment/transform"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Report accounts for the outputs of one augmentation call.
type Report struct {
	// Outputs lists the files written, in the order they were written.
	Outputs []string

	// Bytes written over all outputs.
	Bytes int64
}

// Namespace returns the name of the directory holding sourcePath, the
// default grouping of outputs: File writes the variants of "dataset/cats/1.png"
// under "{outputRoot}/cats/".
func Namespace(sourcePath string) string {
	return filepath.Base(filepath.Dir(sourcePath))
}

// File augments the image at sourcePath, writing 2*repetitions JPEG variants
// under outputRoot grouped by the source's parent directory name (see
// Namespace).
//
// config nil means DefaultConfig(); rng nil means a clock-seeded generator.
func File(config *Config, rng *rand.Rand, sourcePath, outputRoot string, repetitions int) (*Report, error) {
	return FileInNamespace(config, rng, sourcePath, outputRoot, Namespace(sourcePath), repetitions)
}

// FileInNamespace augments the image at sourcePath, writing 2*repetitions
// JPEG variants under {outputRoot}/{namespace}/.
//
// The source is decoded once; the day and night pipelines are built with the
// decoded dimensions as their target size, so every output matches the source
// size. For each repetition index i (1-based) it writes the day variant, then
// the night variant, drawing fresh random parameters from rng for each.
//
// The output directory is created (along with missing parents) even when
// repetitions is 0. Existing outputs with the same names are replaced, so a
// re-run yields the same set of paths.
//
// Failures are typed: *DecodeError (unreadable source, nothing written),
// *DirCreateError (output directory could not be created, nothing written)
// and *SaveError (an output failed; earlier outputs stay on disk and are
// listed in the returned Report).
func FileInNamespace(config *Config, rng *rand.Rand, sourcePath, outputRoot, namespace string, repetitions int) (*Report, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if repetitions < 0 {
		return nil, errors.Errorf("repetitions must be non-negative, got %d", repetitions)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UTC().UnixNano()))
	}

	img, err := imageio.Decode(sourcePath)
	if err != nil {
		return nil, &DecodeError{Path: sourcePath, Err: err}
	}

	outputDir := filepath.Join(outputRoot, namespace)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, &DirCreateError{Path: outputDir, Err: err}
	}

	size := img.Bounds().Size()
	pipelines := []*transform.Pipeline{
		config.Day.Pipeline("day", size.X, size.Y),
		config.Night.Pipeline("night", size.X, size.Y),
	}
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))

	report := &Report{}
	for i := 1; i <= repetitions; i++ {
		for _, pipeline := range pipelines {
			outputPath := filepath.Join(outputDir, fmt.Sprintf("%s_%s_%d.jpg", stem, pipeline.Name(), i))
			written, err := imageio.SaveJPEG(pipeline.Apply(img, rng), outputPath, config.JPEGQuality)
			if err != nil {
				return report, &SaveError{Path: outputPath, Err: err}
			}
			report.Outputs = append(report.Outputs, outputPath)
			report.Bytes += written
		}
	}
	if klog.V(1).Enabled() {
		klog.Infof("augmented %q into %d files (%d bytes) under %q",
			sourcePath, len(report.Outputs), report.Bytes, outputDir)
	}
	return report, nil
}
