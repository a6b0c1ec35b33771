// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package walker

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gomlx/augment"
	"github.com/gomlx/augment/transform"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradient returns a horizontal gray ramp, so flips and crops move pixel
// values around.
func gradient(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray := uint8(x * 255 / (width - 1))
			img.Set(x, y, color.NRGBA{R: gray, G: gray, B: gray, A: 255})
		}
	}
	return img
}

// writePNG writes img to path, creating parent directories as needed.
func writePNG(t *testing.T, path string, img image.Image) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

// writeJunk writes non-image bytes to path, creating parent directories as
// needed.
func writeJunk(t *testing.T, path string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))
}

// listFiles returns the paths of all regular files under root, relative to
// root, in lexical order.
func listFiles(t *testing.T, root string) []string {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	require.NoError(t, err)
	return files
}

// fastConfig keeps the pipelines deterministic and cheap: identity day,
// mirrored night.
func fastConfig() *augment.Config {
	identity := transform.Params{ScaleMin: 1, ScaleMax: 1}
	mirror := identity
	mirror.FlipProbability = 1
	return &augment.Config{
		Day:         identity,
		Night:       mirror,
		JPEGQuality: 95,
		Extensions:  []string{"jpg", "jpeg", "png", "bmp", "gif"},
	}
}

func TestDiscoverExtensionMajorOrder(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"5.bmp", "a/1.png", "a/2.jpg", "b/3.gif", "b/4.jpeg", "c/UPPER.JPG", "readme.md",
	} {
		writeJunk(t, filepath.Join(root, name))
	}

	found, err := Discover(root, []string{"jpg", "jpeg", "png", "bmp", "gif"})
	require.NoError(t, err)
	want := []string{
		filepath.Join(root, "a/2.jpg"),
		filepath.Join(root, "b/4.jpeg"),
		filepath.Join(root, "a/1.png"),
		filepath.Join(root, "5.bmp"),
		filepath.Join(root, "b/3.gif"),
	}
	assert.Equal(t, want, found)
}

func TestDiscoverIsCaseSensitive(t *testing.T) {
	root := t.TempDir()
	writeJunk(t, filepath.Join(root, "photo.JPG"))
	writeJunk(t, filepath.Join(root, "photo.jpg"))

	found, err := Discover(root, []string{"jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "photo.jpg")}, found)

	found, err = Discover(root, []string{"JPG"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "photo.JPG")}, found)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), []string{"jpg"})
	require.Error(t, err)
}

func TestRunEndToEnd(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")
	writePNG(t, filepath.Join(inputDir, "catA/photo1.png"), gradient(16, 16))
	writePNG(t, filepath.Join(inputDir, "catB/photo2.png"), gradient(16, 16))

	summary, err := Run(&Config{
		InputDir:    inputDir,
		OutputDir:   outputDir,
		Repetitions: 2,
		Parallelism: 2,
		Seed:        7,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Found)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 8, summary.Outputs)
	assert.Greater(t, summary.Bytes, int64(0))
	assert.Greater(t, summary.Elapsed.Nanoseconds(), int64(0))
	assert.Empty(t, summary.Failures)

	want := []string{
		"catA/photo1_day_1.jpg", "catA/photo1_night_1.jpg",
		"catA/photo1_day_2.jpg", "catA/photo1_night_2.jpg",
		"catB/photo2_day_1.jpg", "catB/photo2_night_1.jpg",
		"catB/photo2_day_2.jpg", "catB/photo2_night_2.jpg",
	}
	assert.ElementsMatch(t, want, listFiles(t, outputDir))
}

func TestRunContinuesPastFailures(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")
	writePNG(t, filepath.Join(inputDir, "catA/good.png"), gradient(16, 16))
	writeJunk(t, filepath.Join(inputDir, "catB/bad.jpg"))

	summary, err := Run(&Config{
		Augment:     fastConfig(),
		InputDir:    inputDir,
		OutputDir:   outputDir,
		Repetitions: 1,
		Parallelism: 1,
		Seed:        1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Found)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, filepath.Join(inputDir, "catB/bad.jpg"), summary.Failures[0].Path)
	var decodeErr *augment.DecodeError
	assert.True(t, errors.As(summary.Failures[0].Err, &decodeErr))

	want := []string{"catA/good_day_1.jpg", "catA/good_night_1.jpg"}
	assert.ElementsMatch(t, want, listFiles(t, outputDir))
}

func TestRunSharedParentNamesDoNotCollide(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")
	writePNG(t, filepath.Join(inputDir, "x/a/one.png"), gradient(16, 16))
	writePNG(t, filepath.Join(inputDir, "y/a/two.png"), gradient(16, 16))

	summary, err := Run(&Config{
		Augment:     fastConfig(),
		InputDir:    inputDir,
		OutputDir:   outputDir,
		Repetitions: 1,
		Parallelism: 1,
		Seed:        1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)

	want := []string{
		"x/a/one_day_1.jpg", "x/a/one_night_1.jpg",
		"y/a/two_day_1.jpg", "y/a/two_night_1.jpg",
	}
	assert.ElementsMatch(t, want, listFiles(t, outputDir))
}

func TestRunSourceAtInputRoot(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")
	writePNG(t, filepath.Join(inputDir, "top.png"), gradient(16, 16))

	summary, err := Run(&Config{
		Augment:     fastConfig(),
		InputDir:    inputDir,
		OutputDir:   outputDir,
		Repetitions: 1,
		Parallelism: 1,
		Seed:        1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)

	// No intermediate directory: the file sat at the input root, so its
	// variants sit at the output root.
	want := []string{"top_day_1.jpg", "top_night_1.jpg"}
	assert.ElementsMatch(t, want, listFiles(t, outputDir))
}

func TestRunEmptyInput(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")
	writeJunk(t, filepath.Join(inputDir, "readme.md"))

	summary, err := Run(&Config{
		Augment:     fastConfig(),
		InputDir:    inputDir,
		OutputDir:   outputDir,
		Repetitions: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Found)
	assert.Equal(t, 0, summary.Processed)
	assert.Equal(t, 0, summary.Outputs)

	_, err = os.Stat(outputDir)
	assert.True(t, os.IsNotExist(err))
}

func TestRunMissingInput(t *testing.T) {
	_, err := Run(&Config{
		InputDir:  filepath.Join(t.TempDir(), "missing"),
		OutputDir: t.TempDir(),
	})
	require.ErrorContains(t, err, "does not exist")
}

func TestRunRejectsBadConfig(t *testing.T) {
	inputDir := t.TempDir()
	badAugment := fastConfig()
	badAugment.JPEGQuality = 0
	_, err := Run(&Config{
		Augment:   badAugment,
		InputDir:  inputDir,
		OutputDir: t.TempDir(),
	})
	require.Error(t, err)

	_, err = Run(&Config{
		Augment:     fastConfig(),
		InputDir:    inputDir,
		OutputDir:   t.TempDir(),
		Repetitions: -1,
	})
	require.ErrorContains(t, err, "non-negative")
}

func TestRunSequentialSeedIsReproducible(t *testing.T) {
	inputDir := t.TempDir()
	writePNG(t, filepath.Join(inputDir, "cats/photo.png"), gradient(32, 24))

	run := func(outputDir string) *Summary {
		summary, err := Run(&Config{
			InputDir:    inputDir,
			OutputDir:   outputDir,
			Repetitions: 2,
			Parallelism: 1,
			Seed:        42,
		})
		require.NoError(t, err)
		return summary
	}
	outputA := filepath.Join(t.TempDir(), "a")
	outputB := filepath.Join(t.TempDir(), "b")
	summaryA := run(outputA)
	summaryB := run(outputB)
	require.Equal(t, summaryA.Bytes, summaryB.Bytes)

	files := listFiles(t, outputA)
	require.Len(t, files, 4)
	for _, rel := range files {
		bytesA, err := os.ReadFile(filepath.Join(outputA, rel))
		require.NoError(t, err)
		bytesB, err := os.ReadFile(filepath.Join(outputB, rel))
		require.NoError(t, err)
		assert.Equal(t, bytesA, bytesB, "output %q differs between identically seeded runs", rel)
	}
}
