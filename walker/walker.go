// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package walker discovers the source images under a directory tree and
// augments all of them.
//
// Discovery is extension-major: first every file of the first configured
// extension in traversal order, then every file of the second, and so on.
// Matching is case-sensitive, so "photo.JPG" is not picked up by the default
// lowercase extensions.
//
// Each discovered image keeps its directory structure: the namespace handed
// to the augmenter is the source directory's path relative to the input
// root, so "x/a/1.png" and "y/a/2.png" land under "x/a" and "y/a" even
// though their parent directories share a name. Images sitting directly at
// the input root land directly at the output root.
package walker

import (
	"fmt"
	"io/fs"
	"math/rand"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/gomlx/augment"
	"github.com/gomlx/augment/internal/fsutil"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"
)

// Config of a batch run. See Run.
type Config struct {
	// Augment configures the per-file augmentation. If nil, it defaults to
	// augment.DefaultConfig().
	Augment *augment.Config

	// InputDir is walked recursively for source images.
	InputDir string

	// OutputDir is the output root under which all variants are written.
	OutputDir string

	// Repetitions is how many day/night rounds to generate per source image.
	Repetitions int

	// Parallelism caps how many images are augmented concurrently. If <= 0
	// it defaults to the number of CPUs plus one.
	Parallelism int

	// Seed for the random generators. Each worker derives its own generator
	// from it. If 0, it is taken from the clock. Note runs are only
	// reproducible with Parallelism set to 1, since the assignment of files
	// to workers depends on scheduling.
	Seed int64

	// Progress displays a progress bar while augmenting.
	Progress bool
}

// Failure records one source image that could not be augmented.
type Failure struct {
	// Path of the source image.
	Path string

	// Err is what went wrong, usually one of the augment error types.
	Err error
}

// Summary of a batch run.
type Summary struct {
	// Found is how many source images discovery returned.
	Found int

	// Processed is how many of them were augmented completely.
	Processed int

	// Failed is how many hit an error. See Failures.
	Failed int

	// Outputs is the total number of files written.
	Outputs int

	// Bytes written over all outputs.
	Bytes int64

	// Elapsed wall time of the run.
	Elapsed time.Duration

	// Failures lists the sources that failed, with their errors.
	Failures []Failure
}

// Discover walks root and returns the files whose extension is in the
// allow-list, extension-major: every file of extensions[0] in traversal
// order, then every file of extensions[1], and so on. The extensions are
// given without the leading dot and are matched case-sensitively.
func Discover(root string, extensions []string) ([]string, error) {
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[ext] = true
	}
	byExtension := make(map[string][]string, len(extensions))
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		if !allowed[ext] {
			return nil
		}
		byExtension[ext] = append(byExtension[ext], path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %q", root)
	}
	var found []string
	for _, ext := range extensions {
		found = append(found, byExtension[ext]...)
	}
	return found, nil
}

// Run discovers the images under cfg.InputDir and augments each of them,
// continuing past per-file failures. It returns an error only if the run as
// a whole cannot proceed (bad configuration, unreadable input root); the
// per-file failures are logged, counted and listed in the Summary.
func Run(cfg *Config) (*Summary, error) {
	augConfig := cfg.Augment
	if augConfig == nil {
		augConfig = augment.DefaultConfig()
	}
	if err := augConfig.Validate(); err != nil {
		return nil, err
	}
	if cfg.Repetitions < 0 {
		return nil, errors.Errorf("repetitions must be non-negative, got %d", cfg.Repetitions)
	}
	exists, err := fsutil.FileExists(cfg.InputDir)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.Errorf("input directory %q does not exist", cfg.InputDir)
	}

	start := time.Now()
	sources, err := Discover(cfg.InputDir, augConfig.Extensions)
	if err != nil {
		return nil, err
	}

	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU() + 1
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}
	var pBar *progressbar.ProgressBar
	if cfg.Progress {
		pBar = progressbar.NewOptions(len(sources),
			progressbar.OptionSetDescription("Augmenting"),
			progressbar.OptionUseANSICodes(true),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("images"),
			progressbar.OptionSetTheme(progressbar.ThemeUnicode),
		)
	}

	summary := &Summary{Found: len(sources)}
	var muSummary sync.Mutex
	var wg sync.WaitGroup
	feed := make(chan string, parallelism)
	for workerIdx := 0; workerIdx < parallelism; workerIdx++ {
		workerIdx := workerIdx
		wg.Add(1)
		go func() {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(workerIdx)))
			for source := range feed {
				report, err := augmentOne(augConfig, rng, cfg, source)
				muSummary.Lock()
				if report != nil {
					summary.Outputs += len(report.Outputs)
					summary.Bytes += report.Bytes
				}
				if err != nil {
					klog.Warningf("Failed to augment %q: %v", source, err)
					summary.Failed++
					summary.Failures = append(summary.Failures, Failure{Path: source, Err: err})
				} else {
					summary.Processed++
				}
				if pBar != nil {
					_ = pBar.Add(1)
				}
				muSummary.Unlock()
			}
		}()
	}
	for _, source := range sources {
		feed <- source
	}
	close(feed)
	wg.Wait()

	if pBar != nil {
		_ = pBar.Close()
		fmt.Println()
	}
	summary.Elapsed = time.Since(start)
	if klog.V(1).Enabled() {
		klog.Infof("augmented %d of %d images into %d files (%d bytes) in %s",
			summary.Processed, summary.Found, summary.Outputs, summary.Bytes, summary.Elapsed)
	}
	return summary, nil
}

func augmentOne(augConfig *augment.Config, rng *rand.Rand, cfg *Config, source string) (*augment.Report, error) {
	namespace, err := filepath.Rel(cfg.InputDir, filepath.Dir(source))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find the namespace of %q under %q", source, cfg.InputDir)
	}
	return augment.FileInNamespace(augConfig, rng, source, cfg.OutputDir, namespace, cfg.Repetitions)
}
