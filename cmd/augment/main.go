// augment generates randomized day and night variants of one source image.
//
// Usage:
//
//	augment <source_image> <output_root> <repetitions>
//
// It writes 2*repetitions JPEG files named {stem}_day_{i}.jpg and
// {stem}_night_{i}.jpg under {output_root}/{parent directory of the source}.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/augment"
	"github.com/gomlx/augment/internal/fsutil"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		klog.Errorf("Expected 3 arguments: <source_image> <output_root> <repetitions>. See 'augment -help'.")
		os.Exit(1)
	}
	source := must.M1(fsutil.ReplaceTildeInDir(args[0]))
	outputRoot := must.M1(fsutil.ReplaceTildeInDir(args[1]))
	repetitions, err := strconv.Atoi(args[2])
	if err != nil || repetitions < 0 {
		klog.Errorf("Invalid repetitions %q: it must be a non-negative integer. See 'augment -help'.", args[2])
		os.Exit(1)
	}

	// nil config and generator select the defaults: the standard day/night
	// parameters and clock-seeded randomness.
	report, err := augment.File(nil, nil, source, outputRoot, repetitions)
	if err != nil {
		klog.Fatalf("Failed to augment %q: %+v", source, err)
	}
	fmt.Printf("Wrote %d files (%s) under %s\n",
		len(report.Outputs), humanize.Bytes(uint64(report.Bytes)),
		filepath.Join(outputRoot, augment.Namespace(source)))
}
