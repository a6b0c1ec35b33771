// augment_batch walks a directory tree and generates randomized day and
// night variants of every image it finds.
//
// Usage:
//
//	augment_batch -input ./input -output ./output -repetitions 10
//
// The input directory structure is mirrored under the output directory. Per
// image failures do not stop the run: they are reported at the end, and the
// program exits with status 1 if there were any.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/augment/internal/fsutil"
	"github.com/gomlx/augment/walker"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagInput       = flag.String("input", "./input", "Directory walked recursively for source images.")
	flagOutput      = flag.String("output", "./output", "Directory under which the augmented images are written.")
	flagRepetitions = flag.Int("repetitions", 10, "Number of day/night rounds to generate per source image.")
	flagParallelism = flag.Int("parallelism", 0, "Number of images augmented concurrently. 0 means the number of CPUs plus one.")
	flagSeed        = flag.Int64("seed", 0, "Seed of the random generators. 0 seeds from the clock. "+
		"Runs are only reproducible with -parallelism=1.")
	flagProgress = flag.Bool("progress", true, "Display a progress bar while augmenting.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if len(flag.Args()) > 0 {
		klog.Errorf("Unexpected arguments %v: augment_batch takes flags only. See 'augment_batch -help'.", flag.Args())
		os.Exit(1)
	}

	summary, err := walker.Run(&walker.Config{
		InputDir:    must.M1(fsutil.ReplaceTildeInDir(*flagInput)),
		OutputDir:   must.M1(fsutil.ReplaceTildeInDir(*flagOutput)),
		Repetitions: *flagRepetitions,
		Parallelism: *flagParallelism,
		Seed:        *flagSeed,
		Progress:    *flagProgress,
	})
	if err != nil {
		klog.Fatalf("Failed to augment %q: %+v", *flagInput, err)
	}
	report(summary)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)

	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

func newPlainTable(withHeader bool) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if withHeader && row == 1 {
				s = headerRowStyle
				return
			}
			switch {
			case row%2 == 0:
				// Even row style.
				s = oddRowStyle
			default:
				// Odd row style
				s = evenRowStyle
			}
			if col == 0 {
				s = s.Align(lipgloss.Right)
			} else {
				s = s.Align(lipgloss.Left)
			}
			return
		})
}

func report(summary *walker.Summary) {
	fmt.Println(titleStyle.Render("Augmentation"))
	table := newPlainTable(false)
	table.Row("images found", humanize.Comma(int64(summary.Found)))
	table.Row("images augmented", humanize.Comma(int64(summary.Processed)))
	table.Row("images failed", humanize.Comma(int64(summary.Failed)))
	table.Row("files written", humanize.Comma(int64(summary.Outputs)))
	table.Row("bytes written", humanize.Bytes(uint64(summary.Bytes)))
	table.Row("elapsed", summary.Elapsed.Round(time.Millisecond).String())
	fmt.Println(table.Render())

	if len(summary.Failures) == 0 {
		return
	}
	fmt.Println(titleStyle.Render("Failures"))
	table = newPlainTable(true)
	table.Row("Source", "Error")
	for _, failure := range summary.Failures {
		table.Row(failure.Path, failure.Err.Error())
	}
	fmt.Println(table.Render())
}
