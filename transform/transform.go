// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package transform implements the randomized image transformations used to
// augment source images, and the Pipeline type that chains them.
//
// Every transformation is a Stage: a function from an image and a random
// number generator to a new image. Stages draw fresh random values on each
// application, so applying the same Pipeline twice to the same image yields
// two different variants.
package transform

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/disintegration/imaging"
	"github.com/gomlx/exceptions"
	"golang.org/x/exp/constraints"
)

// Stage is one randomized image transformation. Implementations must not
// modify the input image, and must only draw randomness from rng -- the rng
// is owned by the caller, which makes runs reproducible with a fixed seed.
type Stage func(img image.Image, rng *rand.Rand) image.Image

// Pipeline applies a fixed sequence of stages in order.
type Pipeline struct {
	name   string
	stages []Stage
}

// NewPipeline creates a Pipeline with the given name. The name is used as the
// variant label on output file names ("day", "night").
func NewPipeline(name string, stages ...Stage) *Pipeline {
	return &Pipeline{name: name, stages: stages}
}

// Name of the pipeline.
func (p *Pipeline) Name() string { return p.name }

// Apply runs every stage in order, drawing fresh random values from rng.
// The input image is never modified.
func (p *Pipeline) Apply(img image.Image, rng *rand.Rand) image.Image {
	for _, stage := range p.stages {
		img = stage(img, rng)
	}
	return img
}

// RandomRotation returns a Stage that rotates the image by an angle drawn
// uniformly from [-maxDegrees, maxDegrees]. The canvas grows to hold the
// rotated image and the exposed background is filled with black; the
// resize-crop stage that follows restores the target dimensions.
func RandomRotation(maxDegrees float64) Stage {
	if maxDegrees < 0 {
		exceptions.Panicf("transform.RandomRotation: maxDegrees must be non-negative, got %g", maxDegrees)
	}
	return func(img image.Image, rng *rand.Rand) image.Image {
		angle := uniform(rng, -maxDegrees, maxDegrees)
		return imaging.Rotate(img, angle, color.RGBA{R: 0, G: 0, B: 0, A: 255})
	}
}

// RandomHorizontalFlip returns a Stage that mirrors the image horizontally
// with probability p.
func RandomHorizontalFlip(p float64) Stage {
	if p < 0 || p > 1 {
		exceptions.Panicf("transform.RandomHorizontalFlip: probability must be in [0, 1], got %g", p)
	}
	return func(img image.Image, rng *rand.Rand) image.Image {
		if rng.Float64() < p {
			return imaging.FlipH(img)
		}
		return img
	}
}

// Aspect-ratio bounds and number of sampling attempts of the resize-crop
// stage, the usual values for random resized crops.
const (
	minCropAspectRatio = 3.0 / 4.0
	maxCropAspectRatio = 4.0 / 3.0
	cropAttempts       = 10
)

// RandomResizeCrop returns a Stage that crops a random window and resizes it
// to width x height.
//
// The window area is the stage input area times a factor drawn uniformly from
// [scaleMin, scaleMax], and its aspect ratio is drawn log-uniformly from
// [3/4, 4/3]. If no window fitting the input is found after a few attempts,
// it falls back to the largest centered window with a clamped aspect ratio.
// Scale factors above 1 are capped by the input bounds, so they never select
// more than the whole image.
func RandomResizeCrop(scaleMin, scaleMax float64, width, height int) Stage {
	if scaleMin <= 0 || scaleMax < scaleMin {
		exceptions.Panicf("transform.RandomResizeCrop: invalid scale range [%g, %g]", scaleMin, scaleMax)
	}
	if width <= 0 || height <= 0 {
		exceptions.Panicf("transform.RandomResizeCrop: invalid target size %dx%d", width, height)
	}
	return func(img image.Image, rng *rand.Rand) image.Image {
		bounds := img.Bounds()
		srcW, srcH := bounds.Dx(), bounds.Dy()
		area := float64(srcW) * float64(srcH)

		cropW, cropH := 0, 0
		for attempt := 0; attempt < cropAttempts; attempt++ {
			targetArea := area * uniform(rng, scaleMin, scaleMax)
			ratio := math.Exp(uniform(rng, math.Log(minCropAspectRatio), math.Log(maxCropAspectRatio)))
			w := int(math.Round(math.Sqrt(targetArea * ratio)))
			h := int(math.Round(math.Sqrt(targetArea / ratio)))
			if w > 0 && w <= srcW && h > 0 && h <= srcH {
				cropW, cropH = w, h
				break
			}
		}

		var window *image.NRGBA
		if cropW > 0 {
			top := rng.Intn(srcH - cropH + 1)
			left := rng.Intn(srcW - cropW + 1)
			window = imaging.Crop(img, image.Rect(
				bounds.Min.X+left, bounds.Min.Y+top,
				bounds.Min.X+left+cropW, bounds.Min.Y+top+cropH))
		} else {
			// No sampled window fit: take the largest centered window whose
			// aspect ratio is within bounds.
			inRatio := float64(srcW) / float64(srcH)
			switch {
			case inRatio < minCropAspectRatio:
				cropW = srcW
				cropH = int(math.Round(float64(srcW) / minCropAspectRatio))
			case inRatio > maxCropAspectRatio:
				cropH = srcH
				cropW = int(math.Round(float64(srcH) * maxCropAspectRatio))
			default:
				cropW, cropH = srcW, srcH
			}
			window = imaging.CropCenter(img, cropW, cropH)
		}
		return imaging.Resize(window, width, height, imaging.Lanczos)
	}
}

// uniform draws a float64 uniformly from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
