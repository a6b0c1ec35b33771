// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package transform

import (
	"image"
	"math"
	"math/rand"

	"github.com/disintegration/imaging"
	"github.com/gomlx/exceptions"
)

// RandomGaussianBlur returns a Stage that blurs the image with a Gaussian
// kernel whose size is drawn from the odd values in [kernelMin, kernelMax]
// and whose sigma is drawn uniformly from [sigmaMin, sigmaMax]. Both kernel
// bounds must be odd, at least 3 and kernelMin <= kernelMax.
func RandomGaussianBlur(kernelMin, kernelMax int, sigmaMin, sigmaMax float64) Stage {
	if kernelMin < 3 || kernelMin%2 == 0 || kernelMax < kernelMin || kernelMax%2 == 0 {
		exceptions.Panicf("transform.RandomGaussianBlur: invalid kernel range [%d, %d]: bounds must be odd and 3 <= min <= max",
			kernelMin, kernelMax)
	}
	if sigmaMin <= 0 || sigmaMax < sigmaMin {
		exceptions.Panicf("transform.RandomGaussianBlur: invalid sigma range [%g, %g]", sigmaMin, sigmaMax)
	}
	numKernelSizes := (kernelMax-kernelMin)/2 + 1
	return func(img image.Image, rng *rand.Rand) image.Image {
		kernelSize := kernelMin + 2*rng.Intn(numKernelSizes)
		sigma := uniform(rng, sigmaMin, sigmaMax)
		return gaussianBlur(img, kernelSize, sigma)
	}
}

// gaussianBlur convolves the image with a normalized Gaussian kernel of the
// given size, as two separable passes with a float64 intermediate so no
// precision is lost between them. Edges are extended (the border pixel
// repeats outside the image).
func gaussianBlur(img image.Image, kernelSize int, sigma float64) *image.NRGBA {
	radius := kernelSize / 2
	kernel := make([]float64, kernelSize)
	sum := 0.0
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	src := imaging.Clone(img) // Normalizes to NRGBA with bounds at (0, 0).
	width, height := src.Rect.Dx(), src.Rect.Dy()
	tmp := make([]float64, width*height*4)

	// Horizontal pass: src -> tmp.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var channels [4]float64
			for k := -radius; k <= radius; k++ {
				weight := kernel[k+radius]
				pos := y*src.Stride + clamp(x+k, 0, width-1)*4
				for c := 0; c < 4; c++ {
					channels[c] += weight * float64(src.Pix[pos+c])
				}
			}
			pos := (y*width + x) * 4
			for c := 0; c < 4; c++ {
				tmp[pos+c] = channels[c]
			}
		}
	}

	// Vertical pass: tmp -> dst.
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var channels [4]float64
			for k := -radius; k <= radius; k++ {
				weight := kernel[k+radius]
				pos := (clamp(y+k, 0, height-1)*width + x) * 4
				for c := 0; c < 4; c++ {
					channels[c] += weight * tmp[pos+c]
				}
			}
			pos := y*dst.Stride + x*4
			for c := 0; c < 4; c++ {
				dst.Pix[pos+c] = uint8(clamp(math.Round(channels[c]), 0, 255))
			}
		}
	}
	return dst
}
