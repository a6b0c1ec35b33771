// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package transform

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/disintegration/imaging"
	"github.com/gomlx/exceptions"
	"github.com/lucasb-eyer/go-colorful"
)

// RandomColorJitter returns a Stage that perturbs brightness, contrast,
// saturation and hue, each by a value drawn uniformly from its [-jitter,
// +jitter] range, applying the four adjustments in a fresh random order.
//
// brightness, contrast and saturation are percentage fractions within [0, 1]
// (0.8 means the adjustment is drawn from [-80%, +80%]); hue is a fraction of
// the hue circle within [0, 0.5]. An adjustment with jitter 0 is skipped
// entirely, so RandomColorJitter(0, 0, 0, 0) is the identity.
func RandomColorJitter(brightness, contrast, saturation, hue float64) Stage {
	for _, jitter := range []float64{brightness, contrast, saturation} {
		if jitter < 0 || jitter > 1 {
			exceptions.Panicf("transform.RandomColorJitter: jitter values must be in [0, 1], got (%g, %g, %g)",
				brightness, contrast, saturation)
		}
	}
	if hue < 0 || hue > 0.5 {
		exceptions.Panicf("transform.RandomColorJitter: hue jitter must be in [0, 0.5], got %g", hue)
	}
	return func(img image.Image, rng *rand.Rand) image.Image {
		for _, adjustment := range rng.Perm(4) {
			switch adjustment {
			case 0:
				if brightness > 0 {
					img = imaging.AdjustBrightness(img, uniform(rng, -brightness, brightness)*100)
				}
			case 1:
				if contrast > 0 {
					img = imaging.AdjustContrast(img, uniform(rng, -contrast, contrast)*100)
				}
			case 2:
				if saturation > 0 {
					img = imaging.AdjustSaturation(img, uniform(rng, -saturation, saturation)*100)
				}
			case 3:
				if hue > 0 {
					img = adjustHue(img, uniform(rng, -hue, hue)*360)
				}
			}
		}
		return img
	}
}

// adjustHue rotates the hue of every pixel by the given angle in degrees,
// keeping saturation, value and alpha.
func adjustHue(img image.Image, degrees float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		pixel, ok := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
		if !ok {
			return c
		}
		h, s, v := pixel.Hsv()
		h = math.Mod(h+degrees+360, 360)
		r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: c.A}
	})
}
