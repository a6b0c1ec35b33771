// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package augment

import (
	"strings"

	"github.com/gomlx/augment/transform"
	"github.com/pkg/errors"
)

// Config holds every knob of the augmentation: the transform parameters of
// the two variants, the JPEG encoding quality and the extensions considered
// by directory discovery.
type Config struct {
	// Day holds the transform parameters of the "day" variant: gentle crops
	// with strong color jitter, no blur.
	Day transform.Params

	// Night holds the transform parameters of the "night" variant: a wide
	// crop range, mild color jitter and a Gaussian blur pass.
	Night transform.Params

	// JPEGQuality used for every output, from 1 to 100.
	JPEGQuality int

	// Extensions is the allow-list of file name extensions (lower-case,
	// without the dot) that directory discovery accepts. Matching is
	// case-sensitive: "photo.JPG" is not picked up by the defaults.
	Extensions []string
}

// DefaultConfig returns the standard augmentation parameters. The two
// variants share the rotation range and flip probability and differ in
// everything else:
//
//	                 day            night
//	rotation         ±15°           ±15°
//	flip             p=0.5          p=0.5
//	crop scale       [0.8, 1.0]     [0.5, 1.2]
//	brightness       ±0.8           ±0.2
//	contrast         ±0.8           ±0.2
//	saturation       ±0.9           ±0.1
//	hue              ±0.1           ±0.05
//	Gaussian blur    off            kernel 5-9, sigma [0.5, 2.0]
func DefaultConfig() *Config {
	return &Config{
		Day: transform.Params{
			MaxRotationDegrees: 15,
			FlipProbability:    0.5,
			ScaleMin:           0.8,
			ScaleMax:           1.0,
			BrightnessJitter:   0.8,
			ContrastJitter:     0.8,
			SaturationJitter:   0.9,
			HueJitter:          0.1,
		},
		Night: transform.Params{
			MaxRotationDegrees: 15,
			FlipProbability:    0.5,
			ScaleMin:           0.5,
			ScaleMax:           1.2,
			BrightnessJitter:   0.2,
			ContrastJitter:     0.2,
			SaturationJitter:   0.1,
			HueJitter:          0.05,
			Blur:               true,
			BlurKernelMin:      5,
			BlurKernelMax:      9,
			BlurSigmaMin:       0.5,
			BlurSigmaMax:       2.0,
		},
		JPEGQuality: 95,
		Extensions:  []string{"jpg", "jpeg", "png", "bmp", "gif"},
	}
}

// Validate returns an error if any parameter is out of range.
func (c *Config) Validate() error {
	if err := c.Day.Validate(); err != nil {
		return errors.WithMessage(err, "day parameters")
	}
	if err := c.Night.Validate(); err != nil {
		return errors.WithMessage(err, "night parameters")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return errors.Errorf("JPEG quality must be in [1, 100], got %d", c.JPEGQuality)
	}
	for _, ext := range c.Extensions {
		if ext == "" || strings.HasPrefix(ext, ".") {
			return errors.Errorf("extensions must be non-empty and given without the leading dot, got %q", ext)
		}
	}
	return nil
}
