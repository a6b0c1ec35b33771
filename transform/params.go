// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package transform

import (
	"github.com/pkg/errors"
)

// Params describes the randomized transformations of one output variant.
// Check values with Validate before building pipelines: the stage
// constructors panic on parameters Validate rejects.
type Params struct {
	// MaxRotationDegrees bounds the rotation angle, drawn uniformly from
	// [-MaxRotationDegrees, +MaxRotationDegrees].
	MaxRotationDegrees float64

	// FlipProbability of mirroring the image horizontally.
	FlipProbability float64

	// ScaleMin and ScaleMax bound the area fraction drawn by the resize-crop
	// stage. ScaleMax may be above 1, in which case the crop is capped at the
	// whole image.
	ScaleMin, ScaleMax float64

	// BrightnessJitter, ContrastJitter and SaturationJitter bound the strength
	// of the corresponding color adjustment: each draws a value uniformly from
	// [-jitter, +jitter] and applies it as a percentage adjustment (so they
	// must be within [0, 1]). Zero disables the adjustment.
	BrightnessJitter, ContrastJitter, SaturationJitter float64

	// HueJitter bounds the hue rotation, drawn uniformly from
	// [-HueJitter, +HueJitter] turns of the hue circle (1.0 is 360 degrees).
	// Must be within [0, 0.5]. Zero disables the adjustment.
	HueJitter float64

	// Blur enables the Gaussian blur stage, applied after all the others.
	Blur bool

	// BlurKernelMin and BlurKernelMax bound the convolution kernel size, both
	// odd; the kernel is drawn from the odd values in between. Only used when
	// Blur is set.
	BlurKernelMin, BlurKernelMax int

	// BlurSigmaMin and BlurSigmaMax bound the Gaussian sigma, drawn uniformly.
	// Only used when Blur is set.
	BlurSigmaMin, BlurSigmaMax float64
}

// Validate returns an error if any parameter is out of range.
func (p *Params) Validate() error {
	if p.MaxRotationDegrees < 0 {
		return errors.Errorf("rotation range must be non-negative, got %g", p.MaxRotationDegrees)
	}
	if p.FlipProbability < 0 || p.FlipProbability > 1 {
		return errors.Errorf("flip probability must be in [0, 1], got %g", p.FlipProbability)
	}
	if p.ScaleMin <= 0 || p.ScaleMax < p.ScaleMin {
		return errors.Errorf("scale range [%g, %g] invalid: it must be 0 < min <= max", p.ScaleMin, p.ScaleMax)
	}
	for _, jitter := range []struct {
		name  string
		value float64
	}{
		{"brightness", p.BrightnessJitter},
		{"contrast", p.ContrastJitter},
		{"saturation", p.SaturationJitter},
	} {
		if jitter.value < 0 || jitter.value > 1 {
			return errors.Errorf("%s jitter must be in [0, 1], got %g", jitter.name, jitter.value)
		}
	}
	if p.HueJitter < 0 || p.HueJitter > 0.5 {
		return errors.Errorf("hue jitter must be in [0, 0.5], got %g", p.HueJitter)
	}
	if p.Blur {
		if p.BlurKernelMin < 3 || p.BlurKernelMin%2 == 0 ||
			p.BlurKernelMax < p.BlurKernelMin || p.BlurKernelMax%2 == 0 {
			return errors.Errorf("blur kernel range [%d, %d] invalid: bounds must be odd and 3 <= min <= max",
				p.BlurKernelMin, p.BlurKernelMax)
		}
		if p.BlurSigmaMin <= 0 || p.BlurSigmaMax < p.BlurSigmaMin {
			return errors.Errorf("blur sigma range [%g, %g] invalid: it must be 0 < min <= max",
				p.BlurSigmaMin, p.BlurSigmaMax)
		}
	}
	return nil
}

// Pipeline assembles the stages for these parameters, in the fixed order
// rotation, horizontal flip, resize-crop, color jitter and, if enabled,
// Gaussian blur. The resize-crop stage restores width x height, normally the
// dimensions of the decoded source, so outputs always match the source size.
func (p *Params) Pipeline(name string, width, height int) *Pipeline {
	stages := []Stage{
		RandomRotation(p.MaxRotationDegrees),
		RandomHorizontalFlip(p.FlipProbability),
		RandomResizeCrop(p.ScaleMin, p.ScaleMax, width, height),
		RandomColorJitter(p.BrightnessJitter, p.ContrastJitter, p.SaturationJitter, p.HueJitter),
	}
	if p.Blur {
		stages = append(stages, RandomGaussianBlur(p.BlurKernelMin, p.BlurKernelMax, p.BlurSigmaMin, p.BlurSigmaMax))
	}
	return NewPipeline(name, stages...)
}
