// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package transform

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomColorJitterZeroIsIdentity(t *testing.T) {
	img := gradient(32, 24)
	stage := RandomColorJitter(0, 0, 0, 0)
	rng := rand.New(rand.NewSource(42))
	for ii := 0; ii < 5; ii++ {
		samePixels(t, img, stage(img, rng))
	}
}

func TestRandomColorJitterPerturbs(t *testing.T) {
	// With maximal brightness jitter, at least one of many draws must land
	// far enough from zero to change the pixels.
	img := gradient(16, 16)
	stage := RandomColorJitter(1, 0, 0, 0)
	original := imaging.Clone(img).Pix
	changed := false
	for seed := int64(0); seed < 50 && !changed; seed++ {
		out := imaging.Clone(stage(img, rand.New(rand.NewSource(seed))))
		for pos := range out.Pix {
			if out.Pix[pos] != original[pos] {
				changed = true
				break
			}
		}
	}
	assert.True(t, changed, "50 draws of maximal brightness jitter never changed a pixel")
}

func TestAdjustHueRotatesPrimaries(t *testing.T) {
	red := color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	green := color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	blue := color.NRGBA{R: 0, G: 0, B: 255, A: 255}

	cases := []struct {
		name    string
		from    color.NRGBA
		degrees float64
		want    color.NRGBA
	}{
		{"red a third forward is green", red, 120, green},
		{"green a third forward is blue", green, 120, blue},
		{"red a third backward is blue", red, -120, blue},
		{"a full circle is the identity", red, 360, red},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			out := adjustHue(solid(4, 4, test.from), test.degrees)
			require.Equal(t, test.want.R, out.Pix[0])
			require.Equal(t, test.want.G, out.Pix[1])
			require.Equal(t, test.want.B, out.Pix[2])
			require.Equal(t, test.want.A, out.Pix[3])
		})
	}
}

func TestAdjustHueKeepsGray(t *testing.T) {
	gray := solid(4, 4, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	for _, degrees := range []float64{36, 90, 180, -45} {
		samePixels(t, gray, adjustHue(gray, degrees))
	}
}
