package preview

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LightConfig holds precomputed lighting parameters for the flat-shaded
// body preview.
type LightConfig struct {
	LightDir mgl64.Vec3
	RimDir   mgl64.Vec3
	HalfMain mgl64.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
	SpecInt  float64
	SpecPow  float64
	Exposure float64
	InvGamma float64
}

// DefaultLightConfig returns a key light above and in front of the body with
// a cool rim from behind.
func DefaultLightConfig() LightConfig {
	lightDir := mgl64.Vec3{0.4, 0.8, 0.5}.Normalize()
	rimDir := mgl64.Vec3{-0.5, 0.3, -0.8}.Normalize()
	viewDir := mgl64.Vec3{0, 0, -1}

	halfMain := lightDir.Sub(viewDir).Normalize()

	return LightConfig{
		LightDir: lightDir,
		RimDir:   rimDir,
		HalfMain: halfMain,
		Ambient:  0.45,
		Hemi:     0.35,
		Direct:   1.20,
		Rim:      0.35,
		SpecInt:  0.25,
		SpecPow:  16.0,
		Exposure: 1.05,
		InvGamma: 1.0 / 2.2,
	}
}

// shade returns the combined lighting scalar for a unit face normal.
func (lc *LightConfig) shade(nx, ny, nz float64) float64 {
	// Lambertian (abs for double-sided)
	ndlMain := math.Abs(nx*lc.LightDir[0] + ny*lc.LightDir[1] + nz*lc.LightDir[2])
	ndlRim := math.Abs(nx*lc.RimDir[0] + ny*lc.RimDir[1] + nz*lc.RimDir[2])

	// Hemisphere fill
	hemi := (1.0-math.Abs(ny))*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	// Blinn-Phong specular
	ndh := nx*lc.HalfMain[0] + ny*lc.HalfMain[1] + nz*lc.HalfMain[2]
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// acesTonemap applies ACES Filmic tone mapping to a linear value.
func acesTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
