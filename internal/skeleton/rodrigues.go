package skeleton

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// thetaEps is the float64 machine epsilon. Rotation magnitudes are clamped
// here so a zero axis-angle vector normalizes cleanly instead of dividing by
// zero; the resulting matrix is identity to within the clamp error.
const thetaEps = 2.220446049250313e-16

// Rodrigues converts a batch of axis-angle vectors into 3×3 rotation
// matrices, one per joint.
func Rodrigues(pose []mgl64.Vec3) []mgl64.Mat3 {
	rots := make([]mgl64.Mat3, len(pose))
	for i, r := range pose {
		rots[i] = RodriguesOne(r)
	}
	return rots
}

// RodriguesOne converts a single axis-angle vector into a rotation matrix:
// R = cosθ·I + (1−cosθ)·r̂r̂ᵀ + sinθ·[r̂]×.
func RodriguesOne(r mgl64.Vec3) mgl64.Mat3 {
	theta := r.Len()
	if theta < thetaEps {
		theta = thetaEps
	}
	x, y, z := r[0]/theta, r[1]/theta, r[2]/theta

	c := math.Cos(theta)
	s := math.Sin(theta)
	t := 1 - c

	return mgl64.Mat3FromRows(
		mgl64.Vec3{c + t*x*x, t*x*y - s*z, t*x*z + s*y},
		mgl64.Vec3{t*x*y + s*z, c + t*y*y, t*y*z - s*x},
		mgl64.Vec3{t*x*z - s*y, t*y*z + s*x, c + t*z*z},
	)
}
