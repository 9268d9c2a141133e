package skinning

import (
	"github.com/go-gl/mathgl/mgl64"

	"smpl-mesh-renderer/internal/rig"
)

// ShapeBlend returns the template mesh displaced by the shape basis weighted
// with the given coefficients.
func ShapeBlend(p *rig.Parameters, shape []float64) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, p.NumVertices())
	for v := range out {
		var d mgl64.Vec3
		for c := 0; c < 3; c++ {
			row := p.ShapeBasis[(v*3+c)*rig.ShapeCoeffs : (v*3+c+1)*rig.ShapeCoeffs]
			acc := 0.0
			for s, b := range shape {
				acc += row[s] * b
			}
			d[c] = acc
		}
		out[v] = p.Template[v].Add(d)
	}
	return out
}

// PoseBlend adds the pose-corrective displacement to the shaped mesh. The
// corrective coefficients are the flattened rotation-minus-identity entries
// of every non-root joint, matching the pose basis layout.
func PoseBlend(p *rig.Parameters, shaped []mgl64.Vec3, rotations []mgl64.Mat3) []mgl64.Vec3 {
	feature := poseFeature(rotations)

	out := make([]mgl64.Vec3, len(shaped))
	for v := range out {
		var d mgl64.Vec3
		for c := 0; c < 3; c++ {
			row := p.PoseBasis[(v*3+c)*len(feature) : (v*3+c+1)*len(feature)]
			acc := 0.0
			for i, f := range feature {
				if f == 0 {
					continue
				}
				acc += row[i] * f
			}
			d[c] = acc
		}
		out[v] = shaped[v].Add(d)
	}
	return out
}

// poseFeature flattens R_i − I for joints 1..K-1 in row-major order.
func poseFeature(rotations []mgl64.Mat3) []float64 {
	ident := mgl64.Ident3()
	feature := make([]float64, 0, 9*(len(rotations)-1))
	for _, r := range rotations[1:] {
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				feature = append(feature, r.At(row, col)-ident.At(row, col))
			}
		}
	}
	return feature
}
