package skinning

import "github.com/go-gl/mathgl/mgl64"

// Apply performs linear blend skinning: for each vertex it blends the
// corrected joint transforms by the vertex's skinning weights, applies the
// blended transform to the pose-corrected rest position and adds the global
// translation.
//
// weights is the row-major N×K matrix; transforms has K entries.
func Apply(weights []float64, transforms []mgl64.Mat4, posed []mgl64.Vec3, translation mgl64.Vec3) []mgl64.Vec3 {
	k := len(transforms)
	out := make([]mgl64.Vec3, len(posed))
	for v := range posed {
		row := weights[v*k : (v+1)*k]

		var blended mgl64.Mat4
		for j, w := range row {
			if w == 0 {
				continue
			}
			blended = blended.Add(transforms[j].Mul(w))
		}

		h := blended.Mul4x1(posed[v].Vec4(1))
		out[v] = h.Vec3().Add(translation)
	}
	return out
}
