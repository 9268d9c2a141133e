package skeleton

import "github.com/go-gl/mathgl/mgl64"

// GlobalTransforms composes per-joint world transforms along the kinematic
// tree and applies the rest-pose correction, producing the 4×4 transforms
// consumed by skinning.
//
// parent must be a validated hierarchy: parent[0] < 0 and parent[i] < i for
// every other joint, so a single forward pass visits parents before children.
func GlobalTransforms(rotations []mgl64.Mat3, restJoints []mgl64.Vec3, parent []int) []mgl64.Mat4 {
	world := make([]mgl64.Mat4, len(parent))
	world[0] = localTransform(rotations[0], restJoints[0])
	for i := 1; i < len(parent); i++ {
		pi := parent[i]
		local := localTransform(rotations[i], restJoints[i].Sub(restJoints[pi]))
		world[i] = world[pi].Mul4(local)
	}

	// Rest-pose correction: subtract each joint's rigidly transformed rest
	// position so the transform maps rest-pose vertices directly to their
	// posed contribution.
	for i := range world {
		offset := world[i].Mul4x1(restJoints[i].Vec4(0))
		g := world[i]
		g.SetCol(3, g.Col(3).Sub(offset))
		world[i] = g
	}

	return world
}

// localTransform embeds a joint rotation and translation as a homogeneous
// 4×4 matrix.
func localTransform(r mgl64.Mat3, t mgl64.Vec3) mgl64.Mat4 {
	m := r.Mat4()
	m.SetCol(3, t.Vec4(1))
	return m
}
