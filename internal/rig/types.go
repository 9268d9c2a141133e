package rig

import "github.com/go-gl/mathgl/mgl64"

// ShapeCoeffs is the number of shape (beta) coefficients the rig accepts.
const ShapeCoeffs = 10

// Parameters holds the static rig definition: template mesh, blend bases,
// joint regressor, skinning weights, and joint hierarchy. Loaded once from a
// model archive and never mutated afterwards; safe to share across evaluators.
type Parameters struct {
	// Template is the rest-pose mesh, N vertices.
	Template []mgl64.Vec3

	// ShapeBasis maps a ShapeCoeffs-dimensional shape vector to a per-vertex
	// displacement. Flat layout: ShapeBasis[(v*3+c)*ShapeCoeffs+s] is the
	// contribution of coefficient s to component c of vertex v.
	ShapeBasis []float64

	// PoseBasis maps the flattened rotation-minus-identity vector of all
	// non-root joints (9 values per joint) to a per-vertex displacement.
	// Flat layout: PoseBasis[(v*3+c)*D+d] with D = 9*(K-1).
	PoseBasis []float64

	// JointRegressor maps the shaped mesh to K joint rest positions.
	// Flat layout: JointRegressor[j*N+v].
	JointRegressor []float64

	// Weights is the N×K skinning weight matrix, row-major. Each row is a
	// convex combination over joints.
	Weights []float64

	// Parent maps joint index to parent joint index. Parent[0] == NoParent;
	// every other entry satisfies 0 <= Parent[i] < i, so index order is a
	// valid topological order of the kinematic tree.
	Parent []int

	// Faces holds zero-based triangle index triples. Export only; the
	// deformation core never reads it.
	Faces [][3]int
}

// NoParent marks the root joint in the Parent mapping.
const NoParent = -1

// NumVertices returns N, the vertex count of the template mesh.
func (p *Parameters) NumVertices() int { return len(p.Template) }

// NumJoints returns K, the joint count of the kinematic tree.
func (p *Parameters) NumJoints() int { return len(p.Parent) }

// PoseBasisDims returns the length of the pose feature vector, 9*(K-1).
func (p *Parameters) PoseBasisDims() int { return 9 * (p.NumJoints() - 1) }

// RegressJoints applies the joint regressor to a shaped mesh, producing the
// rest position of every joint.
func (p *Parameters) RegressJoints(verts []mgl64.Vec3) []mgl64.Vec3 {
	n := p.NumVertices()
	joints := make([]mgl64.Vec3, p.NumJoints())
	for j := range joints {
		row := p.JointRegressor[j*n : (j+1)*n]
		var acc mgl64.Vec3
		for v, w := range row {
			if w == 0 {
				continue
			}
			acc = acc.Add(verts[v].Mul(w))
		}
		joints[j] = acc
	}
	return joints
}
