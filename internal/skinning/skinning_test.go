package skinning

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"smpl-mesh-renderer/internal/rig"
	"smpl-mesh-renderer/internal/skeleton"
)

// singleVertexRig builds a one-vertex, two-joint rig with zeroed bases.
func singleVertexRig() *rig.Parameters {
	return &rig.Parameters{
		Template:       []mgl64.Vec3{{1, 2, 3}},
		ShapeBasis:     make([]float64, 3*rig.ShapeCoeffs),
		PoseBasis:      make([]float64, 3*9),
		JointRegressor: []float64{1, 0},
		Weights:        []float64{1, 0},
		Parent:         []int{-1, 0},
	}
}

func TestShapeBlendZeroCoefficients(t *testing.T) {
	p := singleVertexRig()
	out := ShapeBlend(p, make([]float64, rig.ShapeCoeffs))
	if !out[0].ApproxEqualThreshold(p.Template[0], 1e-15) {
		t.Errorf("zero shape must return the template, got %v", out[0])
	}
}

func TestShapeBlendSingleCoefficient(t *testing.T) {
	p := singleVertexRig()
	// First shape direction displaces the vertex by (1, 2, 3) per unit.
	for c := 0; c < 3; c++ {
		p.ShapeBasis[c*rig.ShapeCoeffs] = float64(c + 1)
	}

	shape := make([]float64, rig.ShapeCoeffs)
	shape[0] = 0.5

	out := ShapeBlend(p, shape)
	want := p.Template[0].Add(mgl64.Vec3{0.5, 1, 1.5})
	if !out[0].ApproxEqualThreshold(want, 1e-15) {
		t.Errorf("got %v, want %v", out[0], want)
	}
}

func TestPoseBlendIdentityRotations(t *testing.T) {
	p := singleVertexRig()
	for i := range p.PoseBasis {
		p.PoseBasis[i] = float64(i) // arbitrary nonzero basis
	}

	shaped := []mgl64.Vec3{p.Template[0]}
	rots := []mgl64.Mat3{mgl64.Ident3(), mgl64.Ident3()}

	out := PoseBlend(p, shaped, rots)
	if !out[0].ApproxEqualThreshold(shaped[0], 1e-15) {
		t.Errorf("identity rotations must add no correction, got %v", out[0])
	}
}

func TestPoseBlendRotationFeature(t *testing.T) {
	p := singleVertexRig()
	// Basis picks out feature entry 4, the (1,1) element of R₁ − I.
	p.PoseBasis[0*9+4] = 2.0

	shaped := []mgl64.Vec3{{0, 0, 0}}
	rots := skeleton.Rodrigues([]mgl64.Vec3{{0, 0, 0}, {0, 0, math.Pi / 2}})

	// cos(π/2) − 1 = −1, scaled by the basis weight 2 on component x.
	out := PoseBlend(p, shaped, rots)
	want := mgl64.Vec3{-2, 0, 0}
	if !out[0].ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("got %v, want %v", out[0], want)
	}
}

func TestApplyIdentityTransforms(t *testing.T) {
	posed := []mgl64.Vec3{{1, 2, 3}, {-1, 0, 4}}
	weights := []float64{1, 0, 0.25, 0.75}
	transforms := []mgl64.Mat4{mgl64.Ident4(), mgl64.Ident4()}

	out := Apply(weights, transforms, posed, mgl64.Vec3{})
	for i := range posed {
		if !out[i].ApproxEqualThreshold(posed[i], 1e-15) {
			t.Errorf("vertex %d moved under identity transforms: %v", i, out[i])
		}
	}
}

func TestApplyTranslation(t *testing.T) {
	posed := []mgl64.Vec3{{1, 2, 3}}
	weights := []float64{1}
	transforms := []mgl64.Mat4{mgl64.Ident4()}

	out := Apply(weights, transforms, posed, mgl64.Vec3{10, -20, 30})
	want := mgl64.Vec3{11, -18, 33}
	if !out[0].ApproxEqualThreshold(want, 1e-15) {
		t.Errorf("got %v, want %v", out[0], want)
	}
}

func TestApplyBlendsTransforms(t *testing.T) {
	// Two transforms translating in opposite directions; a half-half weight
	// row must cancel them.
	plus := mgl64.Translate3D(2, 0, 0)
	minus := mgl64.Translate3D(-2, 0, 0)

	posed := []mgl64.Vec3{{0, 1, 0}}
	weights := []float64{0.5, 0.5}

	out := Apply(weights, []mgl64.Mat4{plus, minus}, posed, mgl64.Vec3{})
	if !out[0].ApproxEqualThreshold(posed[0], 1e-15) {
		t.Errorf("balanced blend should cancel, got %v", out[0])
	}
}
