package body

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"smpl-mesh-renderer/internal/rig"
)

// testRig builds a minimal two-joint rig: the root at the origin, a child
// joint one unit up, and three vertices at the joints plus one past the
// child. Bases are zero so only the kinematic chain and skinning act.
func testRig(t *testing.T) *rig.Parameters {
	t.Helper()
	p := &rig.Parameters{
		Template:   []mgl64.Vec3{{0, 0, 0}, {0, 1, 0}, {0, 2, 0}},
		ShapeBasis: make([]float64, 3*3*rig.ShapeCoeffs),
		PoseBasis:  make([]float64, 3*3*9),
		JointRegressor: []float64{
			1, 0, 0, // root from vertex 0
			0, 1, 0, // child from vertex 1
		},
		Weights: []float64{
			1, 0,
			0, 1,
			0, 1,
		},
		Parent: []int{-1, 0},
		Faces:  [][3]int{{0, 1, 2}},
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("fixture rig invalid: %v", err)
	}
	return p
}

func TestIdentityAtRest(t *testing.T) {
	p := testRig(t)
	m := New(p)

	for i, v := range m.Vertices() {
		if !v.ApproxEqualThreshold(p.Template[i], 1e-12) {
			t.Errorf("vertex %d at rest = %v, want template %v", i, v, p.Template[i])
		}
	}
}

func TestChildRotationScenario(t *testing.T) {
	p := testRig(t)
	m := New(p)

	pose := []mgl64.Vec3{{0, 0, 0}, {0, 0, math.Pi / 2}}
	verts, err := m.SetParameters(Update{Pose: pose})
	if err != nil {
		t.Fatalf("SetParameters: %v", err)
	}

	want := []mgl64.Vec3{
		{0, 0, 0},  // root vertex, zero rotation
		{0, 1, 0},  // sits exactly at the child joint pivot
		{-1, 1, 0}, // one unit past the pivot, swung 90° about Z
	}
	for i := range want {
		if !verts[i].ApproxEqualThreshold(want[i], 1e-12) {
			t.Errorf("vertex %d = %v, want %v", i, verts[i], want[i])
		}
	}
}

func TestTranslationLinearity(t *testing.T) {
	p := testRig(t)
	m := New(p)

	pose := []mgl64.Vec3{{0.2, -0.1, 0.4}, {0, 0, 1.1}}
	t1 := mgl64.Vec3{1, 2, 3}
	t2 := mgl64.Vec3{-4, 0.5, 7}

	a, err := m.SetParameters(Update{Pose: pose, Translation: &t1})
	if err != nil {
		t.Fatalf("SetParameters: %v", err)
	}
	first := append([]mgl64.Vec3(nil), a...)

	b, err := m.SetParameters(Update{Translation: &t2})
	if err != nil {
		t.Fatalf("SetParameters: %v", err)
	}

	delta := t2.Sub(t1)
	for i := range first {
		if !b[i].Sub(first[i]).ApproxEqualThreshold(delta, 1e-12) {
			t.Errorf("vertex %d moved by %v, want %v", i, b[i].Sub(first[i]), delta)
		}
	}
}

func TestDeterminism(t *testing.T) {
	p := testRig(t)

	state := State{
		Pose:        []mgl64.Vec3{{0.3, 0.1, -0.2}, {0.9, -1.4, 0.5}},
		Shape:       make([]float64, rig.ShapeCoeffs),
		Translation: mgl64.Vec3{0.1, 0.2, 0.3},
	}

	a := Evaluate(p, state)
	b := Evaluate(p, state)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("vertex %d differs between identical evaluations: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestDimensionMismatch(t *testing.T) {
	p := testRig(t)
	m := New(p)

	before := append([]mgl64.Vec3(nil), m.Vertices()...)

	tests := []struct {
		name   string
		update Update
	}{
		{"pose too short", Update{Pose: []mgl64.Vec3{{0, 0, 1}}}},
		{"pose too long", Update{Pose: make([]mgl64.Vec3, 5)}},
		{"shape too short", Update{Shape: []float64{1, 2}}},
		{"shape too long", Update{Shape: make([]float64, rig.ShapeCoeffs+1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.SetParameters(tt.update)
			var dimErr *DimensionError
			if !errors.As(err, &dimErr) {
				t.Fatalf("want DimensionError, got %v", err)
			}

			// All-or-nothing: rejected updates leave the buffer untouched.
			for i, v := range m.Vertices() {
				if v != before[i] {
					t.Errorf("vertex %d changed after rejected update", i)
				}
			}
		})
	}
}

func TestPartialUpdateKeepsOtherGroups(t *testing.T) {
	p := testRig(t)
	m := New(p)

	trans := mgl64.Vec3{0, 0, 5}
	if _, err := m.SetParameters(Update{Translation: &trans}); err != nil {
		t.Fatalf("SetParameters: %v", err)
	}

	// Pose-only update must keep the translation set above.
	verts, err := m.SetParameters(Update{Pose: []mgl64.Vec3{{0, 0, 0}, {0, 0, 0}}})
	if err != nil {
		t.Fatalf("SetParameters: %v", err)
	}
	want := p.Template[0].Add(trans)
	if !verts[0].ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("vertex 0 = %v, want %v", verts[0], want)
	}
}

func TestVerticesNoRecompute(t *testing.T) {
	p := testRig(t)
	m := New(p)

	verts, err := m.SetParameters(Update{Pose: []mgl64.Vec3{{0, 0, 0.5}, {0, 0, 0}}})
	if err != nil {
		t.Fatalf("SetParameters: %v", err)
	}
	for i := range verts {
		if m.Vertices()[i] != verts[i] {
			t.Errorf("accessor disagrees with last SetParameters result at %d", i)
		}
	}
}
