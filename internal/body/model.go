// Package body evaluates the deformation pipeline of a parametric body rig:
// shape blend, per-joint rotations, kinematic chain and linear blend
// skinning, orchestrated behind a small stateful facade.
package body

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"smpl-mesh-renderer/internal/rig"
	"smpl-mesh-renderer/internal/skeleton"
	"smpl-mesh-renderer/internal/skinning"
)

// State holds the dynamic parameters of one evaluation: per-joint axis-angle
// rotations (root entry is the global orientation), shape coefficients and a
// global translation.
type State struct {
	Pose        []mgl64.Vec3
	Shape       []float64
	Translation mgl64.Vec3
}

// DimensionError reports a parameter whose size disagrees with the rig.
type DimensionError struct {
	Param string
	Want  int
	Got   int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("body: %s has %d entries, rig expects %d", e.Param, e.Got, e.Want)
}

// Evaluate runs the full pipeline for the given rig and state and returns the
// deformed vertex positions. Pure function: identical inputs produce
// bit-identical output.
func Evaluate(p *rig.Parameters, s State) []mgl64.Vec3 {
	shaped := skinning.ShapeBlend(p, s.Shape)
	restJoints := p.RegressJoints(shaped)
	rotations := skeleton.Rodrigues(s.Pose)
	posed := skinning.PoseBlend(p, shaped, rotations)
	transforms := skeleton.GlobalTransforms(rotations, restJoints, p.Parent)
	return skinning.Apply(p.Weights, transforms, posed, s.Translation)
}

// Model wraps Evaluate with a cached current state for repeated queries.
// Not safe for concurrent SetParameters calls; intended usage is one Model
// per frame stream.
type Model struct {
	params *rig.Parameters
	state  State
	verts  []mgl64.Vec3
}

// New creates a model at zero pose, shape and translation and evaluates it.
func New(params *rig.Parameters) *Model {
	m := &Model{
		params: params,
		state: State{
			Pose:  make([]mgl64.Vec3, params.NumJoints()),
			Shape: make([]float64, rig.ShapeCoeffs),
		},
	}
	m.verts = Evaluate(m.params, m.state)
	return m
}

// Update describes a partial parameter change. Nil fields keep their current
// value.
type Update struct {
	Pose        []mgl64.Vec3
	Shape       []float64
	Translation *mgl64.Vec3
}

// SetParameters replaces the given parameter groups, re-evaluates the
// pipeline and returns the new vertex buffer. On a dimension mismatch no
// state changes and the previous vertices remain current.
func (m *Model) SetParameters(u Update) ([]mgl64.Vec3, error) {
	if u.Pose != nil && len(u.Pose) != m.params.NumJoints() {
		return nil, &DimensionError{Param: "pose", Want: m.params.NumJoints(), Got: len(u.Pose)}
	}
	if u.Shape != nil && len(u.Shape) != rig.ShapeCoeffs {
		return nil, &DimensionError{Param: "shape", Want: rig.ShapeCoeffs, Got: len(u.Shape)}
	}

	if u.Pose != nil {
		copy(m.state.Pose, u.Pose)
	}
	if u.Shape != nil {
		copy(m.state.Shape, u.Shape)
	}
	if u.Translation != nil {
		m.state.Translation = *u.Translation
	}

	m.verts = Evaluate(m.params, m.state)
	return m.verts, nil
}

// Vertices returns the current vertex buffer without recomputation. The
// caller must not mutate it.
func (m *Model) Vertices() []mgl64.Vec3 { return m.verts }

// Params returns the rig the model evaluates.
func (m *Model) Params() *rig.Parameters { return m.params }
