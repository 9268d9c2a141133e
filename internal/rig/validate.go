package rig

import (
	"fmt"
	"math"
)

// weightRowTol is the allowed deviation of a skinning weight row sum from 1.
const weightRowTol = 1e-4

// Validate checks dimensional consistency and the topology invariants of the
// rig. It runs once at construction; the deformation core assumes a validated
// rig and never re-checks per frame.
func (p *Parameters) Validate() error {
	n := p.NumVertices()
	k := p.NumJoints()

	if n == 0 {
		return fmt.Errorf("rig: empty template mesh")
	}
	if k < 1 {
		return fmt.Errorf("rig: no joints")
	}

	if got, want := len(p.ShapeBasis), n*3*ShapeCoeffs; got != want {
		return fmt.Errorf("rig: shape basis has %d values, want %d", got, want)
	}
	if got, want := len(p.PoseBasis), n*3*p.PoseBasisDims(); got != want {
		return fmt.Errorf("rig: pose basis has %d values, want %d", got, want)
	}
	if got, want := len(p.JointRegressor), k*n; got != want {
		return fmt.Errorf("rig: joint regressor has %d values, want %d", got, want)
	}
	if got, want := len(p.Weights), n*k; got != want {
		return fmt.Errorf("rig: weight matrix has %d values, want %d", got, want)
	}

	// Hierarchy: single root at 0, each parent precedes its child. Index
	// order is then a valid topological order and cycles are impossible.
	if p.Parent[0] != NoParent {
		return fmt.Errorf("rig: joint 0 must be the root, got parent %d", p.Parent[0])
	}
	for i := 1; i < k; i++ {
		if p.Parent[i] < 0 || p.Parent[i] >= i {
			return fmt.Errorf("rig: joint %d has invalid parent %d", i, p.Parent[i])
		}
	}

	// Skinning rows must be convex combinations.
	for v := 0; v < n; v++ {
		sum := 0.0
		for j := 0; j < k; j++ {
			w := p.Weights[v*k+j]
			if w < 0 {
				return fmt.Errorf("rig: negative skinning weight %g at vertex %d joint %d", w, v, j)
			}
			sum += w
		}
		if math.Abs(sum-1) > weightRowTol {
			return fmt.Errorf("rig: skinning weights of vertex %d sum to %g", v, sum)
		}
	}

	for fi, f := range p.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("rig: face %d references vertex %d (mesh has %d)", fi, idx, n)
			}
		}
	}

	return nil
}
