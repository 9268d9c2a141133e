package rig

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// jsonDump mirrors the key layout of the original pickle archive, dumped to
// JSON by the accompanying Python script. Array nesting follows the source:
// shapedirs/posedirs are N×3×D, the regressor is K×N, weights are N×K and
// kintree_table is 2×K (row 0 = parent joint id, row 1 = joint id).
type jsonDump struct {
	Template       [][]float64   `json:"v_template"`
	ShapeDirs      [][][]float64 `json:"shapedirs"`
	PoseDirs       [][][]float64 `json:"posedirs"`
	JointRegressor [][]float64   `json:"J_regressor"`
	Weights        [][]float64   `json:"weights"`
	KintreeTable   [][]int       `json:"kintree_table"`
	Faces          [][]int       `json:"f"`
}

// ParseJSONDump converts a JSON dump of the original model archive into
// validated rig parameters. One-time conversion path; the binary archive is
// the operational format.
func ParseJSONDump(data []byte) (*Parameters, error) {
	var d jsonDump
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("rig: parse json dump: %w", err)
	}

	n := len(d.Template)
	if n == 0 {
		return nil, fmt.Errorf("rig: json dump has no template vertices")
	}
	if len(d.KintreeTable) != 2 || len(d.KintreeTable[0]) != len(d.KintreeTable[1]) {
		return nil, fmt.Errorf("rig: json dump kintree_table is not 2×K")
	}
	k := len(d.KintreeTable[0])

	parent, err := parentFromKintree(d.KintreeTable)
	if err != nil {
		return nil, err
	}

	p := &Parameters{
		Template: make([]mgl64.Vec3, n),
		Parent:   parent,
		Faces:    make([][3]int, len(d.Faces)),
	}

	for i, v := range d.Template {
		if len(v) != 3 {
			return nil, fmt.Errorf("rig: template vertex %d has %d components", i, len(v))
		}
		p.Template[i] = mgl64.Vec3{v[0], v[1], v[2]}
	}
	if p.ShapeBasis, err = flatten3(d.ShapeDirs, n, ShapeCoeffs, "shapedirs"); err != nil {
		return nil, err
	}
	if p.PoseBasis, err = flatten3(d.PoseDirs, n, 9*(k-1), "posedirs"); err != nil {
		return nil, err
	}
	if p.JointRegressor, err = flatten2(d.JointRegressor, k, n, "J_regressor"); err != nil {
		return nil, err
	}
	if p.Weights, err = flatten2(d.Weights, n, k, "weights"); err != nil {
		return nil, err
	}
	for i, f := range d.Faces {
		if len(f) != 3 {
			return nil, fmt.Errorf("rig: face %d has %d indices", i, len(f))
		}
		p.Faces[i] = [3]int{f[0], f[1], f[2]}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// parentFromKintree resolves the 2×K joint-id table into a parent index
// array, mapping joint ids to column positions the way the original loader
// does. Column 0 is the root; its parent id is a dangling sentinel.
func parentFromKintree(table [][]int) ([]int, error) {
	k := len(table[0])
	idToCol := make(map[int]int, k)
	for i := 0; i < k; i++ {
		idToCol[table[1][i]] = i
	}

	parent := make([]int, k)
	parent[0] = NoParent
	for i := 1; i < k; i++ {
		col, ok := idToCol[table[0][i]]
		if !ok {
			return nil, fmt.Errorf("rig: kintree parent id %d of joint %d is unknown", table[0][i], i)
		}
		parent[i] = col
	}
	return parent, nil
}

func flatten2(rows [][]float64, nr, nc int, name string) ([]float64, error) {
	if len(rows) != nr {
		return nil, fmt.Errorf("rig: %s has %d rows, want %d", name, len(rows), nr)
	}
	out := make([]float64, 0, nr*nc)
	for i, row := range rows {
		if len(row) != nc {
			return nil, fmt.Errorf("rig: %s row %d has %d values, want %d", name, i, len(row), nc)
		}
		out = append(out, row...)
	}
	return out, nil
}

func flatten3(rows [][][]float64, nr, nd int, name string) ([]float64, error) {
	if len(rows) != nr {
		return nil, fmt.Errorf("rig: %s has %d rows, want %d", name, len(rows), nr)
	}
	out := make([]float64, 0, nr*3*nd)
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("rig: %s row %d has %d components, want 3", name, i, len(row))
		}
		for _, comp := range row {
			if len(comp) != nd {
				return nil, fmt.Errorf("rig: %s row %d has %d basis values, want %d", name, i, len(comp), nd)
			}
			out = append(out, comp...)
		}
	}
	return out, nil
}
