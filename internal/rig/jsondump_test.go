package rig

import (
	"strings"
	"testing"
)

// dump is a hand-built two-joint, two-vertex model in the original key
// layout. The kintree table uses non-contiguous joint ids to exercise the
// id-to-column resolution.
const dump = `{
	"v_template": [[0, 0, 0], [0, 1, 0]],
	"shapedirs": [
		[[1,0,0,0,0,0,0,0,0,0], [0,0,0,0,0,0,0,0,0,0], [0,0,0,0,0,0,0,0,0,0]],
		[[0,0,0,0,0,0,0,0,0,0], [0,0,0,0,0,0,0,0,0,0], [0,0,0,0,0,0,0,0,0,0]]
	],
	"posedirs": [
		[[0,0,0,0,0,0,0,0,0], [0,0,0,0,0,0,0,0,0], [0,0,0,0,0,0,0,0,0]],
		[[0,0,0,0,0,0,0,0,0], [0,0,0,0,0,0,0,0,0], [0,0,0,0,0,0,0,0,0]]
	],
	"J_regressor": [[1, 0], [0, 1]],
	"weights": [[1, 0], [0, 1]],
	"kintree_table": [[99999, 7], [7, 13]],
	"f": [[0, 1, 0]]
}`

func TestParseJSONDump(t *testing.T) {
	p, err := ParseJSONDump([]byte(dump))
	if err != nil {
		t.Fatalf("ParseJSONDump: %v", err)
	}

	if p.NumVertices() != 2 || p.NumJoints() != 2 {
		t.Fatalf("N=%d K=%d, want 2/2", p.NumVertices(), p.NumJoints())
	}
	if p.Parent[0] != NoParent {
		t.Errorf("root parent = %d", p.Parent[0])
	}
	// Joint id 13's parent id 7 resolves to column 0.
	if p.Parent[1] != 0 {
		t.Errorf("child parent = %d, want 0", p.Parent[1])
	}
	if p.ShapeBasis[0] != 1 {
		t.Errorf("shape basis not flattened in row-major order")
	}
}

func TestParseJSONDumpUnknownParentID(t *testing.T) {
	bad := strings.Replace(dump, `[[99999, 7], [7, 13]]`, `[[99999, 8], [7, 13]]`, 1)
	if _, err := ParseJSONDump([]byte(bad)); err == nil {
		t.Error("expected error for unknown parent id")
	}
}

func TestParseJSONDumpRejectsGarbage(t *testing.T) {
	if _, err := ParseJSONDump([]byte("not json")); err == nil {
		t.Error("expected error for invalid json")
	}
}
