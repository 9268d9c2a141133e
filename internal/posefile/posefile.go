// Package posefile loads pose frames from JSON files. A frame carries one
// axis-angle vector per joint plus optional shape and translation overrides.
package posefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Frame is one pose sample. Shape and Translation are nil when the file does
// not override them.
type Frame struct {
	Pose        []mgl64.Vec3
	Shape       []float64
	Translation *mgl64.Vec3
}

// rawFrame covers the two accepted shapes: an object with named fields, or a
// bare flat array (a plain 3K-vector dump).
type rawFrame struct {
	Pose  json.RawMessage `json:"pose"`
	Shape []float64       `json:"shape"`
	Trans []float64       `json:"trans"`
}

// Load reads one frame file and checks it against the rig's joint count.
// The pose may be a flat array of 3K values or K triples.
func Load(path string, numJoints int) (Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Frame{}, fmt.Errorf("posefile: read %s: %w", path, err)
	}

	var raw rawFrame
	if err := json.Unmarshal(data, &raw); err != nil {
		// Bare array form.
		raw = rawFrame{Pose: data}
	}
	if raw.Pose == nil {
		return Frame{}, fmt.Errorf("posefile: %s has no pose field", path)
	}

	pose, err := decodePose(raw.Pose, numJoints)
	if err != nil {
		return Frame{}, fmt.Errorf("posefile: %s: %w", path, err)
	}

	frame := Frame{Pose: pose, Shape: raw.Shape}
	if raw.Trans != nil {
		if len(raw.Trans) != 3 {
			return Frame{}, fmt.Errorf("posefile: %s: trans has %d values, want 3", path, len(raw.Trans))
		}
		t := mgl64.Vec3{raw.Trans[0], raw.Trans[1], raw.Trans[2]}
		frame.Translation = &t
	}
	return frame, nil
}

func decodePose(raw json.RawMessage, numJoints int) ([]mgl64.Vec3, error) {
	// Nested K×3 form first, then flat 3K.
	var nested [][]float64
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) != numJoints {
			return nil, fmt.Errorf("pose has %d joints, rig expects %d", len(nested), numJoints)
		}
		pose := make([]mgl64.Vec3, numJoints)
		for i, r := range nested {
			if len(r) != 3 {
				return nil, fmt.Errorf("pose joint %d has %d components", i, len(r))
			}
			pose[i] = mgl64.Vec3{r[0], r[1], r[2]}
		}
		return pose, nil
	}

	var flat []float64
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("pose is neither a flat array nor joint triples: %w", err)
	}
	if len(flat) != numJoints*3 {
		return nil, fmt.Errorf("pose has %d values, rig expects %d", len(flat), numJoints*3)
	}
	pose := make([]mgl64.Vec3, numJoints)
	for i := range pose {
		pose[i] = mgl64.Vec3{flat[i*3], flat[i*3+1], flat[i*3+2]}
	}
	return pose, nil
}

// List returns the sorted .json frame files directly inside dir.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("posefile: read dir %s: %w", dir, err)
	}

	var frames []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		frames = append(frames, filepath.Join(dir, e.Name()))
	}
	sort.Strings(frames)
	return frames, nil
}
