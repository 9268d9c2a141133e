// Package objfile writes Wavefront OBJ text meshes. The output grammar is
// fixed for downstream tooling: one "v %f %f %f" line per vertex, one
// "f %d %d %d" line per face with one-based indices.
package objfile

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
)

// Export writes vertices and optional faces to w. Pass nil faces to export
// a point cloud without topology.
func Export(w io.Writer, verts []mgl64.Vec3, faces [][3]int) error {
	bw := bufio.NewWriter(w)
	for _, v := range verts {
		if _, err := fmt.Fprintf(bw, "v %f %f %f\n", v[0], v[1], v[2]); err != nil {
			return fmt.Errorf("objfile: write vertex: %w", err)
		}
	}
	for _, f := range faces {
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1); err != nil {
			return fmt.Errorf("objfile: write face: %w", err)
		}
	}
	return bw.Flush()
}

// WriteFile exports to a file, creating or truncating it.
func WriteFile(path string, verts []mgl64.Vec3, faces [][3]int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("objfile: create %s: %w", path, err)
	}
	if err := Export(f, verts, faces); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("objfile: close %s: %w", path, err)
	}
	return nil
}
