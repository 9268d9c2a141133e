// Package preview rasterizes a posed body mesh into a flat-shaded image for
// quick visual checks of exported frames.
package preview

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Options controls preview rendering.
type Options struct {
	Size        int     // output image is Size×Size
	Supersample int     // internal oversampling factor, ≥1
	YawDeg      float64 // rotation of the body around its vertical axis
}

// DefaultOptions returns a 256px preview with 2× supersampling and a slight
// three-quarter view.
func DefaultOptions() Options {
	return Options{Size: 256, Supersample: 2, YawDeg: 20}
}

// Render projects the mesh with a fixed orthographic camera, fits it to the
// frame and rasterizes every triangle. Returns the supersampled image; use
// Downsample to reach the target size.
func Render(verts []mgl64.Vec3, faces [][3]int, opt Options) *image.NRGBA {
	if opt.Size <= 0 {
		opt.Size = 256
	}
	if opt.Supersample < 1 {
		opt.Supersample = 1
	}
	renderSize := opt.Size * opt.Supersample

	if len(verts) == 0 || len(faces) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	}

	view := mgl64.Rotate3DX(mgl64.DegToRad(-8)).Mul3(mgl64.Rotate3DY(mgl64.DegToRad(opt.YawDeg)))

	// Transform and fit bounding box
	rotated := make([]mgl64.Vec3, len(verts))
	mn := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	mx := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i, v := range verts {
		tv := view.Mul3x1(v)
		rotated[i] = tv
		for k := 0; k < 3; k++ {
			if tv[k] < mn[k] {
				mn[k] = tv[k]
			}
			if tv[k] > mx[k] {
				mx[k] = tv[k]
			}
		}
	}

	center := mn.Add(mx).Mul(0.5)
	span := mx[0] - mn[0]
	if s := mx[1] - mn[1]; s > span {
		span = s
	}
	if span < 0.001 {
		span = 0.001
	}

	margin := 16 * opt.Supersample
	scale := float64(renderSize-2*margin) / span

	// Screen projection: x right, y down, z toward the viewer wins the
	// depth test.
	px := make([]float64, len(verts))
	py := make([]float64, len(verts))
	pz := make([]float64, len(verts))
	half := float64(renderSize) / 2
	for i, v := range rotated {
		px[i] = (v[0]-center[0])*scale + half
		py[i] = half - (v[1]-center[1])*scale
		pz[i] = v[2]
	}

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()
	for _, f := range faces {
		fillTriangle(fb, px, py, pz, f, &lc)
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.Color)
	return img
}
