package rig

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
)

// Model archive layout, little-endian:
//
//	magic   "SMR1" (4 bytes)
//	counts  u32 N, u32 K, u32 F
//	arrays  f64: template N*3, shape basis N*3*10, pose basis N*3*9*(K-1),
//	        joint regressor K*N, weights N*K
//	parent  i32 per joint (-1 for the root)
//	faces   u32 per index, F*3
const archiveMagic = "SMR1"

// Parse reads a model archive and returns validated rig parameters.
func Parse(path string) (*Parameters, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rig: read %s: %w", path, err)
	}

	if len(raw) < 16 || string(raw[:4]) != archiveMagic {
		return nil, fmt.Errorf("rig: invalid archive header in %s", path)
	}

	r := &reader{data: raw, off: 4}
	n := int(r.readU32())
	k := int(r.readU32())
	f := int(r.readU32())

	if n <= 0 || n > 1<<22 || k <= 0 || k > 1<<10 || f < 0 || f > 1<<22 {
		return nil, fmt.Errorf("rig: implausible counts N=%d K=%d F=%d in %s", n, k, f, path)
	}

	// A crafted header must not drive huge allocations; the file has to hold
	// every array the counts promise before anything is allocated.
	need := 16 + 8*(n*3+n*3*ShapeCoeffs+n*3*9*(k-1)+k*n+n*k) + 4*k + 12*f
	if len(raw) < need {
		return nil, fmt.Errorf("rig: truncated archive %s: %d bytes, counts need %d", path, len(raw), need)
	}

	p := &Parameters{
		Template:       make([]mgl64.Vec3, n),
		ShapeBasis:     make([]float64, n*3*ShapeCoeffs),
		PoseBasis:      make([]float64, n*3*9*(k-1)),
		JointRegressor: make([]float64, k*n),
		Weights:        make([]float64, n*k),
		Parent:         make([]int, k),
		Faces:          make([][3]int, f),
	}

	for i := range p.Template {
		p.Template[i] = mgl64.Vec3{r.readF64(), r.readF64(), r.readF64()}
	}
	r.readF64s(p.ShapeBasis)
	r.readF64s(p.PoseBasis)
	r.readF64s(p.JointRegressor)
	r.readF64s(p.Weights)
	for i := range p.Parent {
		p.Parent[i] = int(r.readI32())
	}
	for i := range p.Faces {
		p.Faces[i] = [3]int{int(r.readU32()), int(r.readU32()), int(r.readU32())}
	}

	if r.short {
		return nil, fmt.Errorf("rig: truncated archive %s", path)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w (archive %s)", err, path)
	}

	return p, nil
}

// WriteArchive serializes rig parameters in the model archive format.
// Used by the conversion tool and round-trip tests.
func WriteArchive(path string, p *Parameters) error {
	n := p.NumVertices()
	k := p.NumJoints()

	buf := make([]byte, 0, 16+8*(n*3+len(p.ShapeBasis)+len(p.PoseBasis)+len(p.JointRegressor)+len(p.Weights))+4*k+12*len(p.Faces))
	buf = append(buf, archiveMagic...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(n))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(k))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(p.Faces)))

	for _, v := range p.Template {
		for c := 0; c < 3; c++ {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v[c]))
		}
	}
	for _, arr := range [][]float64{p.ShapeBasis, p.PoseBasis, p.JointRegressor, p.Weights} {
		for _, x := range arr {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(x))
		}
	}
	for _, pa := range p.Parent {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(pa)))
	}
	for _, f := range p.Faces {
		for c := 0; c < 3; c++ {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(f[c]))
		}
	}

	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("rig: write %s: %w", path, err)
	}
	return nil
}

type reader struct {
	data  []byte
	off   int
	short bool
}

func (r *reader) readU32() uint32 {
	if r.off+4 > len(r.data) {
		r.off = len(r.data)
		r.short = true
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *reader) readI32() int32 {
	return int32(r.readU32())
}

func (r *reader) readF64() float64 {
	if r.off+8 > len(r.data) {
		r.off = len(r.data)
		r.short = true
		return 0
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(r.data[r.off:]))
	r.off += 8
	return v
}

func (r *reader) readF64s(dst []float64) {
	for i := range dst {
		dst[i] = r.readF64()
	}
}
