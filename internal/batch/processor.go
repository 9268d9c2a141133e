// Package batch exports a sequence of pose frames as mesh files using a
// worker pool. Each worker owns its own evaluator; the rig parameters are
// shared read-only.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"smpl-mesh-renderer/internal/body"
	"smpl-mesh-renderer/internal/logger"
	"smpl-mesh-renderer/internal/objfile"
	"smpl-mesh-renderer/internal/posefile"
	"smpl-mesh-renderer/internal/preview"
	"smpl-mesh-renderer/internal/rig"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir   string
	Preview     bool
	PreviewSize int
	Supersample int
	Workers     int
}

// Result holds the outcome of processing one frame.
type Result struct {
	Frame   string
	Index   int
	Success bool
	Error   string
}

// Run exports every frame file using a worker pool and returns one Result
// per frame, in input order.
func Run(cfg Config, params *rig.Parameters, frames []string) []Result {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					logger.Info("progress",
						zap.Int64("frames", p),
						zap.Int("total", total),
						zap.Float64("rate", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool; each worker gets its own evaluator since SetParameters
	// calls must not be shared.
	frameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			model := body.New(params)
			for idx := range frameChan {
				results[idx] = processFrame(cfg, model, frames[idx], idx)
				processed.Add(1)
			}
		}()
	}

	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func processFrame(cfg Config, model *body.Model, framePath string, idx int) Result {
	res := Result{Frame: filepath.Base(framePath), Index: idx}

	frame, err := posefile.Load(framePath, model.Params().NumJoints())
	if err != nil {
		res.Error = err.Error()
		return res
	}

	// Frames are self-contained: a missing shape or trans override means the
	// defaults, not whatever the previous frame on this worker set.
	update := body.Update{
		Pose:        frame.Pose,
		Shape:       frame.Shape,
		Translation: frame.Translation,
	}
	if update.Shape == nil {
		update.Shape = make([]float64, rig.ShapeCoeffs)
	}
	if update.Translation == nil {
		update.Translation = &mgl64.Vec3{}
	}

	verts, err := model.SetParameters(update)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	stem := strings.TrimSuffix(res.Frame, filepath.Ext(res.Frame))
	objPath := filepath.Join(cfg.OutputDir, stem+".obj")
	if err := objfile.WriteFile(objPath, verts, model.Params().Faces); err != nil {
		res.Error = err.Error()
		return res
	}

	if cfg.Preview {
		if err := writePreview(cfg, model, stem, verts); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	res.Success = true
	return res
}

func writePreview(cfg Config, model *body.Model, stem string, verts []mgl64.Vec3) error {
	opt := preview.DefaultOptions()
	opt.Size = cfg.PreviewSize
	opt.Supersample = cfg.Supersample

	img := preview.Render(verts, model.Params().Faces, opt)
	if cfg.Supersample > 1 {
		img = preview.Downsample(img, cfg.PreviewSize)
	}

	outPath := filepath.Join(cfg.OutputDir, stem+".webp")
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("batch: create %s: %w", outPath, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("batch: webp encode %s: %w", outPath, err)
	}
	return nil
}
