package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"smpl-mesh-renderer/internal/batch"
	"smpl-mesh-renderer/internal/config"
	"smpl-mesh-renderer/internal/logger"
	"smpl-mesh-renderer/internal/posefile"
	"smpl-mesh-renderer/internal/rig"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.yaml file")
	modelPath := flag.String("model", "", "Path to model archive (.smr)")
	poseDir := flag.String("poses", "", "Directory of pose frame files (.json)")
	outputDir := flag.String("output", "", "Output directory (default: <poses>/../meshes)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Export only first N frames for testing")
	withPreview := flag.Bool("preview", false, "Also write a WebP preview per frame")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		ModelPath: *modelPath,
		PoseDir:   *poseDir,
		OutputDir: *outputDir,
		Workers:   *workers,
		Preview:   *withPreview,
	})

	if cfg.ModelPath == "" || cfg.PoseDir == "" {
		fmt.Fprintln(os.Stderr, "Error: model archive and pose directory required. Use -model/-poses or a config file.")
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, cfg.LogFile)
	defer logger.Sync()

	// Load rig
	params, err := rig.Parse(cfg.ModelPath)
	if err != nil {
		logger.Error("model load failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("model loaded",
		zap.String("path", cfg.ModelPath),
		zap.Int("vertices", params.NumVertices()),
		zap.Int("joints", params.NumJoints()),
		zap.Int("faces", len(params.Faces)))

	// Collect frames
	frames, err := posefile.List(cfg.PoseDir)
	if err != nil {
		logger.Error("pose scan failed", zap.Error(err))
		os.Exit(1)
	}
	if *testN > 0 && *testN < len(frames) {
		frames = frames[:*testN]
	}
	if len(frames) == 0 {
		fmt.Println("No pose frames to export.")
		os.Exit(0)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		logger.Error("output dir", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("export starting",
		zap.Int("frames", len(frames)),
		zap.Int("workers", cfg.Workers),
		zap.String("output", cfg.OutputDir),
		zap.Bool("preview", cfg.Preview))

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		Preview:     cfg.Preview,
		PreviewSize: cfg.PreviewSize,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
	}, params, frames)

	elapsed := time.Since(start)

	// Count results
	success, failed := 0, 0
	var failures []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			failures = append(failures, r)
		}
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())
	fmt.Printf("Exported: %d/%d\n", success, len(frames))

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(failures) < limit {
			limit = len(failures)
		}
		for _, f := range failures[:limit] {
			fmt.Printf("  %s: %s\n", f.Frame, f.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		logger.Warn("manifest write failed", zap.Error(err))
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
