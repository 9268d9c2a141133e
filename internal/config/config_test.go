package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoadAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
model_path: /data/model.smr
pose_dir: /data/poses
preview: true
workers: 4
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Resolve(Flags{})

	if cfg.ModelPath != "/data/model.smr" {
		t.Errorf("ModelPath = %q", cfg.ModelPath)
	}
	if !cfg.Preview {
		t.Error("Preview not set")
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.OutputDir != filepath.Join("/data", "meshes") {
		t.Errorf("OutputDir default = %q", cfg.OutputDir)
	}
	if cfg.PreviewSize != 256 || cfg.Supersample != 2 {
		t.Errorf("render defaults: size=%d ss=%d", cfg.PreviewSize, cfg.Supersample)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	cfg := Config{ModelPath: "/a.smr", PoseDir: "/poses", Workers: 2}
	cfg.Resolve(Flags{ModelPath: "/b.smr", OutputDir: "/out", Workers: 8})

	if cfg.ModelPath != "/b.smr" {
		t.Errorf("ModelPath = %q", cfg.ModelPath)
	}
	if cfg.OutputDir != "/out" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
}

func TestResolveDefaultWorkers(t *testing.T) {
	cfg := Config{}
	cfg.Resolve(Flags{})
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want NumCPU", cfg.Workers)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("model_path: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
