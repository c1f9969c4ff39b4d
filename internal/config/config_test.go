package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.CameraDevice != 0 {
		t.Errorf("CameraDevice = %d, want 0", cfg.CameraDevice)
	}
	if cfg.StableTicks != 12 {
		t.Errorf("StableTicks = %d, want 12", cfg.StableTicks)
	}
	if cfg.FrameInterval != 800 {
		t.Errorf("FrameInterval = %d, want 800", cfg.FrameInterval)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir not resolved")
	}
	if cfg.DatabasePath() == "" {
		t.Error("DatabasePath empty")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MUDRA_CAMERA_DEVICE", "2")
	t.Setenv("MUDRA_STABLE_TICKS", "20")
	t.Setenv("MUDRA_MIRROR", "false")
	t.Setenv("MUDRA_DATA_DIR", "/tmp/mudra-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.CameraDevice != 2 {
		t.Errorf("CameraDevice = %d, want 2", cfg.CameraDevice)
	}
	if cfg.StableTicks != 20 {
		t.Errorf("StableTicks = %d, want 20", cfg.StableTicks)
	}
	if cfg.Mirror {
		t.Error("Mirror = true, want false")
	}
	if cfg.DataDir != "/tmp/mudra-test" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("MUDRA_CAMERA_DEVICE", "not a number")

	if _, err := Load(); err == nil {
		t.Error("Load accepted a malformed value")
	}
}
