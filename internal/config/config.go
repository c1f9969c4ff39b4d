// Package config reads application settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds everything tunable from the environment. Every field has a
// working default; the app runs with no environment at all.
type Config struct {
	// Camera.
	CameraDevice int  `env:"MUDRA_CAMERA_DEVICE" envDefault:"0"`
	CameraWidth  int  `env:"MUDRA_CAMERA_WIDTH"  envDefault:"640"`
	CameraHeight int  `env:"MUDRA_CAMERA_HEIGHT" envDefault:"480"`
	Mirror       bool `env:"MUDRA_MIRROR"        envDefault:"true"`

	// Recognition.
	ModelPath     string  `env:"MUDRA_MODEL"          envDefault:"models/fingerspell.onnx"`
	MinConfidence float64 `env:"MUDRA_MIN_CONFIDENCE" envDefault:"0.35"`
	StableTicks   int     `env:"MUDRA_STABLE_TICKS"   envDefault:"12"`
	ActiveFPS     float64 `env:"MUDRA_ACTIVE_FPS"     envDefault:"15"`
	IdleFPS       float64 `env:"MUDRA_IDLE_FPS"       envDefault:"2"`

	// Suggestions.
	WordListPath  string `env:"MUDRA_WORDLIST"`
	MaxCandidates int    `env:"MUDRA_MAX_CANDIDATES" envDefault:"4"`

	// Speech.
	PiperBin    string `env:"MUDRA_PIPER_BIN"`
	VoiceModel  string `env:"MUDRA_VOICE_MODEL"  envDefault:"models/voice.onnx"`
	WhisperBin  string `env:"MUDRA_WHISPER_BIN"  envDefault:"whisper-cli"`
	SpeechModel string `env:"MUDRA_SPEECH_MODEL" envDefault:"models/ggml-base.en.bin"`

	// Fingerspelling.
	AssetDir      string `env:"MUDRA_ASSETS"            envDefault:"assets/letters"`
	FrameInterval int    `env:"MUDRA_FRAME_INTERVAL_MS" envDefault:"800"`

	// Presentation.
	ListenAddr string `env:"MUDRA_LISTEN" envDefault:"127.0.0.1:8790"`

	// Storage and logging.
	DataDir  string `env:"MUDRA_DATA_DIR"`
	LogLevel string `env:"MUDRA_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".mudra")
	}

	return cfg, nil
}

// DatabasePath is the settings database location under the data dir.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "mudra.db")
}
