package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/fingerspell"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/speech"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/suggest"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", "err", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatal("Failed to create data directory", "dir", cfg.DataDir, "err", err)
	}

	st, err := store.New(cfg.DatabasePath())
	if err != nil {
		log.Fatal("Failed to initialize store", "err", err)
	}
	defer st.Close()

	// Saved settings win over environment defaults.
	stableTicks, _ := st.Settings().GetInt(store.SettingStableTicks, cfg.StableTicks)
	frameInterval, _ := st.Settings().GetInt(store.SettingFrameInterval, cfg.FrameInterval)
	mirror, _ := st.Settings().GetBool(store.SettingMirrorPreview, cfg.Mirror)
	voiceEnabled, _ := st.Settings().GetBool(store.SettingVoiceEnabled, true)

	// The recognition model and the letter artwork are both required; the
	// app cannot translate in either direction without them.
	classifier, err := classify.NewCNN(classify.CNNConfig{
		ModelPath: cfg.ModelPath,
		InputSize: detector.CanvasSize,
	})
	if err != nil {
		log.Fatal("Failed to load recognition model", "path", cfg.ModelPath, "err", err)
	}

	letters, err := fingerspell.LoadLibrary(cfg.AssetDir)
	if err != nil {
		log.Fatal("Failed to load letter artwork", "dir", cfg.AssetDir, "err", err)
	}
	speller := fingerspell.NewPlayer(letters, time.Duration(frameInterval)*time.Millisecond)

	camera := capture.NewCamera(capture.CameraConfig{
		DeviceID: cfg.CameraDevice,
		Width:    cfg.CameraWidth,
		Height:   cfg.CameraHeight,
		FPS:      int(cfg.ActiveFPS),
		Mirror:   mirror,
	})

	suggester := suggest.Builtin(cfg.MaxCandidates)
	if cfg.WordListPath != "" {
		if eng, err := suggest.NewFromFile(cfg.WordListPath, cfg.MaxCandidates); err == nil {
			suggester = eng
		} else {
			log.Warn("Failed to load word list, using built-in", "path", cfg.WordListPath, "err", err)
		}
	}

	var speaker *speech.Speaker
	if voiceEnabled {
		speaker = buildSpeaker(cfg)
	} else {
		log.Info("Voice output disabled in settings")
	}

	listener := speech.NewListener(speech.ListenerConfig{
		WhisperBin: cfg.WhisperBin,
		ModelPath:  cfg.SpeechModel,
		TempDir:    filepath.Join(cfg.DataDir, "stt"),
		Window:     speech.DefaultListenWindow,
	})

	a := app.New(app.Config{
		Camera:        camera,
		Classifier:    classifier,
		Suggester:     suggester,
		Speaker:       speaker,
		Listener:      listener,
		Speller:       speller,
		Store:         st,
		MinConfidence: cfg.MinConfidence,
		StableTicks:   stableTicks,
		IdleFPS:       int(cfg.IdleFPS),
		ActiveFPS:     int(cfg.ActiveFPS),
	})

	if err := a.Start(); err != nil {
		log.Fatal("Failed to start recognition pipeline", "err", err)
	}
	defer a.Stop()

	srv := server.New(server.Config{
		StaticDir: findWebDir(),
		App:       a,
		Store:     st,
		Letters:   letters,
	})

	go func() {
		log.Info("Starting server", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
			log.Fatal("Server failed", "err", err)
		}
	}()

	runTray(a, cfg.ListenAddr)
}

// buildSpeaker wires the voice output chain. Unlike the recognition model,
// a missing voice only degrades the app, so failures log and return nil.
func buildSpeaker(cfg config.Config) *speech.Speaker {
	synth, err := speech.NewPiperSynthesizer(speech.PiperConfig{
		BinaryPath: cfg.PiperBin,
		ModelPath:  cfg.VoiceModel,
	})
	if err != nil {
		log.Warn("Voice output unavailable", "err", err)
		return nil
	}

	player, err := speech.NewOtoPlayer()
	if err != nil {
		log.Warn("Audio playback unavailable", "err", err)
		return nil
	}

	return speech.NewSpeaker(synth, player)
}

// runTray runs the system tray menu. Blocks until quit.
func runTray(a *app.App, addr string) {
	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnSpeak(a.Speak)
	t.OnClear(a.Clear)
	t.OnListen(func() {
		if err := a.StartListening(); err != nil {
			log.Warn("Failed to start listening", "err", err)
		}
	})
	t.OnOpen(func() {
		openBrowser("http://" + addr + "/")
	})
	t.OnQuit(a.Stop)

	// The menu starts showing recognition as on; make the pipeline agree.
	a.SetEnabled(t.IsEnabled())

	// Keep the sentence preview in the menu fresh.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for range ticker.C {
			t.SetSentence(a.Sentence())
		}
	}()

	t.Run()
}

// openBrowser opens the given URL with the platform's default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Warn("Failed to open browser", "url", url, "err", err)
	}
}

// findWebDir searches for the web directory in common locations.
func findWebDir() string {
	for _, p := range []string{"web", "../web", "../../web"} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	webDir := filepath.Join(home, ".mudra", "web")
	if info, err := os.Stat(webDir); err == nil && info.IsDir() {
		return webDir
	}
	return ""
}
