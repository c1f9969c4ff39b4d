// Package tray provides the system tray interface for the Mudra translator.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle func(enabled bool)
	onSpeak  func()
	onClear  func()
	onListen func()
	onOpen   func()
	onQuit   func()
	enabled  bool
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle   *systray.MenuItem
	menuSentence *systray.MenuItem
}

// New creates a new Tray instance with recognition enabled by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback for toggling sign recognition.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnSpeak sets the callback for speaking the current sentence.
func (t *Tray) OnSpeak(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSpeak = fn
}

// OnClear sets the callback for clearing the sentence buffer.
func (t *Tray) OnClear(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onClear = fn
}

// OnListen sets the callback for starting a speech capture session.
func (t *Tray) OnListen(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onListen = fn
}

// OnOpen sets the callback for opening the translator window in a browser.
func (t *Tray) OnOpen(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpen = fn
}

// OnQuit sets the callback to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra Sign Language Translator")

	t.menuToggle = systray.AddMenuItem("● Recognition on", "Toggle sign recognition")
	systray.AddSeparator()

	t.menuSentence = systray.AddMenuItem("(empty)", "Current sentence")
	t.menuSentence.Disable()
	systray.AddSeparator()

	menuSpeak := systray.AddMenuItem("Speak Sentence", "Speak the current sentence aloud")
	menuClear := systray.AddMenuItem("Clear Sentence", "Clear the sentence buffer")
	menuListen := systray.AddMenuItem("Listen...", "Capture speech and fingerspell it")
	systray.AddSeparator()

	menuOpen := systray.AddMenuItem("Open Translator...", "Open the translator in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuSpeak.ClickedCh:
				t.handleSpeak()
			case <-menuClear.ClickedCh:
				t.handleClear()
			case <-menuListen.ClickedCh:
				t.handleListen()
			case <-menuOpen.ClickedCh:
				t.handleOpen()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Recognition on")
	} else {
		t.menuToggle.SetTitle("○ Recognition off")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleSpeak handles the speak menu item click.
func (t *Tray) handleSpeak() {
	t.mu.RLock()
	callback := t.onSpeak
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleClear handles the clear menu item click.
func (t *Tray) handleClear() {
	t.mu.RLock()
	callback := t.onClear
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleListen handles the listen menu item click.
func (t *Tray) handleListen() {
	t.mu.RLock()
	callback := t.onListen
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleOpen handles the open-translator menu item click.
func (t *Tray) handleOpen() {
	t.mu.RLock()
	callback := t.onOpen
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetSentence updates the sentence display in the menu.
func (t *Tray) SetSentence(text string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuSentence != nil {
		if text == "" {
			t.menuSentence.SetTitle("(empty)")
		} else {
			t.menuSentence.SetTitle(text)
		}
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
