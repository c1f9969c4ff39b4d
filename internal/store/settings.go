package store

import (
	"database/sql"
	"errors"
	"strconv"
)

// Setting keys in use.
const (
	// SettingVoiceEnabled toggles automatic speech output.
	SettingVoiceEnabled = "voice_enabled"
	// SettingMirrorPreview toggles the mirrored camera preview.
	SettingMirrorPreview = "mirror_preview"
	// SettingStableTicks is the debounce threshold.
	SettingStableTicks = "stable_ticks"
	// SettingFrameInterval is the fingerspelling display interval in ms.
	SettingFrameInterval = "frame_interval_ms"
)

// SettingsRepository provides key-value access to application settings.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves a setting value. Returns ErrNotFound if the key has never
// been set.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// GetBool retrieves a boolean setting, falling back to def when unset.
func (r *SettingsRepository) GetBool(key string, def bool) (bool, error) {
	value, err := r.Get(key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return value == "1" || value == "true", nil
}

// GetInt retrieves an integer setting, falling back to def when unset or
// malformed.
func (r *SettingsRepository) GetInt(key string, def int) (int, error) {
	value, err := r.Get(key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def, nil
	}
	return n, nil
}

// Set stores a setting value, replacing any previous one.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// SetBool stores a boolean setting.
func (r *SettingsRepository) SetBool(key string, value bool) error {
	s := "0"
	if value {
		s = "1"
	}
	return r.Set(key, s)
}

// SetInt stores an integer setting.
func (r *SettingsRepository) SetInt(key string, value int) error {
	return r.Set(key, strconv.Itoa(value))
}
