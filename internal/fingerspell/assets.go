// Package fingerspell plays back text as a timed sequence of hand-shape
// images, one letter at a time, for users reading signs rather than text.
package fingerspell

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/charmbracelet/log"
)

// ErrAssets is returned when the letter image set cannot be loaded. The
// caller treats it as fatal at startup.
var ErrAssets = errors.New("fingerspell: letter assets unavailable")

// Library is the static letter-to-image mapping, loaded once at startup
// and immutable afterwards.
type Library struct {
	images map[rune][]byte
}

// NewLibrary builds a library from an in-memory mapping. Used in tests;
// production code loads from disk with LoadLibrary.
func NewLibrary(images map[rune][]byte) *Library {
	return &Library{images: images}
}

// LoadLibrary reads the hand-shape image for every letter A-Z from dir.
// Files are named after the letter (a.png, B.jpg, ...). A missing or
// undecodable letter fails the whole load.
func LoadLibrary(dir string) (*Library, error) {
	images := make(map[rune][]byte, 26)

	for letter := 'A'; letter <= 'Z'; letter++ {
		data, err := readLetterImage(dir, letter)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssets, err)
		}
		images[letter] = data
	}

	log.Debug("letter assets loaded", "dir", dir, "letters", len(images))
	return &Library{images: images}, nil
}

func readLetterImage(dir string, letter rune) ([]byte, error) {
	names := []string{
		string(letter) + ".png",
		string(letter) + ".jpg",
		strings.ToLower(string(letter)) + ".png",
		strings.ToLower(string(letter)) + ".jpg",
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%s: %v", path, err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("no image for letter %c in %s", letter, dir)
}

// Image returns the hand-shape image for a letter.
func (l *Library) Image(letter rune) ([]byte, bool) {
	data, ok := l.images[letter]
	return data, ok
}

// Letters returns how many letters have images.
func (l *Library) Letters() int {
	return len(l.images)
}
