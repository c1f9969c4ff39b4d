package suggest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEngine_EmptyPartialReturnsNothing(t *testing.T) {
	e := New([]string{"hello", "world"}, 4)

	for _, partial := range []string{"", "   ", "\t"} {
		if got := e.Suggest(partial); len(got) != 0 {
			t.Errorf("Suggest(%q) = %v, want empty", partial, got)
		}
	}
}

func TestEngine_RanksCompletions(t *testing.T) {
	e := New([]string{"world", "word", "work", "would", "banana"}, 4)

	got := e.Suggest("wor")
	if len(got) == 0 {
		t.Fatal("expected suggestions for 'wor'")
	}

	for _, w := range got {
		if w == "banana" {
			t.Errorf("unrelated word %q suggested for 'wor'", w)
		}
	}
}

func TestEngine_MaxCandidates(t *testing.T) {
	words := []string{"cat", "cart", "case", "cast", "care", "card", "carp"}
	e := New(words, 3)

	got := e.Suggest("ca")
	if len(got) > 3 {
		t.Errorf("got %d suggestions, want at most 3", len(got))
	}
}

func TestEngine_CaseInsensitive(t *testing.T) {
	e := New([]string{"Hello"}, 4)

	// The buffer stores uppercase letters; suggestions should still hit.
	got := e.Suggest("HEL")
	if len(got) != 1 || got[0] != "hello" {
		t.Errorf("Suggest(\"HEL\") = %v, want [hello]", got)
	}
}

func TestEngine_Deduplicates(t *testing.T) {
	e := New([]string{"dog", "Dog", "DOG", ""}, 4)

	if e.WordCount() != 1 {
		t.Errorf("WordCount() = %d, want 1", e.WordCount())
	}
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "apple\nbanana\n\ncherry123\ndate\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	e, err := NewFromFile(path, 4)
	if err != nil {
		t.Fatalf("NewFromFile() error = %v", err)
	}

	// cherry123 and the blank line are skipped.
	if e.WordCount() != 3 {
		t.Errorf("WordCount() = %d, want 3", e.WordCount())
	}
}

func TestNewFromFile_Missing(t *testing.T) {
	if _, err := NewFromFile("/nonexistent/words.txt", 4); err == nil {
		t.Error("expected error for missing word list")
	}
}

func TestBuiltin(t *testing.T) {
	e := Builtin(4)

	if e.WordCount() == 0 {
		t.Fatal("builtin word list is empty")
	}

	if got := e.Suggest("hel"); len(got) == 0 {
		t.Error("expected suggestions for 'hel' from builtin list")
	}
}
