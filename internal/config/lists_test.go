package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/quorumlabs/rollcall/internal/config"
)

func TestLoadWordList(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stoplist.txt")
	content := `# procedural terms
Madam Chair

  Roll Call
# blank line above is skipped
Quorum
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	words, err := config.LoadWordList(path)
	if err != nil {
		t.Fatalf("LoadWordList: %v", err)
	}
	want := []string{"Madam Chair", "Roll Call", "Quorum"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("words = %v, want %v", words, want)
	}
}

func TestLoadWordList_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := config.LoadWordList(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("LoadWordList of a missing file succeeded, want error")
	}
}

func TestLoadWordList_EmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	words, err := config.LoadWordList(path)
	if err != nil {
		t.Fatalf("LoadWordList: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("words = %v, want none", words)
	}
}
