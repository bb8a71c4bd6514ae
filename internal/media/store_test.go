package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSave(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	url, err := store.Save(strings.NewReader("fake image bytes"), "Foto Local.JPG")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, URLPrefix) {
		t.Fatalf("url = %q, want %s prefix", url, URLPrefix)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Errorf("url = %q, want lowercased .jpg extension", url)
	}
	if strings.Contains(url, "Foto") {
		t.Errorf("url = %q leaked the client filename", url)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), strings.TrimPrefix(url, URLPrefix)))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("stored contents = %q", data)
	}
}

func TestSaveUniqueNames(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	first, err := store.Save(strings.NewReader("a"), "x.png")
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := store.Save(strings.NewReader("b"), "x.png")
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if first == second {
		t.Fatalf("both saves produced %q", first)
	}
}

func TestSaveRejectsUnknownTypes(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	for _, name := range []string{"payload.exe", "script.js", "noextension", "archive.tar.gz"} {
		if _, err := store.Save(strings.NewReader("x"), name); err == nil {
			t.Errorf("save %q: expected error", name)
		}
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	store, err := New(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if store.Dir() != dir {
		t.Errorf("dir = %q, want %q", store.Dir(), dir)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("stat %q: %v", dir, err)
	}
}
