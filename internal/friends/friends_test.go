package friends

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "friends.yaml")
	content := `- name: Alice
  url: https://alice.example
  avatar: https://alice.example/a.png
  desc: notes
- name: Bob
  url: https://bob.example
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	links, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	want := Link{Name: "Alice", URL: "https://alice.example", Avatar: "https://alice.example/a.png", Desc: "notes"}
	if links[0] != want {
		t.Errorf("links[0] = %+v, want %+v", links[0], want)
	}
	if links[1].Avatar != "" {
		t.Errorf("expected empty avatar, got %q", links[1].Avatar)
	}
}

func TestLoadMissingFile(t *testing.T) {
	links, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if links != nil {
		t.Errorf("expected nil links, got %+v", links)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "friends.yaml")
	if err := os.WriteFile(path, []byte("name: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}
