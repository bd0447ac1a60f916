package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

// memFS is an in-memory file system for testing.
type memFS struct {
	files map[string][]byte
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) add(path, content string) {
	m.files[path] = []byte(content)
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/config.toml", `
[view]
batch = 16
idleSleep = "30ms"
tallSprites = true

[keys]
"Ctrl+r" = "reload-config"
j = "line-down"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	view, ok := config["view"].(map[string]any)
	if !ok {
		t.Fatal("expected view to be a table")
	}
	if view["batch"] != int64(16) {
		t.Errorf("batch = %v (%T), want 16", view["batch"], view["batch"])
	}
	if view["idleSleep"] != "30ms" {
		t.Errorf("idleSleep = %v, want 30ms", view["idleSleep"])
	}
	if view["tallSprites"] != true {
		t.Errorf("tallSprites = %v, want true", view["tallSprites"])
	}

	keys := config["keys"].(map[string]any)
	if keys["Ctrl+r"] != "reload-config" {
		t.Errorf("keys[Ctrl+r] = %v", keys["Ctrl+r"])
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(newMemFS(), "/nope.toml").Load()
	if err != nil || config != nil {
		t.Errorf("Load(missing) = %v, %v, want nil, nil", config, err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/bad.toml", "[view]\nbatch = = 3\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Load = %v, want *ParseError", err)
	}
	if pe.Path != "/bad.toml" || pe.Line != 2 {
		t.Errorf("ParseError = %s:%d, want /bad.toml:2", pe.Path, pe.Line)
	}
	if !strings.Contains(pe.Error(), "line 2") {
		t.Errorf("Error() = %q", pe.Error())
	}
}

func TestTOMLLoader_Includes(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/cfg/config.toml", `
include = ["theme.toml", "/shared/keys.toml"]

[theme]
pastEnd = "#112233"
`)
	memfs.add("/cfg/theme.toml", `
[theme]
pastEnd = "#000000"
statusBg = "#0000AA"
`)
	memfs.add("/shared/keys.toml", `
[keys]
x = "quit"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/cfg/config.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := config[IncludeKey]; ok {
		t.Error("include key left in the result")
	}
	theme := config["theme"].(map[string]any)
	if theme["pastEnd"] != "#112233" {
		t.Errorf("pastEnd = %v, want the including file to win", theme["pastEnd"])
	}
	if theme["statusBg"] != "#0000AA" {
		t.Errorf("statusBg = %v, want the included value", theme["statusBg"])
	}
	if keys := config["keys"].(map[string]any); keys["x"] != "quit" {
		t.Errorf("keys.x = %v", keys["x"])
	}
}

func TestTOMLLoader_IncludeCycle(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/a.toml", `include = "b.toml"`)
	memfs.add("/b.toml", `include = "a.toml"`)

	_, err := NewTOMLLoaderWithFS(memfs, "/a.toml").Load()
	if !errors.Is(err, ErrIncludeDepth) {
		t.Errorf("Load = %v, want ErrIncludeDepth", err)
	}
}

func TestTOMLLoader_BadInclude(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/a.toml", `include = 3`)

	if _, err := NewTOMLLoaderWithFS(memfs, "/a.toml").Load(); err == nil {
		t.Error("Load with a numeric include succeeded")
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[ui]\nfont = \"8x16\"\n"))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if ui := config["ui"].(map[string]any); ui["font"] != "8x16" {
		t.Errorf("ui.font = %v", ui["font"])
	}
}

func TestTOMLLoader_YAML(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/cfg/config.yaml", `
include: keys.toml
view:
  batch: 8
  tallSprites: true
theme:
  pastEnd: "#112233"
`)
	memfs.add("/cfg/keys.toml", "[keys]\nx = \"quit\"\n")

	config, err := NewTOMLLoaderWithFS(memfs, "/cfg/config.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	view := config["view"].(map[string]any)
	if view["batch"] != int64(8) {
		t.Errorf("batch = %v (%T), want int64 8", view["batch"], view["batch"])
	}
	if view["tallSprites"] != true {
		t.Errorf("tallSprites = %v, want true", view["tallSprites"])
	}
	if keys := config["keys"].(map[string]any); keys["x"] != "quit" {
		t.Errorf("keys.x = %v", keys["x"])
	}
}

func TestTOMLLoader_YAMLParseError(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/bad.yml", "view:\n  batch: [1\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.yml").Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Load = %v, want *ParseError", err)
	}
	if pe.Path != "/bad.yml" {
		t.Errorf("ParseError.Path = %q", pe.Path)
	}
}

func TestIsYAML(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"config.yaml", true},
		{"config.YML", true},
		{"config.toml", false},
		{"yaml", false},
	}
	for _, tt := range tests {
		if got := isYAML(tt.path); got != tt.want {
			t.Errorf("isYAML(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
