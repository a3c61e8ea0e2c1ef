package fonts

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadBuiltin(t *testing.T) {
	r := NewResolver("")
	for _, src := range []string{"builtin:goregular", "embed:GoRegular", "built-in:goregular"} {
		data, name, err := r.Load(src)
		if err != nil {
			t.Fatalf("%s: %v", src, err)
		}
		if !bytes.Equal(data, goregular.TTF) {
			t.Fatalf("%s: unexpected font bytes", src)
		}
		if name != "builtin:goregular" {
			t.Fatalf("%s: unexpected name %q", src, name)
		}
	}
}

func TestLoadUnknownBuiltin(t *testing.T) {
	_, _, err := NewResolver("").Load("builtin:comic-sans")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "goregular") {
		t.Fatalf("error should list builtin fonts: %v", err)
	}
}

func TestLoadRelativePathNeedsBaseDir(t *testing.T) {
	if _, _, err := NewResolver("").Load("fonts/Vera.ttf"); err == nil {
		t.Fatalf("expected error for relative path without base dir")
	}
}

func TestLoadPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Go.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	r := NewResolver(dir)
	data, name, err := r.Load("Go.ttf")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(data, goregular.TTF) || name != filepath.Join(dir, "Go.ttf") {
		t.Fatalf("unexpected result name=%q len=%d", name, len(data))
	}
	if _, _, err := r.Load("Missing.ttf"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing file, got %v", err)
	}
}

func TestLoadSystemUsesFinder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PrettyNeat.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	r := &Resolver{Find: func(name string) (string, error) {
		if name != "PrettyNeat" {
			return "", errors.New("no such font")
		}
		return path, nil
	}}
	if _, got, err := r.Load("system:PrettyNeat"); err != nil || got != path {
		t.Fatalf("system font: name=%q err=%v", got, err)
	}
	if _, _, err := r.Load("system:Nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
