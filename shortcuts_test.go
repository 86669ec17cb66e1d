package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestResolveShortcut(t *testing.T) {
	for _, in := range []string{"time", "!time", "!TIME", " !Time "} {
		text, raw, ok := resolveShortcut(in)
		if !ok {
			t.Fatalf("%q did not resolve", in)
		}
		if raw {
			t.Errorf("%q resolved as raw art", in)
		}
		if !strings.HasPrefix(text, "Time: ") {
			t.Errorf("%q rendered %q", in, text)
		}
	}
}

func TestResolveRawShortcut(t *testing.T) {
	text, raw, ok := resolveShortcut("!heart")
	if !ok || !raw {
		t.Fatalf("heart should resolve as raw art (ok=%v raw=%v)", ok, raw)
	}
	if !strings.Contains(text, "*") {
		t.Fatalf("unexpected art %q", text)
	}
}

func TestResolveUnknown(t *testing.T) {
	if _, _, ok := resolveShortcut("!no-such-thing"); ok {
		t.Fatal("unknown keyword resolved")
	}
}

func TestListShortcutsSorted(t *testing.T) {
	names := listShortcuts()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("not sorted: %q", names)
	}
	found := false
	for _, n := range names {
		if n == "cat" {
			found = true
		}
	}
	if !found {
		t.Fatal("built-in cat missing")
	}
}

func TestLoadShortcutFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.yaml")
	data := "greet:\n  text: Hello from a file\nTEST:\n  text: shadowed\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if err := loadShortcutFiles([]string{path}); err != nil {
		t.Fatal(err)
	}
	defer func() {
		delete(shortcuts, "greet")
		shortcuts["test"] = shortcut{Text: ">>> This is a test message <<<"}
	}()
	text, _, ok := resolveShortcut("greet")
	if !ok || text != "Hello from a file" {
		t.Fatalf("file shortcut missing: ok=%v text=%q", ok, text)
	}
	// Keys are lowercased, so TEST shadows the built-in.
	text, _, _ = resolveShortcut("test")
	if text != "shadowed" {
		t.Fatalf("expecting shadowed built-in, got %q", text)
	}
}

func TestLoadShortcutFilesUnknownDynamic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("x:\n  dynamic: moonphase\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := loadShortcutFiles([]string{path}); err == nil {
		t.Fatal("expecting error for unknown dynamic")
	}
}
