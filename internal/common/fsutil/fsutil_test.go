package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func fakeHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}
	return home
}

func TestExpandHome(t *testing.T) {
	home := fakeHome(t)
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"./models", "./models"},
		{"/srv/smartdocs/models", "/srv/smartdocs/models"},
		{"~", home},
		{"~/.smartdocs/smartdocs.db", filepath.Join(home, ".smartdocs", "smartdocs.db")},
		{"~/apis/weather.json", filepath.Join(home, "apis", "weather.json")},
		{"~other/apis", "~other/apis"},
	}
	for _, c := range cases {
		got, err := ExpandHome(c.in)
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%q: got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEnsureParentDir_CreatesStoreDir(t *testing.T) {
	home := fakeHome(t)
	db, err := ExpandHome("~/.smartdocs/smartdocs.db")
	if err != nil {
		t.Fatal(err)
	}
	if err := EnsureParentDir(db); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	fi, err := os.Stat(filepath.Join(home, ".smartdocs"))
	if err != nil || !fi.IsDir() {
		t.Fatalf("store dir not created: %v", err)
	}
	// existing directories and bare file names are fine
	if err := EnsureParentDir(db); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if err := EnsureParentDir("smartdocs.db"); err != nil {
		t.Fatalf("bare name: %v", err)
	}
}

func TestEnsureParentDir_FileInTheWay(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "data")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureParentDir(filepath.Join(blocker, "smartdocs.db")); err == nil {
		t.Fatal("expected error when the parent is a file")
	}
}
