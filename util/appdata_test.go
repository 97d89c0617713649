package util

import (
	"path/filepath"
	"testing"
)

func TestAppDataDir(t *testing.T) {
	t.Setenv("HOME", "/home/pow")

	tests := []struct {
		goos    string
		appName string
		want    string
	}{
		{"linux", "", "."},
		{"linux", ".", "."},
		{"freebsd", "pow5", filepath.Join(".pow5")},
		{"linux", ".pow5", filepath.Join(".pow5")},
		{"darwin", "pow5", filepath.Join("Library", "Application Support", "Pow5")},
		{"plan9", "Pow5", filepath.Join("pow5")},
	}

	for _, test := range tests {
		got := appDataDir(test.goos, test.appName, false)
		if test.want == "." {
			if got != "." {
				t.Errorf("appDataDir(%s, %q): want \".\", got %q", test.goos, test.appName, got)
			}
			continue
		}
		// The home directory comes from the current user when available, so only the suffix is checked
		if filepath.Base(got) != filepath.Base(test.want) || !filepath.IsAbs(got) {
			t.Errorf("appDataDir(%s, %q): want a path ending with %q, got %q",
				test.goos, test.appName, test.want, got)
		}
	}
}
