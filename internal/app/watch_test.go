package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/gotodoc/internal/config"
	"github.com/dshills/gotodoc/internal/config/watcher"
	"github.com/dshills/gotodoc/internal/dispatcher/handler"
)

func TestWatchConfigReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[lookup]\nlookback = 32\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ta := newTestApp(t, config.Default())
	if a := ta.Lookup("Enum", "source.ex", nil); a.Kind != handler.KindUnsupported {
		t.Fatalf("before reload: %v", a)
	}

	w, err := ta.WatchConfig(config.Options{Path: path}, watcher.WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("WatchConfig: %v", err)
	}
	defer w.Stop()

	body := "[handlers]\nex = \"https://hexdocs.pm/elixir/search.html?q={token}\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if a := ta.Lookup("Enum", "source.ex", nil); a.Kind == handler.KindOpenURL {
			if a.URL != "https://hexdocs.pm/elixir/search.html?q=Enum" {
				t.Errorf("URL = %q", a.URL)
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("config change was not picked up")
}

func TestWatchConfigKeepsRegistryOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[handlers]\nex = \"https://hexdocs.pm/elixir/search.html?q={token}\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := config.Load(config.Options{Path: path})
	if err != nil {
		t.Fatal(err)
	}

	ta := newTestApp(t, res.Config)
	w, err := ta.WatchConfig(config.Options{Path: path}, watcher.WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("WatchConfig: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("[handlers\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	if a := ta.Lookup("Enum", "source.ex", nil); a.Kind != handler.KindOpenURL {
		t.Errorf("registry lost after bad reload: %v", a)
	}
}
