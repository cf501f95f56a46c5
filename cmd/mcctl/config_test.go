package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danmuck/mcctl/internal/client"
)

func TestLoadAppConfigDefaultsAndOverrides(t *testing.T) {
	cfg, err := loadAppConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Client.Host != "127.0.0.1" || cfg.Client.Port != 25565 {
		t.Fatalf("unexpected endpoint: %s", cfg.Client.Addr())
	}
	if cfg.Client.Name != "Tester12" {
		t.Fatalf("unexpected name: %q", cfg.Client.Name)
	}
	if cfg.Client.Session.ConnectTimeout != 2*time.Second {
		t.Fatalf("unexpected connect timeout: %v", cfg.Client.Session.ConnectTimeout)
	}
	if cfg.Client.Session.MaxConnectAttempts != 5 {
		t.Fatalf("unexpected attempts: %d", cfg.Client.Session.MaxConnectAttempts)
	}
	if cfg.Client.FirstPacketPolicy != client.FirstPacketDrop {
		t.Fatalf("unexpected policy: %q", cfg.Client.FirstPacketPolicy)
	}
	if !cfg.Client.PlainChat {
		t.Fatalf("expected plain chat")
	}
	if cfg.FaviconPath != "local/server-icon.png" {
		t.Fatalf("unexpected favicon path: %q", cfg.FaviconPath)
	}
	if cfg.MetricsAddr != "127.0.0.1:9464" {
		t.Fatalf("unexpected metrics addr: %q", cfg.MetricsAddr)
	}
}

func TestLoadAppConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := loadAppConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Client.FirstPacketPolicy != client.FirstPacketReplay || cfg.FaviconPath != "server-icon.png" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcctl.toml")
	if err := os.WriteFile(path, []byte("name = \"Steve\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadAppConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Client.Name != "Steve" || cfg.Client.Port != 25565 || cfg.Client.Session.MaxConnectAttempts != 5 {
		t.Fatalf("unexpected config: %+v", cfg.Client)
	}
}

func TestLoadAppConfigRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"policy":  "first_packet_policy = \"sometimes\"\n",
		"port":    "port = 70000\n",
		"timeout": "connect_timeout = \"soon\"\n",
		"unknown": "colour = \"blue\"\n",
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), name+".toml")
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := loadAppConfig(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	path := filepath.Join(t.TempDir(), "attempts.toml")
	if err := os.WriteFile(path, []byte("max_connect_attempts = 0\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadAppConfig(path); !errors.Is(err, client.ErrInvalidAttempts) {
		t.Fatalf("expected ErrInvalidAttempts, got %v", err)
	}
}
