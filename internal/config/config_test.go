package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]string{"-window", "0x2a"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Handle != 0x2a {
		t.Errorf("handle = %#x", cfg.Handle)
	}
	if cfg.Poll != DefaultPoll || cfg.Quality != DefaultQuality || cfg.Headless || cfg.Mirror != "" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if _, err := uuid.Parse(cfg.SessionID); err != nil {
		t.Errorf("session id %q is not a uuid: %v", cfg.SessionID, err)
	}
}

func TestParseWithoutWindowAsksForOne(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.NeedsWindowChoice() {
		t.Fatal("no -window should ask for a window")
	}
	if _, err := Parse([]string{"-window", "calc"}); err == nil {
		t.Fatal("expected error for non-numeric handle")
	}
	cfg, err = Parse([]string{"-pattern"})
	if err != nil {
		t.Fatalf("Parse -pattern: %v", err)
	}
	if !cfg.Pattern || cfg.NeedsWindowChoice() {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParseWebRTC(t *testing.T) {
	cfg, err := Parse([]string{"-pattern"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.WebRTC {
		t.Error("webrtc should be off by default")
	}
	if got := cfg.PeerConfig().ICEServers; len(got) != 2 {
		t.Errorf("default ice servers = %v", got)
	}

	cfg, err = Parse([]string{"-pattern", "-webrtc", "-stun", " stun:a:1 ,, stun:b:2"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := cfg.PeerConfig().ICEServers
	if !cfg.WebRTC || len(got) != 2 || got[0] != "stun:a:1" || got[1] != "stun:b:2" {
		t.Errorf("webrtc = %v, ice servers = %q", cfg.WebRTC, got)
	}

	cfg, err = Parse([]string{"-pattern", "-stun", ""})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := cfg.PeerConfig().ICEServers; len(got) != 0 {
		t.Errorf("empty -stun should mean host candidates only, got %v", got)
	}
}

func TestParseNonPositivePoll(t *testing.T) {
	cfg, err := Parse([]string{"-pattern", "-poll", "0s"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Poll != DefaultPoll {
		t.Fatalf("poll = %v", cfg.Poll)
	}
}

func TestParseYAMLWithOverride(t *testing.T) {
	path := writeFile(t, "lens.yaml", `
window: "0x10"
mirror: ":9000"
headless: true
poll: 40ms
session: from-file
quality: 55
`)
	cfg, err := Parse([]string{"-config", path, "-mirror", ":9100"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Handle != 0x10 || !cfg.Headless || cfg.Poll != 40*time.Millisecond {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.SessionID != "from-file" || cfg.Quality != 55 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Mirror != ":9100" {
		t.Errorf("flag did not override file: mirror = %q", cfg.Mirror)
	}
	if cfg.ConfigPath != path {
		t.Errorf("config path = %q", cfg.ConfigPath)
	}
}

func TestParseINI(t *testing.T) {
	path := writeFile(t, "lens.ini", `
[lens]
pattern = true
mirror = :8091
poll = 20ms
webrtc = true
stun = stun:example.org:3478
`)
	cfg, err := Parse([]string{"-config", path, "-headless"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.Pattern || cfg.Mirror != ":8091" || cfg.Poll != 20*time.Millisecond || !cfg.Headless {
		t.Errorf("unexpected config %+v", cfg)
	}
	if !cfg.WebRTC || cfg.STUN != "stun:example.org:3478" {
		t.Errorf("webrtc keys not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if err := Load(writeFile(t, "lens.toml", "x = 1"), defaults()); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if err := Load(filepath.Join(t.TempDir(), "missing.yaml"), defaults()); err == nil {
		t.Error("expected error for missing file")
	}
	if err := Load(writeFile(t, "bad.yaml", "poll: [1, 2"), defaults()); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestParseViewerFlags(t *testing.T) {
	cfg, err := ParseViewerFlags(nil)
	if err != nil {
		t.Fatalf("ParseViewerFlags: %v", err)
	}
	if cfg.Server != DefaultServer {
		t.Errorf("server = %q", cfg.Server)
	}
	if cfg.WebRTC || len(cfg.PeerConfig().ICEServers) == 0 {
		t.Errorf("unexpected viewer defaults %+v", cfg)
	}
	if _, err := ParseViewerFlags([]string{"-server", "http://x"}); err == nil {
		t.Error("expected error for non-websocket URL")
	}
	cfg, err = ParseViewerFlags([]string{"-webrtc", "-stun", "stun:x:1"})
	if err != nil {
		t.Fatalf("ParseViewerFlags: %v", err)
	}
	if !cfg.WebRTC || len(cfg.PeerConfig().ICEServers) != 1 {
		t.Errorf("unexpected viewer config %+v", cfg)
	}
}
