// Package config parses command-line flags and the optional config file.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/junsooki/WinLens/internal/capture"
	"github.com/junsooki/WinLens/internal/peer"
)

// Defaults.
const (
	DefaultPoll    = 16 * time.Millisecond
	DefaultQuality = 80
	DefaultServer  = "ws://localhost:8090/ws"
)

// Config holds all runtime configuration for the lens binary.
type Config struct {
	Window    string        `yaml:"window"`
	Pattern   bool          `yaml:"pattern"`
	Mirror    string        `yaml:"mirror"`
	Quality   int           `yaml:"quality"`
	Headless  bool          `yaml:"headless"`
	Poll      time.Duration `yaml:"poll"`
	SessionID string        `yaml:"session"`
	WebRTC    bool          `yaml:"webrtc"`
	STUN      string        `yaml:"stun"`

	ConfigPath string         `yaml:"-"`
	Handle     capture.Handle `yaml:"-"`
}

func defaults() *Config {
	return &Config{Quality: DefaultQuality, Poll: DefaultPoll, STUN: strings.Join(peer.DefaultICEServers, ",")}
}

// NeedsWindowChoice reports that no window was named, so the lens must list
// the open windows and ask for one.
func (c *Config) NeedsWindowChoice() bool {
	return !c.Pattern && c.Window == ""
}

// PeerConfig returns the ICE settings for mirror WebRTC upgrades.
func (c *Config) PeerConfig() peer.Config {
	return peer.Config{ICEServers: splitList(c.STUN)}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func lensFlags(cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("lens", flag.ContinueOnError)
	fs.StringVar(&cfg.Window, "window", cfg.Window, "Native window handle to capture (decimal or 0x hex); empty lists windows and asks")
	fs.BoolVar(&cfg.Pattern, "pattern", cfg.Pattern, "Capture a synthetic test pattern instead of a window")
	fs.StringVar(&cfg.Mirror, "mirror", cfg.Mirror, "Serve the view to remote viewers on this address, e.g. :8090")
	fs.IntVar(&cfg.Quality, "quality", cfg.Quality, "Mirror JPEG quality (1-100)")
	fs.BoolVar(&cfg.Headless, "headless", cfg.Headless, "Do not open a local window")
	fs.DurationVar(&cfg.Poll, "poll", cfg.Poll, "Maximum wait for a key press per frame")
	fs.StringVar(&cfg.SessionID, "session", cfg.SessionID, "Session ID (auto-generated if empty)")
	fs.BoolVar(&cfg.WebRTC, "webrtc", cfg.WebRTC, "Accept WebRTC data channel upgrades from mirror viewers")
	fs.StringVar(&cfg.STUN, "stun", cfg.STUN, "Comma-separated STUN server URLs for WebRTC")
	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Optional .yaml, .yml or .ini config file")
	return fs
}

// Parse parses lens flags. When -config names a file its values are loaded
// first and any flag given explicitly overrides them.
func Parse(args []string) (*Config, error) {
	cfg := defaults()
	if err := lensFlags(cfg).Parse(args); err != nil {
		return nil, err
	}

	if cfg.ConfigPath != "" {
		path := cfg.ConfigPath
		cfg = defaults()
		if err := Load(path, cfg); err != nil {
			return nil, err
		}
		// Second pass: file values are now the flag defaults.
		if err := lensFlags(cfg).Parse(args); err != nil {
			return nil, err
		}
		cfg.ConfigPath = path
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) finish() error {
	if c.Poll <= 0 {
		c.Poll = DefaultPoll
	}
	if c.SessionID == "" {
		c.SessionID = uuid.NewString()
	}
	if c.Pattern || c.Window == "" {
		return nil
	}
	h, err := capture.ParseHandle(c.Window)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Handle = h
	return nil
}

// Load fills cfg from a config file chosen by extension.
func Load(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path, cfg)
	case ".ini":
		return loadINI(path, cfg)
	default:
		return fmt.Errorf("config: unsupported file type %q", path)
	}
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func loadINI(path string, cfg *Config) error {
	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	section := file.Section("lens")
	cfg.Window = section.Key("window").MustString(cfg.Window)
	cfg.Pattern = section.Key("pattern").MustBool(cfg.Pattern)
	cfg.Mirror = section.Key("mirror").MustString(cfg.Mirror)
	cfg.Quality = section.Key("quality").MustInt(cfg.Quality)
	cfg.Headless = section.Key("headless").MustBool(cfg.Headless)
	cfg.Poll = section.Key("poll").MustDuration(cfg.Poll)
	cfg.SessionID = section.Key("session").MustString(cfg.SessionID)
	cfg.WebRTC = section.Key("webrtc").MustBool(cfg.WebRTC)
	cfg.STUN = section.Key("stun").MustString(cfg.STUN)
	return nil
}

// ViewerConfig holds configuration for the viewer binary.
type ViewerConfig struct {
	Server string
	WebRTC bool
	STUN   string
}

// PeerConfig returns the ICE settings for the WebRTC upgrade.
func (c *ViewerConfig) PeerConfig() peer.Config {
	return peer.Config{ICEServers: splitList(c.STUN)}
}

// ParseViewerFlags parses flags for the viewer binary.
func ParseViewerFlags(args []string) (*ViewerConfig, error) {
	cfg := &ViewerConfig{}
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	fs.StringVar(&cfg.Server, "server", DefaultServer, "Lens mirror WebSocket URL")
	fs.BoolVar(&cfg.WebRTC, "webrtc", false, "Upgrade frames and keys to WebRTC data channels")
	fs.StringVar(&cfg.STUN, "stun", strings.Join(peer.DefaultICEServers, ","), "Comma-separated STUN server URLs for WebRTC")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(cfg.Server, "ws://") && !strings.HasPrefix(cfg.Server, "wss://") {
		return nil, fmt.Errorf("config: -server must be a ws:// or wss:// URL, got %q", cfg.Server)
	}
	return cfg, nil
}
