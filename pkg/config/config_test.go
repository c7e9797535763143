package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"laptudirm.com/x/mechess/pkg/actuator"
	"laptudirm.com/x/mechess/pkg/config"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mechess", "config.yaml")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	if cfg.Link != actuator.DefaultConfig {
		t.Fatalf("link config %+v, want %+v", cfg.Link, actuator.DefaultConfig)
	}

	// loading the created file gives the same configuration
	again, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if again.Link != cfg.Link || len(again.Engines) != len(cfg.Engines) {
		t.Fatalf("reloaded config %+v, want %+v", again, cfg)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := strings.Join([]string{
		"link:",
		"  port: /dev/ttyUSB1",
		"  ack-timeout: 2s",
		"engines:",
		"  - name: weak",
		"    cmd: stockfish",
		"    depth: 1",
		"  - name: strong",
		"    cmd: stockfish",
		"    depth: 12",
	}, "\n")

	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Link.Port != "/dev/ttyUSB1" {
		t.Errorf("port %q, want /dev/ttyUSB1", cfg.Link.Port)
	}

	if cfg.Link.AckTimeout != 2*time.Second {
		t.Errorf("ack timeout %s, want 2s", cfg.Link.AckTimeout)
	}

	if cfg.Link.Baud != actuator.DefaultConfig.Baud {
		t.Errorf("baud %d, want default %d", cfg.Link.Baud, actuator.DefaultConfig.Baud)
	}

	if cfg.Link.Frame != actuator.DefaultFrame {
		t.Errorf("frame %+v, want default %+v", cfg.Link.Frame, actuator.DefaultFrame)
	}

	strong, err := cfg.Engine("strong")
	if err != nil || strong.Depth != 12 {
		t.Errorf("Engine(strong) = %+v, %v", strong, err)
	}

	first, err := cfg.Engine("")
	if err != nil || first.Name != "weak" {
		t.Errorf("Engine(\"\") = %+v, %v", first, err)
	}

	if _, err := cfg.Engine("missing"); err == nil {
		t.Errorf("Engine(missing) succeeded")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	t.Setenv("MECHESS_PORT", "/dev/ttyACM3")
	t.Setenv("MECHESS_BAUD", "9600")
	t.Setenv("MECHESS_ACK_TIMEOUT", "750ms")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Link.Port != "/dev/ttyACM3" || cfg.Link.Baud != 9600 || cfg.Link.AckTimeout != 750*time.Millisecond {
		t.Fatalf("environment not applied: %+v", cfg.Link)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"baud", func(c *config.Config) { c.Link.Baud = 0 }},
		{"timeout", func(c *config.Config) { c.Link.AckTimeout = 0 }},
		{"retries", func(c *config.Config) { c.Link.Retries = -1 }},
		{"reset", func(c *config.Config) { c.Link.Frame.Reset = "" }},
		{"notation", func(c *config.Config) { c.Notation = "pgn" }},
		{"nameless engine", func(c *config.Config) { c.Engines[0].Name = "" }},
		{"duplicate engine", func(c *config.Config) {
			c.Engines = append(c.Engines, c.Engines[0])
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := config.Default()
			test.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("Validate accepted invalid %s", test.name)
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate rejected default config: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg := config.Default()

	var buf bytes.Buffer
	if err := cfg.Dump(&buf); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	for _, want := range []string{"port: /dev/ttyACM0", "baud: 115200", "reset: x9x9", "name: stockfish"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("dump missing %q:\n%s", want, buf.String())
		}
	}
}
