package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barrack.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Name != "barrack" || cfg.Server.RouterID != 0 {
		t.Errorf("server defaults = %+v", cfg.Server)
	}
	if cfg.Database.MaxOpenConns != 20 || cfg.Database.ConnMaxLifetime.Duration != 30*time.Minute {
		t.Errorf("database defaults = %+v", cfg.Database)
	}
	if cfg.Network.BindAddress != "0.0.0.0:2000" || cfg.Network.ReadTimeout.Duration != time.Minute {
		t.Errorf("network defaults = %+v", cfg.Network)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barrack.toml")
	toml := `
[server]
name = "barrack-eu"
router_id = 2

[network]
bind_address = "127.0.0.1:2010"
read_timeout = "30s"

[barrack]
zone_table = "data/zones.yaml"

[logging]
format = "json"
`
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Name != "barrack-eu" || cfg.Server.RouterID != 2 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Network.ReadTimeout.Duration != 30*time.Second {
		t.Errorf("read timeout = %s", cfg.Network.ReadTimeout)
	}
	if cfg.Barrack.ZoneTable != "data/zones.yaml" {
		t.Errorf("zone table = %q", cfg.Barrack.ZoneTable)
	}
	// Untouched sections keep their defaults.
	if cfg.Database.DSN == "" || cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("defaults lost: db=%q redis=%q", cfg.Database.DSN, cfg.Redis.Addr)
	}
}

func TestLoadDurationStrings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barrack.toml")
	toml := `
[database]
conn_max_lifetime = "15m"

[network]
read_timeout = "1m"
write_timeout = "10s"
`
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.ConnMaxLifetime.Duration != 15*time.Minute {
		t.Errorf("conn_max_lifetime = %s", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Network.ReadTimeout.Duration != time.Minute {
		t.Errorf("read_timeout = %s", cfg.Network.ReadTimeout)
	}
	if cfg.Network.WriteTimeout.Duration != 10*time.Second {
		t.Errorf("write_timeout = %s", cfg.Network.WriteTimeout)
	}
}

func TestLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barrack.toml")
	if err := os.WriteFile(path, []byte("[network]\nread_timeout = \"soon\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for an unparseable duration")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
