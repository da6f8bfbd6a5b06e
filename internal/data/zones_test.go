package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Micenas/R1EMU/internal/barrack"
)

func TestNewZoneTable(t *testing.T) {
	table, err := NewZoneTable([]ZoneEntry{
		{Addr: "127.0.0.1", Port: 2004},
		{Addr: "10.0.0.2", Port: 2005},
	})
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len = %d, want 2", table.Len())
	}

	ep, ok := table.Resolve(0)
	if !ok {
		t.Fatal("router 0 not resolvable")
	}
	// 127.0.0.1 packed little-endian.
	want := barrack.ZoneEndpoint{IP: 0x0100007f, Port: 2004}
	if ep != want {
		t.Errorf("endpoint = %+v, want %+v", ep, want)
	}

	if _, ok := table.Resolve(2); ok {
		t.Error("router 2 must not resolve")
	}
}

func TestNewZoneTableInvalidAddress(t *testing.T) {
	for _, addr := range []string{"not-an-ip", "", "::1"} {
		if _, err := NewZoneTable([]ZoneEntry{{Addr: addr, Port: 1}}); err == nil {
			t.Errorf("addr %q: expected error", addr)
		}
	}
}

func TestDefaultZoneTable(t *testing.T) {
	table := DefaultZoneTable()
	if table.Len() != 4 {
		t.Fatalf("Len = %d, want 4", table.Len())
	}
	ep, ok := table.Resolve(0)
	if !ok || ep.Port != 2004 {
		t.Errorf("router 0 = (%+v, %v)", ep, ok)
	}
}

func TestLoadZoneTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	yaml := "- addr: 127.0.0.1\n  port: 2004\n- addr: 192.168.1.5\n  port: 2005\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadZoneTable(path)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len = %d, want 2", table.Len())
	}
	ep, ok := table.Resolve(1)
	if !ok || ep.Port != 2005 {
		t.Errorf("router 1 = (%+v, %v)", ep, ok)
	}
}

func TestLoadZoneTableMissingFile(t *testing.T) {
	if _, err := LoadZoneTable(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestLoadZoneTableBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadZoneTable(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
