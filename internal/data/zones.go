// Package data loads static server data tables.
package data

import (
	"encoding/binary"
	"fmt"
	"net"
	"os"

	"github.com/Micenas/R1EMU/internal/barrack"
	"gopkg.in/yaml.v3"
)

// ZoneEntry is one zone server row in the YAML table.
type ZoneEntry struct {
	Addr string `yaml:"addr"`
	Port uint16 `yaml:"port"`
}

// ZoneTable resolves zone router ids to endpoints. The table is static,
// pending a real zone directory service: router id N is row N.
type ZoneTable struct {
	zones []barrack.ZoneEndpoint
}

// LoadZoneTable reads a YAML list of zone entries.
func LoadZoneTable(path string) (*ZoneTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zone table %s: %w", path, err)
	}
	var entries []ZoneEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse zone table %s: %w", path, err)
	}
	return NewZoneTable(entries)
}

// NewZoneTable builds a table from entries, validating every address.
func NewZoneTable(entries []ZoneEntry) (*ZoneTable, error) {
	t := &ZoneTable{zones: make([]barrack.ZoneEndpoint, 0, len(entries))}
	for i, e := range entries {
		ip := net.ParseIP(e.Addr)
		if ip == nil || ip.To4() == nil {
			return nil, fmt.Errorf("zone %d: invalid IPv4 address %q", i, e.Addr)
		}
		t.zones = append(t.zones, barrack.ZoneEndpoint{
			IP:   binary.LittleEndian.Uint32(ip.To4()),
			Port: e.Port,
		})
	}
	return t, nil
}

// DefaultZoneTable returns the built-in fixture entries used when no table
// file is configured.
func DefaultZoneTable() *ZoneTable {
	t, err := NewZoneTable([]ZoneEntry{
		{Addr: "127.0.0.1", Port: 2004},
		{Addr: "46.105.97.46", Port: 2005},
		{Addr: "192.168.33.10", Port: 2006},
		{Addr: "37.187.102.130", Port: 2007},
	})
	if err != nil {
		panic(err) // fixture entries are constants
	}
	return t
}

// Resolve returns the endpoint for a router id; ok is false for ids outside
// the table.
func (t *ZoneTable) Resolve(routerID uint16) (barrack.ZoneEndpoint, bool) {
	if int(routerID) >= len(t.zones) {
		return barrack.ZoneEndpoint{}, false
	}
	return t.zones[routerID], true
}

// Len returns the number of configured zones.
func (t *ZoneTable) Len() int {
	return len(t.zones)
}
