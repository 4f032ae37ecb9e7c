// Package regionset loads a declarative manifest describing a chain of
// wear-leveling regions sharing one device, so callers don't have to
// hand-derive each region's Base from the previous region's EndAddr
// (spec.md §6, §9: "application-level chaining of multiple wear-leveled
// regions within one device... callers compute base addresses").
//
// Manifest shape follows tamzrod-modbus-replicator's
// internal/config/config.go: a struct-tagged tree decoded with
// gopkg.in/yaml.v3.
package regionset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	eewl "github.com/ramadhanafif/WL-AT24Cx"
)

// Manifest describes every region on one device.
type Manifest struct {
	Device  DeviceConfig   `yaml:"device"`
	Regions []RegionConfig `yaml:"regions"`
}

// DeviceConfig describes the backing device's overall geometry.
type DeviceConfig struct {
	SizeBytes uint32 `yaml:"size_bytes"`
	PageSize  uint32 `yaml:"page_size"`
}

// RegionConfig describes one region. Base is optional: when omitted
// (nil), Resolve sets it to the previous region's end address, or 0 for
// the first region. An explicit base, including 0, is used as given.
type RegionConfig struct {
	Name       string  `yaml:"name"`
	Base       *uint32 `yaml:"base,omitempty"`
	SlotCount  uint32  `yaml:"slot_count"`
	PayloadLen int     `yaml:"payload_len"`
	WearLevel  bool    `yaml:"wear_level"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("regionset: read %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("regionset: parse %s: %w", path, err)
	}
	return &m, nil
}

// ResolvedRegion is one region's fully computed geometry, ready to be
// passed into eewl.Config.
type ResolvedRegion struct {
	Name string
	Cfg  eewl.Config
}

// Resolve computes each region's Base by chaining off the previous
// region's end address (base + N*R), the way a caller would otherwise do
// by hand with repeated calls to Engine.EndAddr.
func (m *Manifest) Resolve() ([]ResolvedRegion, error) {
	out := make([]ResolvedRegion, 0, len(m.Regions))
	var nextBase uint32
	for _, r := range m.Regions {
		base := nextBase
		if r.Base != nil {
			base = *r.Base
		}
		if r.SlotCount < 2 {
			return nil, fmt.Errorf("regionset: region %q: slot_count must be >= 2", r.Name)
		}
		if r.PayloadLen <= 0 {
			return nil, fmt.Errorf("regionset: region %q: payload_len must be > 0", r.Name)
		}

		cfg := eewl.Config{
			Base:       base,
			SlotCount:  r.SlotCount,
			WearLevel:  r.WearLevel,
			DeviceSize: m.Device.SizeBytes,
			PageSize:   m.Device.PageSize,
		}
		if err := cfg.Validate(r.PayloadLen); err != nil {
			return nil, fmt.Errorf("regionset: region %q: %w", r.Name, err)
		}

		recordSize := eewl.RecordSize(r.PayloadLen, r.WearLevel)
		nextBase = base + r.SlotCount*recordSize

		out = append(out, ResolvedRegion{Name: r.Name, Cfg: cfg})
	}
	return out, nil
}
