package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Server.Port != 20372 {
		t.Errorf("default port = %d", cfg.Server.Port)
	}
	if !cfg.Data.AutoSeed {
		t.Errorf("auto seed should default on")
	}
	if cfg.Import.StrictOrphans {
		t.Errorf("strict orphans should default off")
	}
	if cfg.Export.HeaderStyle != "repeat" || cfg.Export.SectionOrder != "name" {
		t.Errorf("unexpected export defaults: %+v", cfg.Export)
	}
}

func TestConfigTomlRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Import.CanonicalSections = []string{"Outside", "Roof"}
	cfg.Import.SectionAliases = map[string]string{"First Floor": "1st Floor"}
	cfg.Labor.DefaultRate = 42.5

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	loaded := DefaultConfig()
	if err := toml.Unmarshal(data, loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(loaded.Import.CanonicalSections) != 2 {
		t.Errorf("canonical sections lost: %v", loaded.Import.CanonicalSections)
	}
	if loaded.Import.SectionAliases["First Floor"] != "1st Floor" {
		t.Errorf("aliases lost: %v", loaded.Import.SectionAliases)
	}
	if loaded.Labor.DefaultRate != 42.5 {
		t.Errorf("rate lost: %v", loaded.Labor.DefaultRate)
	}
}

func TestIsPortSpecifiedInToml(t *testing.T) {
	t.Parallel()

	if !isPortSpecifiedInToml([]byte("[server]\nport = 8080\n")) {
		t.Errorf("port present but not detected")
	}
	if isPortSpecifiedInToml([]byte("[server]\ndev_mode = true\n")) {
		t.Errorf("port absent but detected")
	}
	if isPortSpecifiedInToml([]byte("")) {
		t.Errorf("empty toml should not report a port")
	}
}
