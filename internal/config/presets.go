package config

import "sort"

func preset(name string, mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	cfg.Name = name
	mutate(cfg)
	return cfg
}

var Presets = map[string]*Config{
	"standard": preset("standard", func(*Config) {}),
	// Does not ignite within the default horizon.
	"atmospheric": preset("atmospheric", func(c *Config) {
		c.Conditions.Pressure = 101325
		c.Conditions.PressureBar = 1.01325
	}),
	"hot": preset("hot", func(c *Config) {
		c.Conditions.Temp = 1200
	}),
	"high-pressure": preset("high-pressure", func(c *Config) {
		c.Conditions.Pressure = 4.0e6
		c.Conditions.PressureBar = 40
	}),
	// Largest step that stays stable at the standard conditions.
	"coarse": preset("coarse", func(c *Config) {
		c.Params.Dt = 1e-6
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
