package config

import "sort"

// presets are ready-made problems, mostly ones with a known closed form so
// the comparison columns light up.
var presets = map[string]*Config{
	"exponential": {
		Function: "y", Method: "both",
		X0: 0, Y0: 1, XEnd: 1, H: 0.1,
		Iterations: 1, Decimals: DefaultDecimals, TimeoutSec: DefaultTimeoutSec,
	},
	"decay": {
		Function: "-2*y", Method: "both",
		X0: 0, Y0: 3, XEnd: 2, H: 0.05,
		Iterations: 1, Decimals: DefaultDecimals, TimeoutSec: DefaultTimeoutSec,
	},
	"parabolic": {
		Function: "x", Method: "euler",
		X0: 0, Y0: 0, XEnd: 2, H: 0.1,
		Iterations: 1, Decimals: DefaultDecimals, TimeoutSec: DefaultTimeoutSec,
	},
	"blowup": {
		Function: "x*y^2", Method: "heun",
		X0: 0, Y0: 1, XEnd: 1.2, H: 0.05,
		Iterations: 5, Decimals: DefaultDecimals, TimeoutSec: DefaultTimeoutSec,
	},
	"oscillating": {
		Function: "sin(x)*y", Method: "both",
		X0: 0, Y0: 1, XEnd: 6.28, H: 0.1,
		Iterations: 3, Decimals: DefaultDecimals, TimeoutSec: DefaultTimeoutSec,
	},
	"stiffish": {
		Function: "-15*y", Method: "both",
		X0: 0, Y0: 1, XEnd: 1, H: 0.02,
		Iterations: 5, Decimals: DefaultDecimals, TimeoutSec: DefaultTimeoutSec,
	},
}

// GetPreset returns a copy of the named preset, or nil when unknown.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns the available preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
