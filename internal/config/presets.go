package config

import "sort"

var Presets = map[string]map[string]*Config{
	"particles": {
		"fountain": {
			Scene: "particles", Dt: 1.0 / 60, Duration: 20.0,
			Params: map[string]float64{"count": 1000, "live": 1000},
		},
		"sparse": {
			Scene: "particles", Dt: 1.0 / 60, Duration: 20.0,
			Params: map[string]float64{"count": 100, "live": 10},
		},
		"heavy-well": {
			Scene: "particles", Dt: 1.0 / 120, Duration: 10.0,
			Params: map[string]float64{"count": 500, "live": 500, "well": 400},
		},
	},
	"springs": {
		"classic": {
			Scene: "springs", Dt: 1.0 / 60, Duration: 20.0,
			Params: map[string]float64{"k": 3000, "rest": 20, "k1": 1, "k2": 2},
		},
		"loose": {
			Scene: "springs", Dt: 1.0 / 60, Duration: 20.0,
			Params: map[string]float64{"k": 500, "rest": 10, "k1": 0.5, "k2": 0.5},
		},
		"mutual": {
			Scene: "springs", Dt: 1.0 / 120, Duration: 20.0,
			Params: map[string]float64{"mutual": 1},
		},
	},
	"pair": {
		"gentle": {
			Scene: "pair", Dt: 0.001, Duration: 20.0,
			Params: map[string]float64{"k": 1, "rest": 2, "stretch": 1.5},
		},
		"stiff": {
			Scene: "pair", Dt: 0.0005, Duration: 5.0,
			Params: map[string]float64{"k": 50, "rest": 2, "stretch": 2},
		},
	},
	"drag": {
		"light": {
			Scene: "drag", Dt: 0.01, Duration: 6.0,
			Params: map[string]float64{"k1": 0.05, "k2": 0.001},
		},
		"thick": {
			Scene: "drag", Dt: 0.01, Duration: 6.0,
			Params: map[string]float64{"k1": 0.5, "k2": 0.05},
		},
	},
	"orbit": {
		"circular": {
			Scene: "orbit", Dt: 0.001, Duration: 12.6,
			Params: map[string]float64{"well": 100, "radius": 10},
		},
		"wide": {
			Scene: "orbit", Dt: 0.001, Duration: 30.0,
			Params: map[string]float64{"well": 100, "radius": 25},
		},
	},
}

// GetPreset returns a copy of the named preset layered over the defaults,
// or nil when it does not exist.
func GetPreset(scene, preset string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	p, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Overlay(p.Clone())
	return cfg
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
