package config

// Presets are named whole-Tuning variants selectable from the CLI.
var Presets = map[string]func() *Tuning{
	"classic": Default,
	"floaty": func() *Tuning {
		t := Default()
		t.Gravity = 30.0
		t.Restitution = 0.75
		t.Damping = 0.995
		t.ScatterImpulse = 9.0
		return t
	},
	"frantic": func() *Tuning {
		t := Default()
		t.TimeScale = 1.5
		t.MinRebound = 9.0
		t.RejectBounce = 34.0
		return t
	},
	"heavy": func() *Tuning {
		t := Default()
		t.Gravity = 120.0
		t.Restitution = 0.35
		t.MinRebound = 4.0
		t.SettleKick = 3.0
		return t
	},
}

func GetPreset(name string) *Tuning {
	f, ok := Presets[name]
	if !ok {
		return nil
	}
	return f()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
