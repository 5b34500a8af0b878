package composite

import (
	"runtime"

	"github.com/gekko3d/composite/deferred/rt/shade"
)

// Settings are the pass-level knobs: the shading options every pixel sees
// plus how the pass is dispatched.
type Settings struct {
	Shade   shade.Options `yaml:"shade"`
	Workers int           `yaml:"workers"` // 0 means GOMAXPROCS
}

func DefaultSettings() Settings {
	return Settings{
		Shade: shade.DefaultOptions(),
	}
}

func (s Settings) workers() int {
	if s.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return s.Workers
}
