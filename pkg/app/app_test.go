package app

import (
	"testing"

	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/game"
)

const appLevelsYAML = `
levels:
  - id: "1"
    width: 1000
    next: "2"
    party: [hero]
    platforms: [{ x: 0, y: 500, width: 1000, height: 40 }]
    exit: { x: 900, y: 400, width: 50, height: 100 }
  - id: "2"
    width: 1000
    party: [hero]
    platforms: [{ x: 0, y: 500, width: 1000, height: 40 }]
    exit: { x: 900, y: 400, width: 50, height: 100 }
`

func TestStartLevel(t *testing.T) {
	levels, err := config.ParseLevels([]byte(appLevelsYAML))
	if err != nil {
		t.Fatalf("ParseLevels error: %v", err)
	}

	progressed := func(highest string) *game.SaveManager {
		sm, _ := game.NewSaveManager(nil)
		if highest != "" {
			sm.CompleteLevel("1", highest)
		}
		return sm
	}

	tests := []struct {
		name      string
		requested string
		save      *game.SaveManager
		want      string
	}{
		{"command line wins", "2", progressed(""), "2"},
		{"fresh save starts at first level", "", progressed(""), "1"},
		{"resume from highest level", "", progressed("2"), "2"},
		{"stale saved level falls back", "", progressed("9"), "1"},
		{"no save manager", "", nil, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartLevel(tt.requested, tt.save, levels); got != tt.want {
				t.Errorf("StartLevel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayout(t *testing.T) {
	a := &App{}
	w, h := a.Layout(1920, 1080)
	if w != config.GameWindowWidth || h != config.GameWindowHeight {
		t.Errorf("Layout() = %dx%d, want %dx%d", w, h, config.GameWindowWidth, config.GameWindowHeight)
	}
}

func TestTrackLastCharacter(t *testing.T) {
	reg := game.NewRegistry()
	save, _ := game.NewSaveManager(nil)
	TrackLastCharacter(reg, save)
	TrackLastCharacter(nil, save) // 缺少依赖时忽略

	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"first character", "hero", "hero"},
		{"switch", "gunner", "gunner"},
		{"empty keeps last", "", "gunner"},
		{"non-string keeps last", 3, "gunner"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg.Set(game.RegistryKeyActiveCharacter, tt.value)
			if got := save.Data().LastCharacter; got != tt.want {
				t.Errorf("LastCharacter = %q, want %q", got, tt.want)
			}
		})
	}
}
