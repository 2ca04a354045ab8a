package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want ebiten.Key
	}{
		{"space", ebiten.KeySpace},
		{"Space", ebiten.KeySpace},
		{" x ", ebiten.KeyX},
		{"shift", ebiten.KeyShiftLeft},
		{"left", ebiten.KeyArrowLeft},
		{"7", ebiten.KeyDigit7},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.name)
		if err != nil {
			t.Errorf("ParseKey(%q) error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKey(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, err := ParseKey("hyper"); err == nil {
		t.Error("unknown key should fail")
	}
}

func TestParseKeyBindingsOverridesDefaults(t *testing.T) {
	kb, err := ParseKeyBindings([]byte("bindings:\n  attack: [k]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if keys := kb.Keys(ActionAttack); len(keys) != 1 || keys[0] != ebiten.KeyK {
		t.Errorf("attack keys = %v", keys)
	}
	// 未覆盖的动作保留默认值
	if keys := kb.Keys(ActionSwitch); len(keys) != 1 || keys[0] != ebiten.KeyTab {
		t.Errorf("switch keys = %v", keys)
	}
}

func TestParseKeyBindingsErrors(t *testing.T) {
	tests := []struct {
		yaml    string
		wantErr string
	}{
		{"bindings:\n  fly: [x]\n", `unsupported action "fly"`},
		{"bindings:\n  jump: [hyper]\n", `unsupported key name "hyper"`},
		{"bindings:\n  jump: []\n", "at least one key"},
	}
	for _, tt := range tests {
		_, err := ParseKeyBindings([]byte(tt.yaml))
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("ParseKeyBindings(%q) error = %v, want %q", tt.yaml, err, tt.wantErr)
		}
	}
}

func TestLoadKeyBindingsFromDataDir(t *testing.T) {
	kb, err := LoadKeyBindings(filepath.Join("..", "..", "data", "keybindings.yaml"))
	if err != nil {
		t.Fatalf("LoadKeyBindings failed: %v", err)
	}
	for _, a := range AllActions {
		if len(kb.Keys(a)) == 0 {
			t.Errorf("action %s has no keys", a)
		}
	}
}

func TestLoadDialogueFromDataDir(t *testing.T) {
	d, err := LoadDialogue(filepath.Join("..", "..", "data", "dialogue.yaml"))
	if err != nil {
		t.Fatalf("LoadDialogue failed: %v", err)
	}
	if len(d.LinesFor("elder")) != 3 {
		t.Errorf("elder lines = %v", d.LinesFor("elder"))
	}
	if d.LinesFor("nobody") != nil {
		t.Error("unknown NPC should have no lines")
	}
	var nilCfg *DialogueConfig
	if nilCfg.LinesFor("elder") != nil {
		t.Error("nil config should be safe")
	}
}
