package config

import (
	"fmt"
	"strings"

	"github.com/gonewx/wayfarer/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// Action 玩家可绑定的动作
type Action string

const (
	ActionLeft     Action = "left"
	ActionRight    Action = "right"
	ActionJump     Action = "jump"
	ActionCrouch   Action = "crouch"
	ActionRun      Action = "run"
	ActionAttack   Action = "attack"
	ActionInteract Action = "interact"
	ActionSwitch   Action = "switch"
)

// AllActions 所有动作（校验用）
var AllActions = []Action{
	ActionLeft, ActionRight, ActionJump, ActionCrouch,
	ActionRun, ActionAttack, ActionInteract, ActionSwitch,
}

// KeyBindings 动作到按键的映射，每个动作可绑定多个键
type KeyBindings map[Action][]ebiten.Key

// Keys 返回动作绑定的按键
func (kb KeyBindings) Keys(a Action) []ebiten.Key {
	return kb[a]
}

// DefaultKeyBindings 方向键/WASD 移动，Shift 奔跑，空格跳跃，X 攻击，E 交互，Tab 切换角色
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		ActionLeft:     {ebiten.KeyArrowLeft, ebiten.KeyA},
		ActionRight:    {ebiten.KeyArrowRight, ebiten.KeyD},
		ActionJump:     {ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW},
		ActionCrouch:   {ebiten.KeyArrowDown, ebiten.KeyS},
		ActionRun:      {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
		ActionAttack:   {ebiten.KeyX, ebiten.KeyJ},
		ActionInteract: {ebiten.KeyE},
		ActionSwitch:   {ebiten.KeyTab},
	}
}

var keyNames = map[string]ebiten.Key{
	"a": ebiten.KeyA, "b": ebiten.KeyB, "c": ebiten.KeyC, "d": ebiten.KeyD,
	"e": ebiten.KeyE, "f": ebiten.KeyF, "g": ebiten.KeyG, "h": ebiten.KeyH,
	"i": ebiten.KeyI, "j": ebiten.KeyJ, "k": ebiten.KeyK, "l": ebiten.KeyL,
	"m": ebiten.KeyM, "n": ebiten.KeyN, "o": ebiten.KeyO, "p": ebiten.KeyP,
	"q": ebiten.KeyQ, "r": ebiten.KeyR, "s": ebiten.KeyS, "t": ebiten.KeyT,
	"u": ebiten.KeyU, "v": ebiten.KeyV, "w": ebiten.KeyW, "x": ebiten.KeyX,
	"y": ebiten.KeyY, "z": ebiten.KeyZ,
	"0": ebiten.KeyDigit0, "1": ebiten.KeyDigit1, "2": ebiten.KeyDigit2, "3": ebiten.KeyDigit3,
	"4": ebiten.KeyDigit4, "5": ebiten.KeyDigit5, "6": ebiten.KeyDigit6, "7": ebiten.KeyDigit7,
	"8": ebiten.KeyDigit8, "9": ebiten.KeyDigit9,
	"left":       ebiten.KeyArrowLeft,
	"right":      ebiten.KeyArrowRight,
	"up":         ebiten.KeyArrowUp,
	"down":       ebiten.KeyArrowDown,
	"space":      ebiten.KeySpace,
	"enter":      ebiten.KeyEnter,
	"tab":        ebiten.KeyTab,
	"escape":     ebiten.KeyEscape,
	"shift":      ebiten.KeyShiftLeft,
	"shiftleft":  ebiten.KeyShiftLeft,
	"shiftright": ebiten.KeyShiftRight,
	"ctrl":       ebiten.KeyControlLeft,
	"ctrlleft":   ebiten.KeyControlLeft,
	"ctrlright":  ebiten.KeyControlRight,
	"alt":        ebiten.KeyAltLeft,
}

// ParseKey 解析按键名称（不区分大小写，如 "Space"、"shift"、"x"）
func ParseKey(name string) (ebiten.Key, error) {
	key, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unsupported key name %q", name)
	}
	return key, nil
}

// keyBindingsFile keybindings.yaml 文件结构
type keyBindingsFile struct {
	Bindings map[string][]string `yaml:"bindings"`
}

// LoadKeyBindings 加载按键配置，未配置的动作使用默认按键
func LoadKeyBindings(path string) (KeyBindings, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key bindings file %s: %w", path, err)
	}
	kb, err := ParseKeyBindings(data)
	if err != nil {
		return nil, fmt.Errorf("invalid key bindings in %s: %w", path, err)
	}
	return kb, nil
}

// ParseKeyBindings 解析按键配置
func ParseKeyBindings(data []byte) (KeyBindings, error) {
	var file keyBindingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse key bindings YAML: %w", err)
	}

	known := make(map[Action]bool, len(AllActions))
	for _, a := range AllActions {
		known[a] = true
	}

	kb := DefaultKeyBindings()
	for name, keys := range file.Bindings {
		action := Action(strings.ToLower(name))
		if !known[action] {
			return nil, fmt.Errorf("unsupported action %q", name)
		}
		parsed := make([]ebiten.Key, 0, len(keys))
		for _, k := range keys {
			key, err := ParseKey(k)
			if err != nil {
				return nil, fmt.Errorf("action %s: %w", action, err)
			}
			parsed = append(parsed, key)
		}
		if len(parsed) == 0 {
			return nil, fmt.Errorf("action %s: at least one key is required", action)
		}
		kb[action] = parsed
	}
	return kb, nil
}
