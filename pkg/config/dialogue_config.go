package config

import (
	"fmt"

	"github.com/gonewx/wayfarer/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DialogueConfig NPC 对话文本，键为 NPC 角色 ID
type DialogueConfig struct {
	Dialogue map[string][]string `yaml:"dialogue"`
}

// LinesFor 返回 NPC 的对话行，未配置时返回 nil
func (d *DialogueConfig) LinesFor(unitID string) []string {
	if d == nil {
		return nil
	}
	return d.Dialogue[unitID]
}

// LoadDialogue 加载对话文本
func LoadDialogue(path string) (*DialogueConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dialogue file %s: %w", path, err)
	}
	var cfg DialogueConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse dialogue YAML from %s: %w", path, err)
	}
	for unit, lines := range cfg.Dialogue {
		if len(lines) == 0 {
			return nil, fmt.Errorf("dialogue for %s in %s is empty", unit, path)
		}
	}
	return &cfg, nil
}

// GameConfig 启动时一次性加载的全部配置
type GameConfig struct {
	Characters  *CharactersConfig
	Levels      *LevelsConfig
	KeyBindings KeyBindings
	Dialogue    *DialogueConfig
}

// LoadGameConfig 加载 data/ 下的全部配置文件并做交叉校验
func LoadGameConfig() (*GameConfig, error) {
	chars, err := LoadCharacters(CharactersPath)
	if err != nil {
		return nil, err
	}
	levels, err := LoadLevels(LevelsPath)
	if err != nil {
		return nil, err
	}
	if err := levels.ValidateAgainst(chars); err != nil {
		return nil, fmt.Errorf("levels reference invalid characters: %w", err)
	}
	bindings, err := LoadKeyBindings(KeyBindingsPath)
	if err != nil {
		return nil, err
	}
	dialogue, err := LoadDialogue(DialoguePath)
	if err != nil {
		return nil, err
	}
	return &GameConfig{
		Characters:  chars,
		Levels:      levels,
		KeyBindings: bindings,
		Dialogue:    dialogue,
	}, nil
}
