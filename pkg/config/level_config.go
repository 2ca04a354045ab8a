package config

import (
	"fmt"

	"github.com/gonewx/wayfarer/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// Rect 矩形区域（左上角 + 尺寸，世界坐标）
type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Center 返回矩形中心点
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Point 世界坐标点
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Spawn 单个角色的出生配置
type Spawn struct {
	Unit string  `yaml:"unit"` // characters.yaml 中的角色 ID
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// LevelConfig 关卡配置数据结构
type LevelConfig struct {
	ID         string   `yaml:"id"`         // 关卡ID，如 "1"
	Name       string   `yaml:"name"`       // 关卡名称
	Width      float64  `yaml:"width"`      // 关卡宽度（像素）
	Height     float64  `yaml:"height"`     // 关卡高度（像素）
	Gravity    float64  `yaml:"gravity"`    // 重力加速度（像素/秒²），默认 1400
	Background string   `yaml:"background"` // 背景颜色 "#rrggbb"
	Hint       string   `yaml:"hint"`       // 开场提示文字（显示 HintDuration 秒）
	Next       string   `yaml:"next"`       // 下一关 ID，空表示最后一关
	Party      []string `yaml:"party"`      // 队伍角色 ID，第一个为初始操控角色
	Drone      string   `yaml:"drone"`      // 无人机角色 ID（可选）
	Spawn      Point    `yaml:"spawn"`      // 队伍出生点
	Platforms  []Rect   `yaml:"platforms"`  // 地面与平台
	Enemies    []Spawn  `yaml:"enemies"`
	NPCs       []Spawn  `yaml:"npcs"`
	Exit       Rect     `yaml:"exit"` // 出口区域
}

// LevelsConfig levels.yaml 文件结构，关卡按列表顺序排列
type LevelsConfig struct {
	Levels []*LevelConfig `yaml:"levels"`
}

// Get 按 ID 获取关卡配置
func (c *LevelsConfig) Get(id string) (*LevelConfig, bool) {
	for _, lvl := range c.Levels {
		if lvl.ID == id {
			return lvl, true
		}
	}
	return nil, false
}

// First 返回第一关
func (c *LevelsConfig) First() *LevelConfig {
	if len(c.Levels) == 0 {
		return nil
	}
	return c.Levels[0]
}

// LoadLevels 从 YAML 文件加载全部关卡配置
func LoadLevels(path string) (*LevelsConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels file %s: %w", path, err)
	}
	cfg, err := ParseLevels(data)
	if err != nil {
		return nil, fmt.Errorf("invalid levels config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseLevels 解析关卡配置，填充默认值并校验
func ParseLevels(data []byte) (*LevelsConfig, error) {
	var cfg LevelsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse levels YAML: %w", err)
	}
	if len(cfg.Levels) == 0 {
		return nil, fmt.Errorf("at least one level is required")
	}

	seen := make(map[string]bool, len(cfg.Levels))
	for i, lvl := range cfg.Levels {
		if lvl == nil || lvl.ID == "" {
			return nil, fmt.Errorf("level #%d: id is required", i)
		}
		if seen[lvl.ID] {
			return nil, fmt.Errorf("level %s: duplicate id", lvl.ID)
		}
		seen[lvl.ID] = true
		applyLevelDefaults(lvl)
		if err := validateLevel(lvl); err != nil {
			return nil, err
		}
	}

	for _, lvl := range cfg.Levels {
		if lvl.Next != "" && !seen[lvl.Next] {
			return nil, fmt.Errorf("level %s: next level %q does not exist", lvl.ID, lvl.Next)
		}
	}
	return &cfg, nil
}

// ValidateAgainst 检查关卡引用的角色都存在且种类匹配
func (c *LevelsConfig) ValidateAgainst(chars *CharactersConfig) error {
	for _, lvl := range c.Levels {
		for _, unit := range lvl.Party {
			if err := expectKind(chars, lvl.ID, unit, "player"); err != nil {
				return err
			}
		}
		if lvl.Drone != "" {
			if err := expectKind(chars, lvl.ID, lvl.Drone, "drone"); err != nil {
				return err
			}
		}
		for _, s := range lvl.Enemies {
			if err := expectKind(chars, lvl.ID, s.Unit, "enemy"); err != nil {
				return err
			}
		}
		for _, s := range lvl.NPCs {
			if err := expectKind(chars, lvl.ID, s.Unit, "npc"); err != nil {
				return err
			}
		}
	}
	return nil
}

func expectKind(chars *CharactersConfig, levelID, unit, kind string) error {
	c, ok := chars.Get(unit)
	if !ok {
		return fmt.Errorf("level %s: unknown character %q", levelID, unit)
	}
	if c.Kind.String() != kind {
		return fmt.Errorf("level %s: character %q is %s, expected %s", levelID, unit, c.Kind, kind)
	}
	return nil
}

func applyLevelDefaults(lvl *LevelConfig) {
	if lvl.Name == "" {
		lvl.Name = lvl.ID
	}
	if lvl.Height == 0 {
		lvl.Height = GameWindowHeight
	}
	if lvl.Gravity == 0 {
		lvl.Gravity = 1400
	}
	if lvl.Background == "" {
		lvl.Background = "#1d2333"
	}
}

func validateLevel(lvl *LevelConfig) error {
	if lvl.Width <= 0 {
		return fmt.Errorf("level %s: width must be positive, got %.0f", lvl.ID, lvl.Width)
	}
	if len(lvl.Party) == 0 {
		return fmt.Errorf("level %s: party must contain at least one character", lvl.ID)
	}
	if len(lvl.Platforms) == 0 {
		return fmt.Errorf("level %s: at least one platform is required", lvl.ID)
	}
	for i, p := range lvl.Platforms {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("level %s: platform #%d has non-positive size", lvl.ID, i)
		}
	}
	if lvl.Exit.Width <= 0 || lvl.Exit.Height <= 0 {
		return fmt.Errorf("level %s: exit zone is required", lvl.ID)
	}
	if _, err := ParseHexColor(lvl.Background); err != nil {
		return fmt.Errorf("level %s: %w", lvl.ID, err)
	}
	return nil
}
