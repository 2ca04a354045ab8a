package config

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// AnimationSpec 单个动画的配置
// Key 同时是 spritesheet 文件名（assets/sprites/<key>.png，横向排列 Frames 帧）
type AnimationSpec struct {
	Key    string  `yaml:"key"`
	Frames int     `yaml:"frames"` // 帧数，默认 1
	FPS    float64 `yaml:"fps"`    // 帧率，默认 DefaultFrameRate
	Loop   *bool   `yaml:"loop"`   // 是否循环，默认 true（attack/hurt/dead 默认 false）
}

// IsLooping 返回动画是否循环
func (a AnimationSpec) IsLooping(state components.MoveState) bool {
	if a.Loop != nil {
		return *a.Loop
	}
	switch state {
	case components.StateAttack, components.StateHurt, components.StateDead:
		return false
	}
	return true
}

// WeaponConfig 远程武器配置
type WeaponConfig struct {
	MagazineSize    int     `yaml:"magazineSize"`
	ReloadTime      float64 `yaml:"reloadTime"`
	Damage          int     `yaml:"damage"`
	ProjectileSpeed float64 `yaml:"projectileSpeed"`
	FireCooldown    float64 `yaml:"fireCooldown"`
}

// AIConfig 敌人狩猎距离配置
type AIConfig struct {
	MeleeRange     float64 `yaml:"meleeRange"`
	RangedRange    float64 `yaml:"rangedRange"`
	HuntRange      float64 `yaml:"huntRange"`
	AttackCooldown float64 `yaml:"attackCooldown"`
}

// FollowConfig 伙伴跟随配置
type FollowConfig struct {
	BufferZone float64 `yaml:"bufferZone"`
	Hover      bool    `yaml:"hover"`
	OffsetY    float64 `yaml:"offsetY"`
}

// CharacterConfig 单个角色（玩家、敌人、NPC、无人机）的配置
type CharacterConfig struct {
	KindName    string                   `yaml:"kind"`
	Name        string                   `yaml:"name"`
	Texture     string                   `yaml:"texture"`
	Animations  map[string]AnimationSpec `yaml:"animations"`
	Scale       float64                  `yaml:"scale"`
	OffsetX     float64                  `yaml:"offsetX"`
	OffsetY     float64                  `yaml:"offsetY"`
	Width       float64                  `yaml:"width"`
	Height      float64                  `yaml:"height"`
	ColorHex    string                   `yaml:"color"`
	Speed       float64                  `yaml:"speed"`
	RunSpeed    float64                  `yaml:"runSpeed"`
	JumpSpeed   float64                  `yaml:"jumpSpeed"`
	Health      int                      `yaml:"health"`
	AttackTime  float64                  `yaml:"attackTime"`
	MeleeDamage int                      `yaml:"meleeDamage"`
	Weapon      *WeaponConfig            `yaml:"weapon"`
	AI          *AIConfig                `yaml:"ai"`
	Follow      *FollowConfig            `yaml:"follow"`

	// 解析后的字段
	Kind  components.CharacterKind `yaml:"-"`
	Color color.RGBA               `yaml:"-"`
}

// AnimationFor 返回指定状态的动画配置
// 未配置的状态回退到 idle，再回退到 "<texture>_<state>"
func (c *CharacterConfig) AnimationFor(state components.MoveState) AnimationSpec {
	if spec, ok := c.Animations[state.String()]; ok {
		return spec
	}
	if spec, ok := c.Animations[components.StateIdle.String()]; ok {
		return spec
	}
	return AnimationSpec{Key: c.Texture + "_" + state.String(), Frames: 1, FPS: DefaultFrameRate}
}

// CharactersConfig characters.yaml 文件结构
type CharactersConfig struct {
	Characters map[string]*CharacterConfig `yaml:"characters"`
}

// Get 获取角色配置
func (c *CharactersConfig) Get(unitID string) (*CharacterConfig, bool) {
	cfg, ok := c.Characters[unitID]
	return cfg, ok
}

// UnitIDs 返回所有角色 ID（排序后）
func (c *CharactersConfig) UnitIDs() []string {
	ids := make([]string, 0, len(c.Characters))
	for id := range c.Characters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadCharacters 从 YAML 文件加载角色配置
func LoadCharacters(path string) (*CharactersConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read characters file %s: %w", path, err)
	}
	cfg, err := ParseCharacters(data)
	if err != nil {
		return nil, fmt.Errorf("invalid characters config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseCharacters 解析角色配置并填充默认值
func ParseCharacters(data []byte) (*CharactersConfig, error) {
	var cfg CharactersConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse characters YAML: %w", err)
	}
	if len(cfg.Characters) == 0 {
		return nil, fmt.Errorf("at least one character is required")
	}

	for _, id := range cfg.UnitIDs() {
		c := cfg.Characters[id]
		if c == nil {
			return nil, fmt.Errorf("character %s: empty definition", id)
		}
		if err := prepareCharacter(id, c); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func prepareCharacter(id string, c *CharacterConfig) error {
	kind, err := components.ParseCharacterKind(c.KindName)
	if err != nil {
		return fmt.Errorf("character %s: %w", id, err)
	}
	c.Kind = kind

	if c.Name == "" {
		c.Name = id
	}
	if c.Texture == "" {
		c.Texture = id
	}
	if c.Scale == 0 {
		c.Scale = 1
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("character %s: width and height must be positive, got %.0fx%.0f", id, c.Width, c.Height)
	}
	if c.Health <= 0 {
		return fmt.Errorf("character %s: health must be positive, got %d", id, c.Health)
	}
	if c.RunSpeed == 0 {
		c.RunSpeed = c.Speed
	}
	if c.AttackTime == 0 {
		c.AttackTime = DefaultAttackTime
	}

	c.Color = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	if c.ColorHex != "" {
		parsed, err := ParseHexColor(c.ColorHex)
		if err != nil {
			return fmt.Errorf("character %s: %w", id, err)
		}
		c.Color = parsed
	}

	for name, spec := range c.Animations {
		if _, err := components.ParseMoveState(name); err != nil {
			return fmt.Errorf("character %s: animation %w", id, err)
		}
		if spec.Key == "" {
			spec.Key = c.Texture + "_" + name
		}
		if spec.Frames <= 0 {
			spec.Frames = 1
		}
		if spec.FPS <= 0 {
			spec.FPS = DefaultFrameRate
		}
		c.Animations[name] = spec
	}

	if w := c.Weapon; w != nil {
		if w.MagazineSize <= 0 {
			return fmt.Errorf("character %s: weapon magazineSize must be positive, got %d", id, w.MagazineSize)
		}
		if w.ReloadTime < 0 || w.FireCooldown < 0 {
			return fmt.Errorf("character %s: weapon timings cannot be negative", id)
		}
		if w.ProjectileSpeed <= 0 {
			w.ProjectileSpeed = 500
		}
	}

	if c.Kind == components.KindEnemy {
		if c.AI == nil {
			c.AI = &AIConfig{}
		}
		ai := c.AI
		if ai.MeleeRange == 0 {
			ai.MeleeRange = DefaultMeleeRange
		}
		if ai.RangedRange == 0 {
			ai.RangedRange = DefaultRangedRange
		}
		if ai.HuntRange == 0 {
			ai.HuntRange = DefaultHuntRange
		}
		if ai.AttackCooldown == 0 {
			ai.AttackCooldown = DefaultAttackCooldown
		}
		if ai.MeleeRange > ai.RangedRange || ai.RangedRange > ai.HuntRange {
			return fmt.Errorf("character %s: ranges must satisfy melee <= ranged <= hunt, got %.0f/%.0f/%.0f",
				id, ai.MeleeRange, ai.RangedRange, ai.HuntRange)
		}
	}

	if c.Kind == components.KindPlayer || c.Kind == components.KindDrone {
		if c.Follow == nil {
			c.Follow = &FollowConfig{}
		}
		if c.Follow.BufferZone <= 0 {
			c.Follow.BufferZone = DefaultBufferZone
		}
		if c.Kind == components.KindDrone {
			c.Follow.Hover = true
			if c.Follow.OffsetY == 0 {
				c.Follow.OffsetY = DroneHoverOffsetY
			}
		}
	}
	return nil
}

// ParseHexColor 解析 "#rrggbb" 或 "#rrggbbaa" 颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("unsupported color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("unsupported color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
