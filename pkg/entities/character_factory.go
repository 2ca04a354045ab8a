package entities

import (
	"fmt"
	"log"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// SpriteLoader 实体工厂加载动画帧所需的资源接口
// 由 game.ResourceManager 实现；测试中可以传入 nil 或 mock
type SpriteLoader interface {
	LoadSpriteStrip(key string, frames int) ([]*ebiten.Image, error)
}

// NewCharacter 根据角色配置创建任意种类的角色实体
//
// 参数:
//   - em: 实体管理器
//   - space: 物理空间，为 nil 时不创建刚体（测试或纯逻辑场景）
//   - sl: 精灵加载器，为 nil 时所有动画都没有图片，渲染使用占位矩形
//   - cfg: 角色配置（已通过 config 校验）
//   - unitID: 角色配置 ID
//   - x, y: 出生点（实体中心，世界坐标）
func NewCharacter(em *ecs.EntityManager, space *cp.Space, sl SpriteLoader, cfg *config.CharacterConfig, unitID string, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("character %q: config cannot be nil", unitID)
	}

	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, &components.CharacterComponent{
		Kind:        cfg.Kind,
		UnitID:      unitID,
		Name:        cfg.Name,
		Facing:      components.FacingRight,
		Speed:       cfg.Speed,
		RunSpeed:    cfg.RunSpeed,
		JumpSpeed:   cfg.JumpSpeed,
		MeleeDamage: cfg.MeleeDamage,
	})
	ecs.AddComponent(em, id, components.NewHealth(cfg.Health))
	ecs.AddComponent(em, id, &components.MoveStateComponent{
		State:      components.StateIdle,
		Previous:   components.StateIdle,
		AttackTime: cfg.AttackTime,
		HurtTime:   config.DefaultHurtTime,
	})
	ecs.AddComponent(em, id, &components.HitboxComponent{Width: cfg.Width, Height: cfg.Height})
	ecs.AddComponent(em, id, &components.SpriteComponent{
		TextureKey: cfg.Texture,
		Scale:      cfg.Scale,
		OffsetX:    cfg.OffsetX,
		OffsetY:    cfg.OffsetY,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Color:      cfg.Color,
		Depth:      depthOf(cfg.Kind),
	})

	clips := buildAnimationClips(sl, cfg, unitID)
	ecs.AddComponent(em, id, &components.AnimationSetComponent{Clips: clips})
	anim := &components.AnimationComponent{}
	if idle, ok := clips[components.StateIdle]; ok {
		anim.PlayClip(idle)
	}
	ecs.AddComponent(em, id, anim)

	if cfg.Weapon != nil {
		w := cfg.Weapon
		ecs.AddComponent(em, id, &components.WeaponComponent{
			MagazineSize:    w.MagazineSize,
			Rounds:          w.MagazineSize,
			ReloadTime:      w.ReloadTime,
			FireCooldown:    w.FireCooldown,
			ProjectileSpeed: w.ProjectileSpeed,
			Damage:          w.Damage,
		})
	}

	switch cfg.Kind {
	case components.KindPlayer:
		ecs.AddComponent(em, id, &components.TrackableComponent{})
		ecs.AddComponent(em, id, followFrom(cfg))
	case components.KindEnemy:
		ai := cfg.AI
		if ai == nil {
			ai = &config.AIConfig{
				MeleeRange:     config.DefaultMeleeRange,
				RangedRange:    config.DefaultRangedRange,
				HuntRange:      config.DefaultHuntRange,
				AttackCooldown: config.DefaultAttackCooldown,
			}
		}
		ecs.AddComponent(em, id, &components.EnemyAIComponent{
			Mode:           components.AIModeIdle,
			MeleeRange:     ai.MeleeRange,
			RangedRange:    ai.RangedRange,
			HuntRange:      ai.HuntRange,
			AttackCooldown: ai.AttackCooldown,
		})
	case components.KindNPC:
		ecs.AddComponent(em, id, &components.TrackableComponent{})
	case components.KindDrone:
		ecs.AddComponent(em, id, followFrom(cfg))
	}

	if space != nil {
		body, shape := newCharacterBody(space, cfg.Width, cfg.Height, x, y, cfg.Kind == components.KindDrone)
		ecs.AddComponent(em, id, &components.BodyComponent{Body: body, Shape: shape})
	}

	log.Printf("[CharacterFactory] Created %s %q (entity %d) at (%.0f, %.0f)", cfg.Kind, unitID, id, x, y)
	return id, nil
}

// NewPlayer 创建可操控的队伍成员，slot 决定切换顺序
func NewPlayer(em *ecs.EntityManager, space *cp.Space, sl SpriteLoader, cfg *config.CharacterConfig, unitID string, slot int, x, y float64) (ecs.EntityID, error) {
	if err := expectKind(cfg, unitID, components.KindPlayer); err != nil {
		return 0, err
	}
	id, err := NewCharacter(em, space, sl, cfg, unitID, x, y)
	if err != nil {
		return 0, err
	}
	ecs.AddComponent(em, id, &components.PlayerControlComponent{Slot: slot})
	return id, nil
}

// NewEnemy 创建敌人
func NewEnemy(em *ecs.EntityManager, space *cp.Space, sl SpriteLoader, cfg *config.CharacterConfig, unitID string, x, y float64) (ecs.EntityID, error) {
	if err := expectKind(cfg, unitID, components.KindEnemy); err != nil {
		return 0, err
	}
	return NewCharacter(em, space, sl, cfg, unitID, x, y)
}

// NewNPC 创建可对话的 NPC
func NewNPC(em *ecs.EntityManager, space *cp.Space, sl SpriteLoader, cfg *config.CharacterConfig, unitID string, lines []string, x, y float64) (ecs.EntityID, error) {
	if err := expectKind(cfg, unitID, components.KindNPC); err != nil {
		return 0, err
	}
	id, err := NewCharacter(em, space, sl, cfg, unitID, x, y)
	if err != nil {
		return 0, err
	}
	ecs.AddComponent(em, id, &components.DialogueComponent{
		Lines:         append([]string(nil), lines...),
		InteractRange: config.DefaultInteractRange,
	})
	return id, nil
}

// NewDrone 创建悬浮跟随的无人机
func NewDrone(em *ecs.EntityManager, space *cp.Space, sl SpriteLoader, cfg *config.CharacterConfig, unitID string, x, y float64) (ecs.EntityID, error) {
	if err := expectKind(cfg, unitID, components.KindDrone); err != nil {
		return 0, err
	}
	return NewCharacter(em, space, sl, cfg, unitID, x, y)
}

func expectKind(cfg *config.CharacterConfig, unitID string, want components.CharacterKind) error {
	if cfg == nil {
		return fmt.Errorf("character %q: config cannot be nil", unitID)
	}
	if cfg.Kind != want {
		return fmt.Errorf("character %q is %s, expected %s", unitID, cfg.Kind, want)
	}
	return nil
}

func followFrom(cfg *config.CharacterConfig) *components.FollowComponent {
	f := &components.FollowComponent{BufferZone: config.DefaultBufferZone}
	if cfg.Follow != nil {
		f.BufferZone = cfg.Follow.BufferZone
		f.Hover = cfg.Follow.Hover
		f.OffsetY = cfg.Follow.OffsetY
	}
	return f
}

// depthOf 同一高度上的绘制顺序：NPC 在最底层，当前角色队伍在敌人之上
func depthOf(kind components.CharacterKind) int {
	switch kind {
	case components.KindNPC:
		return 0
	case components.KindEnemy:
		return 1
	case components.KindPlayer:
		return 2
	default:
		return 3
	}
}

// buildAnimationClips 为九种状态准备动画数据
func buildAnimationClips(sl SpriteLoader, cfg *config.CharacterConfig, unitID string) map[components.MoveState]components.AnimationClip {
	clips := make(map[components.MoveState]components.AnimationClip, len(components.AllMoveStates))
	for _, state := range components.AllMoveStates {
		spec := cfg.AnimationFor(state)
		frameCount := spec.Frames
		if frameCount <= 0 {
			frameCount = 1
		}
		fps := spec.FPS
		if fps <= 0 {
			fps = config.DefaultFrameRate
		}

		clip := components.AnimationClip{
			Key:        spec.Key,
			FrameCount: frameCount,
			FrameSpeed: 1 / fps,
			Loop:       spec.IsLooping(state),
		}
		if sl != nil {
			frames, err := sl.LoadSpriteStrip(spec.Key, frameCount)
			if err != nil {
				log.Printf("[CharacterFactory] Warning: %s animation %s: %v", unitID, spec.Key, err)
			}
			clip.Frames = frames
		}
		clips[state] = clip
	}
	return clips
}

// newCharacterBody 创建角色刚体（转动惯量无穷大，不会翻倒）
// 无人机使用运动学刚体，不受重力影响
func newCharacterBody(space *cp.Space, w, h, x, y float64, kinematic bool) (*cp.Body, *cp.Shape) {
	var body *cp.Body
	if kinematic {
		body = cp.NewKinematicBody()
	} else {
		body = cp.NewBody(1, cp.INFINITY)
	}
	body.SetPosition(cp.Vector{X: x, Y: y})
	space.AddBody(body)

	shape := cp.NewBox(body, w, h, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, components.CategoryCharacter, components.CategoryPlatform))
	space.AddShape(shape)
	return body, shape
}
