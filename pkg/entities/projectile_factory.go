package entities

import (
	"fmt"
	"image/color"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
)

var (
	partyProjectileColor   = color.RGBA{R: 255, G: 230, B: 120, A: 255}
	hostileProjectileColor = color.RGBA{R: 255, G: 90, B: 90, A: 255}
)

// NewProjectile 创建子弹实体
// 子弹水平飞行，不受重力影响，由 LifetimeSystem 在 ProjectileLifetime 秒后回收
//
// 参数:
//   - owner: 发射者实体ID（不会被自己的子弹击中）
//   - faction: 发射者阵营，子弹只命中敌对阵营
//   - x, y: 起始世界坐标
//   - vx: 水平速度（像素/秒），符号决定方向
//   - damage: 命中伤害
func NewProjectile(em *ecs.EntityManager, owner ecs.EntityID, faction components.Faction, x, y, vx float64, damage int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if vx == 0 {
		return 0, fmt.Errorf("projectile velocity cannot be zero")
	}

	c := partyProjectileColor
	if faction == components.FactionHostile {
		c = hostileProjectileColor
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: vx})
	ecs.AddComponent(em, id, &components.ProjectileComponent{
		Owner:   owner,
		Faction: faction,
		Damage:  damage,
	})
	ecs.AddComponent(em, id, &components.HitboxComponent{
		Width:  config.ProjectileSize,
		Height: config.ProjectileSize,
	})
	ecs.AddComponent(em, id, &components.SpriteComponent{
		Scale:  1,
		Width:  config.ProjectileSize,
		Height: config.ProjectileSize / 2,
		Color:  c,
		Depth:  4,
	})
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: config.ProjectileLifetime})
	return id, nil
}
