package systems

import (
	"log"
	"math"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/gonewx/wayfarer/pkg/entities"
	"github.com/gonewx/wayfarer/pkg/game"
)

// WeaponSystem 弹匣与换弹计时
type WeaponSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
}

// NewWeaponSystem 创建武器系统
func NewWeaponSystem(em *ecs.EntityManager, gs *game.GameState) *WeaponSystem {
	return &WeaponSystem{
		entityManager: em,
		gameState:     gs,
	}
}

// Fire 开火，返回发射的子弹实体
//
// 换弹中或射击冷却中不开火；弹匣为空时开始换弹且不发射子弹。
func (s *WeaponSystem) Fire(id ecs.EntityID) (ecs.EntityID, bool) {
	w, ok1 := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)
	pos, ok2 := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	ch, ok3 := ecs.GetComponent[*components.CharacterComponent](s.entityManager, id)
	if !ok1 || !ok2 || !ok3 {
		return 0, false
	}
	if w.Reloading || w.CooldownLeft > 0 {
		return 0, false
	}
	if w.Rounds <= 0 {
		s.StartReload(id)
		return 0, false
	}

	w.Rounds--
	w.CooldownLeft = w.FireCooldown

	muzzleX := pos.X
	muzzleY := pos.Y
	if hb, ok := ecs.GetComponent[*components.HitboxComponent](s.entityManager, id); ok {
		muzzleX += ch.Facing.Sign() * (hb.Width/2 + config.ProjectileSize)
		muzzleY -= hb.Height * 0.1
	}

	projectile, err := entities.NewProjectile(s.entityManager, id, components.FactionOf(ch.Kind),
		muzzleX, muzzleY, ch.Facing.Sign()*w.ProjectileSpeed, w.Damage)
	if err != nil {
		log.Printf("[WeaponSystem] Failed to spawn projectile for entity %d: %v", id, err)
		return 0, false
	}
	playSound(s.gameState, game.SoundShoot)
	return projectile, true
}

// StartReload 开始换弹；已在换弹或弹匣已满时返回 false
func (s *WeaponSystem) StartReload(id ecs.EntityID) bool {
	w, ok := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)
	if !ok || w.Reloading || w.Rounds >= w.MagazineSize {
		return false
	}
	w.Reloading = true
	w.ReloadLeft = w.ReloadTime
	playSound(s.gameState, game.SoundReload)
	return true
}

// Update 推进射击冷却与换弹计时，换弹完成后装满弹匣
func (s *WeaponSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.WeaponComponent](s.entityManager) {
		w, _ := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)

		if w.CooldownLeft > 0 {
			w.CooldownLeft = math.Max(0, w.CooldownLeft-deltaTime)
		}
		if !w.Reloading {
			continue
		}
		w.ReloadLeft -= deltaTime
		if w.ReloadLeft <= 0 {
			w.ReloadLeft = 0
			w.Reloading = false
			w.Rounds = w.MagazineSize
		}
	}
}
