package systems

import (
	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/gonewx/wayfarer/pkg/game"
)

// CombatSystem 战斗判定
// 处理近战判定框与子弹命中，所有伤害都通过 HealthComponent.Damage 结算
type CombatSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	states        *PlayerStateSystem
	weapons       *WeaponSystem
	sparks        *HitFlashPool
}

// NewCombatSystem 创建战斗系统，并注册为状态机的攻击执行者
func NewCombatSystem(em *ecs.EntityManager, gs *game.GameState, states *PlayerStateSystem, weapons *WeaponSystem, sparks *HitFlashPool) *CombatSystem {
	s := &CombatSystem{
		entityManager: em,
		gameState:     gs,
		states:        states,
		weapons:       weapons,
		sparks:        sparks,
	}
	if states != nil {
		states.SetAttacker(s)
	}
	return s
}

// Attack 执行攻击动作：处于近战区间的敌人和没有武器的角色近战，其余开火
func (s *CombatSystem) Attack(id ecs.EntityID) {
	if ai, ok := ecs.GetComponent[*components.EnemyAIComponent](s.entityManager, id); ok && ai.Mode == components.AIModeMelee {
		s.Strike(id)
		return
	}
	if ecs.HasComponent[*components.WeaponComponent](s.entityManager, id) && s.weapons != nil {
		s.weapons.Fire(id)
		return
	}
	s.Strike(id)
}

// Strike 近战判定：攻击者正前方 MeleeReach 宽的判定框，返回命中数
func (s *CombatSystem) Strike(attacker ecs.EntityID) int {
	pos, ok1 := ecs.GetComponent[*components.PositionComponent](s.entityManager, attacker)
	ch, ok2 := ecs.GetComponent[*components.CharacterComponent](s.entityManager, attacker)
	hb, ok3 := ecs.GetComponent[*components.HitboxComponent](s.entityManager, attacker)
	if !ok1 || !ok2 || !ok3 {
		return 0
	}
	playSound(s.gameState, game.SoundAttack)

	l, t, r, b := hb.Bounds(pos.X, pos.Y)
	if ch.Facing == components.FacingRight {
		l, r = pos.X, r+config.MeleeReach
	} else {
		l, r = l-config.MeleeReach, pos.X
	}

	faction := components.FactionOf(ch.Kind)
	hits := 0
	for _, target := range s.combatants() {
		if target == attacker || s.factionOf(target) == faction {
			continue
		}
		if s.overlaps(target, l, t, r, b) && s.ApplyDamage(target, ch.MeleeDamage) > 0 {
			hits++
		}
	}
	return hits
}

// ApplyDamage 结算伤害并触发受击/死亡，返回实际造成的伤害
// 对已死亡的目标无效
func (s *CombatSystem) ApplyDamage(target ecs.EntityID, amount int) int {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, target)
	if !ok {
		return 0
	}
	dealt := health.Damage(amount)
	if dealt == 0 {
		return 0
	}

	ecs.AddComponent(s.entityManager, target, &components.FlashEffectComponent{
		Duration:  config.HitFlashDuration,
		Intensity: 1,
		IsActive:  true,
	})
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, target); ok && s.sparks != nil {
		s.sparks.Acquire(pos.X, pos.Y)
	}

	if health.IsDead() {
		if ch, ok := ecs.GetComponent[*components.CharacterComponent](s.entityManager, target); ok && ch.Kind == components.KindEnemy {
			if reg := registryOf(s.gameState); reg != nil {
				reg.Increment(game.RegistryKeyEnemiesDefeated, 1)
			}
		}
		if s.states != nil {
			s.states.TransitionTo(target, components.StateDead)
		}
		playSound(s.gameState, game.SoundDeath)
	} else {
		if s.states != nil {
			s.states.TransitionTo(target, components.StateHurt)
		}
		playSound(s.gameState, game.SoundHurt)
	}
	return dealt
}

// Update 子弹命中检测：子弹只命中敌对阵营的存活角色，命中后销毁
func (s *CombatSystem) Update(deltaTime float64) {
	targets := s.combatants()
	projectiles := ecs.GetEntitiesWith3[*components.ProjectileComponent, *components.PositionComponent, *components.HitboxComponent](s.entityManager)

	for _, pid := range projectiles {
		if s.entityManager.IsPendingDestroy(pid) {
			continue
		}
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, pid)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, pid)
		hb, _ := ecs.GetComponent[*components.HitboxComponent](s.entityManager, pid)
		l, t, r, b := hb.Bounds(pos.X, pos.Y)

		for _, target := range targets {
			if target == proj.Owner || s.factionOf(target) == proj.Faction || !isAlive(s.entityManager, target) {
				continue
			}
			if s.overlaps(target, l, t, r, b) {
				s.ApplyDamage(target, proj.Damage)
				s.entityManager.DestroyEntity(pid)
				break
			}
		}
	}
}

// combatants 可被攻击的角色：玩家、敌人与 NPC（无人机不参与战斗）
// NPC 属于队伍阵营，只会被敌人伤害
func (s *CombatSystem) combatants() []ecs.EntityID {
	ids := ecs.GetEntitiesWith3[*components.CharacterComponent, *components.HealthComponent, *components.HitboxComponent](s.entityManager)
	result := ids[:0]
	for _, id := range ids {
		ch, _ := ecs.GetComponent[*components.CharacterComponent](s.entityManager, id)
		switch ch.Kind {
		case components.KindPlayer, components.KindEnemy, components.KindNPC:
			result = append(result, id)
		}
	}
	return result
}

func (s *CombatSystem) factionOf(id ecs.EntityID) components.Faction {
	ch, _ := ecs.GetComponent[*components.CharacterComponent](s.entityManager, id)
	return components.FactionOf(ch.Kind)
}

// overlaps AABB 重叠检测（目标碰撞盒以实体位置为中心）
func (s *CombatSystem) overlaps(target ecs.EntityID, l, t, r, b float64) bool {
	pos, ok1 := ecs.GetComponent[*components.PositionComponent](s.entityManager, target)
	hb, ok2 := ecs.GetComponent[*components.HitboxComponent](s.entityManager, target)
	if !ok1 || !ok2 {
		return false
	}
	l2, t2, r2, b2 := hb.Bounds(pos.X, pos.Y)
	return r >= l2 && l <= r2 && b >= t2 && t <= b2
}
