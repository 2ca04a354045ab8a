package systems

import (
	"log"
	"math"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/ecs"
)

// aiLogFrameInterval AI 状态日志的输出间隔（帧）
const aiLogFrameInterval = 120

// EnemyAISystem 敌人狩猎行为
//
// 每次更新对每个存活敌人线性扫描所有存活的可追踪实体（玩家与 NPC），
// 按欧氏距离取最近目标（距离相同取 ID 较小者），再按距离区间决定行为：
//
//	d <= MeleeRange  近战：停下、面向目标、冷却结束后攻击
//	d <= RangedRange 射击：停下、面向目标、有子弹就开火，没有就换弹（没有武器的敌人改为追击）
//	d <= HuntRange   追击：以行走速度朝目标移动
//	其他            待机：水平速度归零
type EnemyAISystem struct {
	entityManager *ecs.EntityManager
	states        *PlayerStateSystem
	weapons       *WeaponSystem
	frameCount    int
}

// NewEnemyAISystem 创建敌人 AI 系统
func NewEnemyAISystem(em *ecs.EntityManager, states *PlayerStateSystem, weapons *WeaponSystem) *EnemyAISystem {
	return &EnemyAISystem{
		entityManager: em,
		states:        states,
		weapons:       weapons,
	}
}

// Update 更新所有敌人的目标与行为
func (s *EnemyAISystem) Update(deltaTime float64) {
	s.frameCount++
	targets := s.trackables()

	enemies := ecs.GetEntitiesWith3[*components.EnemyAIComponent, *components.PositionComponent, *components.VelocityComponent](s.entityManager)
	for _, id := range enemies {
		if !isAlive(s.entityManager, id) {
			continue
		}
		ai, _ := ecs.GetComponent[*components.EnemyAIComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		if ai.CooldownLeft > 0 {
			ai.CooldownLeft = math.Max(0, ai.CooldownLeft-deltaTime)
		}

		target, dist, found := NearestTarget(s.entityManager, id, pos.X, pos.Y, targets)
		if !found {
			ai.Target = 0
			ai.TargetDistance = 0
			s.setMode(id, ai, components.AIModeIdle)
			vel.VX = 0
			continue
		}
		ai.Target = target
		ai.TargetDistance = dist

		mode := SelectAIMode(ai, dist, ecs.HasComponent[*components.WeaponComponent](s.entityManager, id))
		s.setMode(id, ai, mode)

		targetPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, target)
		s.act(id, ai, vel, pos, targetPos)
	}
}

// SelectAIMode 按距离区间选择行为，恰好落在阈值上的距离属于较近的区间
func SelectAIMode(ai *components.EnemyAIComponent, dist float64, hasWeapon bool) components.AIMode {
	switch {
	case dist <= ai.MeleeRange:
		return components.AIModeMelee
	case dist <= ai.RangedRange:
		if hasWeapon {
			return components.AIModeRanged
		}
		return components.AIModeChase
	case dist <= ai.HuntRange:
		return components.AIModeChase
	default:
		return components.AIModeIdle
	}
}

// NearestTarget 线性扫描最近的存活目标，忽略自身
func NearestTarget(em *ecs.EntityManager, self ecs.EntityID, x, y float64, candidates []ecs.EntityID) (ecs.EntityID, float64, bool) {
	var (
		best     ecs.EntityID
		bestDist = math.Inf(1)
		found    bool
	)
	for _, id := range candidates {
		if id == self || !isAlive(em, id) {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if !ok {
			continue
		}
		d := math.Hypot(pos.X-x, pos.Y-y)
		// candidates 按 ID 升序，严格小于保证平局时取较小 ID
		if d < bestDist {
			best, bestDist, found = id, d, true
		}
	}
	return best, bestDist, found
}

func (s *EnemyAISystem) trackables() []ecs.EntityID {
	return ecs.GetEntitiesWith2[*components.TrackableComponent, *components.PositionComponent](s.entityManager)
}

func (s *EnemyAISystem) setMode(id ecs.EntityID, ai *components.EnemyAIComponent, mode components.AIMode) {
	if ai.Mode == mode {
		return
	}
	if s.frameCount%aiLogFrameInterval == 0 || mode != components.AIModeIdle {
		log.Printf("[EnemyAISystem] Enemy %d: %s -> %s (target %d, %.0fpx)", id, ai.Mode, mode, ai.Target, ai.TargetDistance)
	}
	ai.Mode = mode
}

func (s *EnemyAISystem) act(id ecs.EntityID, ai *components.EnemyAIComponent, vel *components.VelocityComponent,
	pos, targetPos *components.PositionComponent) {
	ch, ok := ecs.GetComponent[*components.CharacterComponent](s.entityManager, id)
	if !ok {
		return
	}
	mv, _ := ecs.GetComponent[*components.MoveStateComponent](s.entityManager, id)
	locked := mv != nil && mv.IsLocked()

	if !locked {
		if targetPos.X < pos.X {
			ch.Facing = components.FacingLeft
		} else {
			ch.Facing = components.FacingRight
		}
	}

	switch ai.Mode {
	case components.AIModeMelee:
		vel.VX = 0
		if !locked && ai.CooldownLeft <= 0 && s.states != nil {
			if s.states.TransitionTo(id, components.StateAttack) {
				ai.CooldownLeft = ai.AttackCooldown
			}
		}

	case components.AIModeRanged:
		vel.VX = 0
		w, ok := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)
		if !ok || locked {
			return
		}
		switch {
		case w.CanFire():
			if s.states != nil {
				s.states.TransitionTo(id, components.StateAttack)
			}
		case w.Rounds <= 0 && !w.Reloading && s.weapons != nil:
			s.weapons.StartReload(id)
		}

	case components.AIModeChase:
		if locked {
			return
		}
		vel.VX = ch.Facing.Sign() * ch.Speed

	default:
		vel.VX = 0
	}
}
