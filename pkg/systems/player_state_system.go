package systems

import (
	"log"
	"math"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/gonewx/wayfarer/pkg/game"
)

// motionEpsilon 低于此速度视为静止（像素/秒）
const motionEpsilon = 1.0

// Attacker 执行攻击动作（近战判定或开火），由 CombatSystem 实现
type Attacker interface {
	Attack(id ecs.EntityID)
}

// PlayerStateSystem 角色移动状态机
//
// 所有拥有 MoveStateComponent 的角色（玩家、敌人、NPC、无人机）共用同一套九状态机。
// 操控角色由 InputSystem 调用 TransitionTo 驱动；其他角色根据速度推导状态，
// 只用于选择动画。
type PlayerStateSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	attacker      Attacker
}

// NewPlayerStateSystem 创建状态机系统
func NewPlayerStateSystem(em *ecs.EntityManager, gs *game.GameState) *PlayerStateSystem {
	return &PlayerStateSystem{
		entityManager: em,
		gameState:     gs,
	}
}

// SetAttacker 设置攻击执行者（与 CombatSystem 互相引用，因此不放在构造函数里）
func (s *PlayerStateSystem) SetAttacker(a Attacker) {
	s.attacker = a
}

// TransitionTo 切换角色状态，返回是否发生了切换
//
// 规则：
//   - 死亡后不再离开 Dead
//   - 锁定中（攻击动作、受击硬直）只允许切换到 Hurt 或 Dead
//   - 目标与当前状态相同时不做任何事；攻击动作结束后可以重新攻击，受击会重置硬直
func (s *PlayerStateSystem) TransitionTo(id ecs.EntityID, state components.MoveState) bool {
	mv, ok := ecs.GetComponent[*components.MoveStateComponent](s.entityManager, id)
	if !ok || mv.State == components.StateDead {
		return false
	}

	if state == mv.State {
		switch state {
		case components.StateAttack:
			if mv.StateTime < mv.AttackTime {
				return false
			}
		case components.StateHurt:
			mv.StateTime = 0
			return true
		default:
			return false
		}
	} else if mv.IsLocked() && state != components.StateHurt && state != components.StateDead {
		return false
	}

	mv.Previous = mv.State
	mv.State = state
	mv.StateTime = 0

	s.playAnimation(id, state)
	s.applyVelocity(id, state)

	switch state {
	case components.StateAttack:
		if s.attacker != nil {
			s.attacker.Attack(id)
		}
	case components.StateDead:
		s.onDeath(id)
	}
	return true
}

// Steer 在可移动状态下按方向设置水平速度（空中也可以转向）
func (s *PlayerStateSystem) Steer(id ecs.EntityID, dir float64, run bool) {
	mv, ok1 := ecs.GetComponent[*components.MoveStateComponent](s.entityManager, id)
	ch, ok2 := ecs.GetComponent[*components.CharacterComponent](s.entityManager, id)
	vel, ok3 := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
	if !ok1 || !ok2 || !ok3 || mv.IsLocked() {
		return
	}

	switch mv.State {
	case components.StateWalk, components.StateRun, components.StateJump, components.StateFall:
		speed := ch.Speed
		if run {
			speed = ch.RunSpeed
		}
		vel.VX = dir * speed
	}
}

// Update 推进状态计时；攻击、受击结束后恢复，非操控角色根据速度更新状态
func (s *PlayerStateSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith2[*components.MoveStateComponent, *components.CharacterComponent](s.entityManager)
	for _, id := range ids {
		mv, _ := ecs.GetComponent[*components.MoveStateComponent](s.entityManager, id)
		mv.StateTime += deltaTime

		switch mv.State {
		case components.StateDead:
			continue
		case components.StateAttack, components.StateHurt:
			if !mv.IsLocked() {
				s.TransitionTo(id, s.motionState(id))
			}
			continue
		}

		if control, ok := ecs.GetComponent[*components.PlayerControlComponent](s.entityManager, id); ok && control.Active {
			continue
		}
		if next := s.motionState(id); next != mv.State {
			s.TransitionTo(id, next)
		}
	}
}

// motionState 根据速度和是否着地推导状态
func (s *PlayerStateSystem) motionState(id ecs.EntityID) components.MoveState {
	ch, ok1 := ecs.GetComponent[*components.CharacterComponent](s.entityManager, id)
	vel, ok2 := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
	if !ok1 || !ok2 {
		return components.StateIdle
	}

	// 无人机悬浮，不区分空中状态
	if ch.Kind != components.KindDrone && !ch.Grounded {
		if vel.VY < 0 {
			return components.StateJump
		}
		return components.StateFall
	}

	speed := math.Abs(vel.VX)
	switch {
	case speed <= motionEpsilon:
		return components.StateIdle
	case speed > ch.Speed+motionEpsilon:
		return components.StateRun
	default:
		return components.StateWalk
	}
}

func (s *PlayerStateSystem) playAnimation(id ecs.EntityID, state components.MoveState) {
	anim, ok1 := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
	set, ok2 := ecs.GetComponent[*components.AnimationSetComponent](s.entityManager, id)
	if !ok1 || !ok2 {
		return
	}
	clip, ok := set.Clip(state)
	if !ok {
		return
	}
	if state == components.StateAttack {
		anim.Key = "" // 每次攻击都从第一帧播放
	}
	anim.PlayClip(clip)
}

func (s *PlayerStateSystem) applyVelocity(id ecs.EntityID, state components.MoveState) {
	ch, ok1 := ecs.GetComponent[*components.CharacterComponent](s.entityManager, id)
	vel, ok2 := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
	if !ok1 || !ok2 {
		return
	}

	switch state {
	case components.StateIdle, components.StateCrouch, components.StateAttack,
		components.StateHurt, components.StateDead:
		vel.VX = 0
	case components.StateWalk:
		vel.VX = ch.Facing.Sign() * ch.Speed
	case components.StateRun:
		vel.VX = ch.Facing.Sign() * ch.RunSpeed
	case components.StateJump:
		if ch.Grounded {
			vel.VY = -ch.JumpSpeed
			ch.Grounded = false
			playSound(s.gameState, game.SoundJump)
		}
	}
}

// onDeath 死亡处理：敌人与 NPC 的尸体在 CorpseLifetime 后移除；操控角色死亡时自动切换
func (s *PlayerStateSystem) onDeath(id ecs.EntityID) {
	ch, ok := ecs.GetComponent[*components.CharacterComponent](s.entityManager, id)
	if !ok {
		return
	}
	log.Printf("[PlayerStateSystem] %s %q (entity %d) died", ch.Kind, ch.UnitID, id)
	ecs.RemoveComponent[*components.TrackableComponent](s.entityManager, id)

	switch ch.Kind {
	case components.KindEnemy, components.KindNPC:
		ecs.AddComponent(s.entityManager, id, &components.LifetimeComponent{MaxLifetime: config.CorpseLifetime})
	case components.KindPlayer:
		reg := registryOf(s.gameState)
		if control, ok := ecs.GetComponent[*components.PlayerControlComponent](s.entityManager, id); ok && control.Active {
			EnsureActivePlayer(s.entityManager, reg)
		}
		if reg != nil {
			reg.Set(game.RegistryKeyPartyAlive, LivingPartyCount(s.entityManager))
		}
	}
}
