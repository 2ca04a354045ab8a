package systems

import (
	"math"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/ecs"
)

// droneHoverGain 无人机垂直方向追赶目标高度的比例系数（1/秒）
const droneHoverGain = 4.0

// FollowSystem 伙伴跟随
//
// 非操控的存活队员和无人机跟随当前操控角色：
// 水平距离超出缓冲区时，以操控角色的水平速度（至少行走速度）朝它移动；
// 进入缓冲区后水平速度立即归零。
type FollowSystem struct {
	entityManager *ecs.EntityManager
}

// NewFollowSystem 创建跟随系统
func NewFollowSystem(em *ecs.EntityManager) *FollowSystem {
	return &FollowSystem{entityManager: em}
}

// Update 更新所有跟随者的速度
func (s *FollowSystem) Update(deltaTime float64) {
	leader, ok := ActivePlayer(s.entityManager)
	if !ok {
		s.stopAll()
		return
	}
	leaderPos, ok1 := ecs.GetComponent[*components.PositionComponent](s.entityManager, leader)
	leaderVel, ok2 := ecs.GetComponent[*components.VelocityComponent](s.entityManager, leader)
	leaderState, ok3 := ecs.GetComponent[*components.MoveStateComponent](s.entityManager, leader)
	if !ok1 || !ok2 || !ok3 {
		return
	}
	leaderJumping := leaderState.State == components.StateJump

	for _, id := range s.followers(leader) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		ch, _ := ecs.GetComponent[*components.CharacterComponent](s.entityManager, id)
		follow, _ := ecs.GetComponent[*components.FollowComponent](s.entityManager, id)

		dx := leaderPos.X - pos.X
		outside := math.Abs(dx) > follow.BufferZone

		if outside {
			speed := math.Max(math.Abs(leaderVel.VX), ch.Speed)
			dir := 1.0
			ch.Facing = components.FacingRight
			if dx < 0 {
				dir = -1
				ch.Facing = components.FacingLeft
			}
			vel.VX = dir * speed
		} else {
			vel.VX = 0
		}

		if follow.Hover {
			targetY := leaderPos.Y - follow.OffsetY
			vel.VY = (targetY - pos.Y) * droneHoverGain
			continue
		}

		if outside && leaderJumping && ch.Grounded {
			vel.VY = -ch.JumpSpeed
			ch.Grounded = false
		}
	}
}

// followers 返回需要跟随的实体：非操控的存活队员与无人机
func (s *FollowSystem) followers(leader ecs.EntityID) []ecs.EntityID {
	ids := ecs.GetEntitiesWith3[*components.FollowComponent, *components.PositionComponent, *components.VelocityComponent](s.entityManager)
	result := ids[:0]
	for _, id := range ids {
		if id == leader || !isAlive(s.entityManager, id) {
			continue
		}
		if !ecs.HasComponent[*components.CharacterComponent](s.entityManager, id) {
			continue
		}
		if mv, ok := ecs.GetComponent[*components.MoveStateComponent](s.entityManager, id); ok && mv.IsLocked() {
			continue
		}
		result = append(result, id)
	}
	return result
}

// stopAll 没有操控角色时所有跟随者停下
func (s *FollowSystem) stopAll() {
	for _, id := range ecs.GetEntitiesWith2[*components.FollowComponent, *components.VelocityComponent](s.entityManager) {
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		follow, _ := ecs.GetComponent[*components.FollowComponent](s.entityManager, id)
		vel.VX = 0
		if follow.Hover {
			vel.VY = 0
		}
	}
}
