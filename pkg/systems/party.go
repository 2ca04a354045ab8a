package systems

import (
	"log"
	"sort"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/gonewx/wayfarer/pkg/game"
)

// partyMembers 返回按 Slot 排序的队伍成员
func partyMembers(em *ecs.EntityManager) []ecs.EntityID {
	ids := ecs.GetEntitiesWith2[*components.PlayerControlComponent, *components.CharacterComponent](em)
	sort.SliceStable(ids, func(i, j int) bool {
		ci, _ := ecs.GetComponent[*components.PlayerControlComponent](em, ids[i])
		cj, _ := ecs.GetComponent[*components.PlayerControlComponent](em, ids[j])
		return ci.Slot < cj.Slot
	})
	return ids
}

// isAlive 没有生命组件的实体视为存活
func isAlive(em *ecs.EntityManager, id ecs.EntityID) bool {
	if !em.Exists(id) || em.IsPendingDestroy(id) {
		return false
	}
	if mv, ok := ecs.GetComponent[*components.MoveStateComponent](em, id); ok && mv.State == components.StateDead {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](em, id)
	return !ok || !health.IsDead()
}

// ActivePlayer 返回当前操控的角色
func ActivePlayer(em *ecs.EntityManager) (ecs.EntityID, bool) {
	for _, id := range partyMembers(em) {
		control, _ := ecs.GetComponent[*components.PlayerControlComponent](em, id)
		if control.Active {
			return id, true
		}
	}
	return 0, false
}

// LivingPartyCount 返回存活的队伍成员数
func LivingPartyCount(em *ecs.EntityManager) int {
	n := 0
	for _, id := range partyMembers(em) {
		if isAlive(em, id) {
			n++
		}
	}
	return n
}

// SetActivePlayer 将操控权交给指定角色，其余成员全部置为非活动
// 目标已死亡或不是队伍成员时返回 false
func SetActivePlayer(em *ecs.EntityManager, reg *game.Registry, id ecs.EntityID) bool {
	if !ecs.HasComponent[*components.PlayerControlComponent](em, id) || !isAlive(em, id) {
		return false
	}
	for _, member := range partyMembers(em) {
		control, _ := ecs.GetComponent[*components.PlayerControlComponent](em, member)
		control.Active = member == id
	}
	if reg != nil {
		if ch, ok := ecs.GetComponent[*components.CharacterComponent](em, id); ok {
			reg.Set(game.RegistryKeyActiveCharacter, ch.UnitID)
		}
	}
	return true
}

// SwitchActivePlayer 按 Slot 顺序切换到下一个存活成员（跳过死亡成员）
// 只有一个存活成员时保持不变并返回 false
func SwitchActivePlayer(em *ecs.EntityManager, reg *game.Registry) (ecs.EntityID, bool) {
	members := partyMembers(em)
	if len(members) == 0 {
		return 0, false
	}

	start := -1
	for i, id := range members {
		control, _ := ecs.GetComponent[*components.PlayerControlComponent](em, id)
		if control.Active {
			start = i
			break
		}
	}

	for step := 1; step <= len(members); step++ {
		idx := (start + step) % len(members)
		if idx < 0 {
			idx += len(members)
		}
		candidate := members[idx]
		if isAlive(em, candidate) {
			if idx == start {
				// 绕回自己：没有可切换的成员
				return candidate, false
			}
			SetActivePlayer(em, reg, candidate)
			log.Printf("[Party] Active player -> entity %d", candidate)
			return candidate, true
		}
	}

	// 全员阵亡
	for _, id := range members {
		control, _ := ecs.GetComponent[*components.PlayerControlComponent](em, id)
		control.Active = false
	}
	return 0, false
}

// EnsureActivePlayer 保证存活成员中恰好有一个处于操控状态
// 当前操控角色死亡时自动切换到下一个存活成员
func EnsureActivePlayer(em *ecs.EntityManager, reg *game.Registry) (ecs.EntityID, bool) {
	if id, ok := ActivePlayer(em); ok && isAlive(em, id) {
		return id, true
	}
	return SwitchActivePlayer(em, reg)
}
