package components

import (
	"fmt"
	"strings"
)

// MoveState 角色的动作状态（同时决定播放哪个动画）
type MoveState int

const (
	StateIdle MoveState = iota
	StateWalk
	StateRun
	StateJump
	StateFall
	StateCrouch
	StateAttack
	StateHurt
	StateDead
)

// AllMoveStates 按枚举顺序列出全部状态
var AllMoveStates = []MoveState{
	StateIdle, StateWalk, StateRun, StateJump, StateFall,
	StateCrouch, StateAttack, StateHurt, StateDead,
}

var moveStateNames = map[MoveState]string{
	StateIdle:   "idle",
	StateWalk:   "walk",
	StateRun:    "run",
	StateJump:   "jump",
	StateFall:   "fall",
	StateCrouch: "crouch",
	StateAttack: "attack",
	StateHurt:   "hurt",
	StateDead:   "dead",
}

// String 返回状态名（同时也是角色配置 animations 表中的键）
func (s MoveState) String() string {
	if name, ok := moveStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("MoveState(%d)", int(s))
}

// ParseMoveState 解析状态名
func ParseMoveState(s string) (MoveState, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for state, name := range moveStateNames {
		if name == key {
			return state, nil
		}
	}
	return 0, fmt.Errorf("unsupported move state %q", s)
}

// MoveStateComponent 角色动作状态机数据
type MoveStateComponent struct {
	State      MoveState // 当前状态
	Previous   MoveState // 上一个状态
	StateTime  float64   // 进入当前状态后经过的时间（秒）
	AttackTime float64   // 攻击动作持续时间（秒）
	HurtTime   float64   // 受击硬直时间（秒）
}

// IsLocked 受击、死亡以及攻击未结束时，输入无法打断当前状态
func (m *MoveStateComponent) IsLocked() bool {
	switch m.State {
	case StateDead:
		return true
	case StateHurt:
		return m.StateTime < m.HurtTime
	case StateAttack:
		return m.StateTime < m.AttackTime
	}
	return false
}
