package systems

import (
	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/gonewx/wayfarer/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeySource 键盘状态来源
// 生产环境使用 EbitenKeySource，测试中使用假实现
type KeySource interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
}

// EbitenKeySource 基于 ebiten 的键盘输入
type EbitenKeySource struct{}

func (EbitenKeySource) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

func (EbitenKeySource) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// Intent 一帧内玩家的输入意图
// 移动、奔跑、下蹲为按住状态；跳跃、攻击、交互、切换为按下瞬间
type Intent struct {
	Left     bool
	Right    bool
	Run      bool
	Jump     bool
	Crouch   bool
	Attack   bool
	Interact bool
	Switch   bool
}

// Direction 返回水平方向：-1 左，1 右，0 不动（同时按下左右也视为不动）
func (in Intent) Direction() float64 {
	switch {
	case in.Left && !in.Right:
		return -1
	case in.Right && !in.Left:
		return 1
	}
	return 0
}

// ReadIntent 根据按键绑定读取输入意图
func ReadIntent(src KeySource, bindings config.KeyBindings) Intent {
	held := func(a config.Action) bool {
		for _, k := range bindings.Keys(a) {
			if src.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	pressed := func(a config.Action) bool {
		for _, k := range bindings.Keys(a) {
			if src.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}

	return Intent{
		Left:     held(config.ActionLeft),
		Right:    held(config.ActionRight),
		Run:      held(config.ActionRun),
		Crouch:   held(config.ActionCrouch),
		Jump:     pressed(config.ActionJump),
		Attack:   pressed(config.ActionAttack),
		Interact: pressed(config.ActionInteract),
		Switch:   pressed(config.ActionSwitch),
	}
}

// SelectState 按优先级选择操控角色的下一个状态
//
// 优先级：锁定状态（死亡、受击硬直、攻击动作）> 攻击 > 起跳 > 空中（上升/下落）> 下蹲 > 移动（奔跑/行走）> 待机
func SelectState(in Intent, grounded bool, vy float64, mv *components.MoveStateComponent) components.MoveState {
	if mv.IsLocked() {
		return mv.State
	}
	if in.Attack {
		return components.StateAttack
	}
	if in.Jump && grounded {
		return components.StateJump
	}
	if !grounded {
		if vy < 0 {
			return components.StateJump
		}
		return components.StateFall
	}
	if in.Crouch {
		return components.StateCrouch
	}
	if in.Direction() != 0 {
		if in.Run {
			return components.StateRun
		}
		return components.StateWalk
	}
	return components.StateIdle
}

// InputSystem 每帧读取键盘并驱动当前操控角色
type InputSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	keys          KeySource
	bindings      config.KeyBindings
	states        *PlayerStateSystem
	intent        Intent
}

// NewInputSystem 创建输入系统，bindings 为 nil 时使用默认按键
func NewInputSystem(em *ecs.EntityManager, gs *game.GameState, keys KeySource, bindings config.KeyBindings, states *PlayerStateSystem) *InputSystem {
	if bindings == nil {
		bindings = config.DefaultKeyBindings()
	}
	return &InputSystem{
		entityManager: em,
		gameState:     gs,
		keys:          keys,
		bindings:      bindings,
		states:        states,
	}
}

// Intent 返回本帧读取的输入意图（DialogueSystem 读取交互键）
func (s *InputSystem) Intent() Intent {
	return s.intent
}

// Update 读取输入、处理角色切换并更新操控角色的状态与速度
func (s *InputSystem) Update(deltaTime float64) {
	s.intent = ReadIntent(s.keys, s.bindings)

	if s.intent.Switch {
		if _, ok := SwitchActivePlayer(s.entityManager, registryOf(s.gameState)); ok {
			playSound(s.gameState, game.SoundSwitch)
		}
	}

	id, ok := ActivePlayer(s.entityManager)
	if !ok {
		return
	}
	ch, ok1 := ecs.GetComponent[*components.CharacterComponent](s.entityManager, id)
	vel, ok2 := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
	mv, ok3 := ecs.GetComponent[*components.MoveStateComponent](s.entityManager, id)
	if !ok1 || !ok2 || !ok3 {
		return
	}

	dir := s.intent.Direction()
	if dir != 0 && !mv.IsLocked() {
		if dir < 0 {
			ch.Facing = components.FacingLeft
		} else {
			ch.Facing = components.FacingRight
		}
	}

	s.states.TransitionTo(id, SelectState(s.intent, ch.Grounded, vel.VY, mv))
	s.states.Steer(id, dir, s.intent.Run)
}

func registryOf(gs *game.GameState) *game.Registry {
	if gs == nil {
		return nil
	}
	return gs.Registry()
}

func playSound(gs *game.GameState, id string) {
	if gs != nil {
		gs.PlaySound(id)
	}
}
