package components

import "github.com/hajimehoshi/ebiten/v2"

// AnimationComponent 管理基于 spritesheet 的帧动画
// Key 为角色配置中的动画键（如 "ranger_run"）；Frames 为空时渲染占位图形
type AnimationComponent struct {
	Key          string          // 当前动画键
	Frames       []*ebiten.Image // 动画的所有帧图片（可为空）
	FrameCount   int             // 帧数（无图片时也用于推进计时）
	FrameSpeed   float64         // 每帧之间的延迟时间(秒)
	FrameCounter float64         // 当前帧计时器(秒)
	CurrentFrame int             // 当前显示的帧索引(0-based)
	IsLooping    bool            // 是否循环播放
	IsFinished   bool            // 动画是否已完成(仅对非循环动画有效)
}

// Play 切换动画并从第一帧开始，键相同时不重置
func (a *AnimationComponent) Play(key string, frames []*ebiten.Image, loop bool) {
	if a.Key == key && !a.IsFinished {
		return
	}
	a.Key = key
	a.Frames = frames
	if len(frames) > 0 {
		a.FrameCount = len(frames)
	}
	if a.FrameCount <= 0 {
		a.FrameCount = 1
	}
	a.IsLooping = loop
	a.CurrentFrame = 0
	a.FrameCounter = 0
	a.IsFinished = false
}

// CurrentImage 返回当前帧图片，没有帧时返回 nil
func (a *AnimationComponent) CurrentImage() *ebiten.Image {
	if a.CurrentFrame < 0 || a.CurrentFrame >= len(a.Frames) {
		return nil
	}
	return a.Frames[a.CurrentFrame]
}

// AnimationClip 单个状态的动画数据（由实体工厂从配置加载）
type AnimationClip struct {
	Key        string
	Frames     []*ebiten.Image // 可为空，渲染时使用占位矩形
	FrameCount int
	FrameSpeed float64 // 每帧时长（秒）
	Loop       bool
}

// AnimationSetComponent 角色各状态的动画集合
type AnimationSetComponent struct {
	Clips map[MoveState]AnimationClip
}

// Clip 返回状态对应的动画，未配置时回退到 idle
func (s *AnimationSetComponent) Clip(state MoveState) (AnimationClip, bool) {
	if clip, ok := s.Clips[state]; ok {
		return clip, true
	}
	clip, ok := s.Clips[StateIdle]
	return clip, ok
}

// PlayClip 切换到指定动画片段，规则同 Play
func (a *AnimationComponent) PlayClip(c AnimationClip) {
	if a.Key == c.Key && !a.IsFinished {
		return
	}
	a.FrameSpeed = c.FrameSpeed
	a.FrameCount = c.FrameCount
	a.Play(c.Key, c.Frames, c.Loop)
}
