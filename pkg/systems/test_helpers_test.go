package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// fakeKeySource 测试用键盘输入，held 为按住的键，pressed 为本帧按下的键
type fakeKeySource struct {
	held    map[ebiten.Key]bool
	pressed map[ebiten.Key]bool
}

func newFakeKeySource() *fakeKeySource {
	return &fakeKeySource{
		held:    make(map[ebiten.Key]bool),
		pressed: make(map[ebiten.Key]bool),
	}
}

func (f *fakeKeySource) IsKeyPressed(key ebiten.Key) bool {
	return f.held[key] || f.pressed[key]
}

func (f *fakeKeySource) IsKeyJustPressed(key ebiten.Key) bool {
	return f.pressed[key]
}

// hold 按住键
func (f *fakeKeySource) hold(keys ...ebiten.Key) {
	for _, k := range keys {
		f.held[k] = true
	}
}

// tap 本帧按下键，下一帧前需调用 reset
func (f *fakeKeySource) tap(keys ...ebiten.Key) {
	for _, k := range keys {
		f.pressed[k] = true
	}
}

func (f *fakeKeySource) reset() {
	f.held = make(map[ebiten.Key]bool)
	f.pressed = make(map[ebiten.Key]bool)
}

// fakeLevelRequester 记录关卡切换请求
type fakeLevelRequester struct {
	requested []string
	restarts  int
}

func (f *fakeLevelRequester) RequestLevel(levelID string) {
	f.requested = append(f.requested, levelID)
}

func (f *fakeLevelRequester) RestartLevel() {
	f.restarts++
}

// fakeIntentSource 固定返回给定的输入意图
type fakeIntentSource struct {
	intent Intent
}

func (f *fakeIntentSource) Intent() Intent {
	return f.intent
}
