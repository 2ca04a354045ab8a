package entities

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// mockSpriteLoader 记录请求过的精灵，不做任何文件 I/O
type mockSpriteLoader struct {
	requested map[string]int
	frames    map[string][]*ebiten.Image
}

func newMockSpriteLoader() *mockSpriteLoader {
	return &mockSpriteLoader{
		requested: make(map[string]int),
		frames:    make(map[string][]*ebiten.Image),
	}
}

func (m *mockSpriteLoader) LoadSpriteStrip(key string, frames int) ([]*ebiten.Image, error) {
	m.requested[key] = frames
	return m.frames[key], nil
}
