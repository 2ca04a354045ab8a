package systems

import (
	"image/color"
	"testing"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/gonewx/wayfarer/pkg/entities"
	"github.com/hajimehoshi/ebiten/v2"
)

func TestRenderDrawOrder(t *testing.T) {
	em := ecs.NewEntityManager()
	add := func(depth int, y, h float64, hidden bool) ecs.EntityID {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.PositionComponent{Y: y})
		ecs.AddComponent(em, id, &components.SpriteComponent{Depth: depth, Height: h, Hidden: hidden})
		return id
	}

	front := add(2, 300, 50, false)
	platform := add(components.DepthGeometry, 420, 40, false)
	lower := add(2, 320, 50, false)
	tie := add(2, 300, 50, false)
	hidden := add(0, 0, 10, true)
	npc := add(0, 500, 50, false)
	enemy := add(1, 300, 50, false) // 同一脚底 Y 按 Depth
	spark := add(components.DepthEffect, 100, 14, false)

	got := NewRenderSystem(em, color.RGBA{}, nil, nil).drawOrder()
	// 脚底 Y 优先：靠下（更近）的角色后画
	want := []ecs.EntityID{platform, enemy, front, tie, lower, npc, spark}
	if len(got) != len(want) {
		t.Fatalf("drawOrder() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("drawOrder()[%d] = %d, want %d (full %v)", i, got[i], want[i], got)
		}
	}
	for _, id := range got {
		if id == hidden {
			t.Error("Hidden sprites must not be drawn")
		}
	}
}

func TestBrighten(t *testing.T) {
	base := color.RGBA{R: 100, G: 0, B: 255, A: 128}
	tests := []struct {
		name      string
		intensity float64
		want      color.RGBA
	}{
		{"none", 0, base},
		{"full", 1, color.RGBA{R: 255, G: 255, B: 255, A: 128}},
		{"clamped", 3, color.RGBA{R: 255, G: 255, B: 255, A: 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := brighten(base, tt.intensity); got != tt.want {
				t.Errorf("brighten() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderDrawSmoke(t *testing.T) {
	w := newTestWorld(t)
	hero := w.spawnPlayer(t, "gunner", 0, 200, 300)
	brute := w.spawn(t, "brute", 260, 300)
	npc, _ := entities.NewNPC(w.em, nil, nil, w.config(t, "elder"), "elder", []string{"Hello"}, 150, 300)
	entities.NewPlatform(w.em, nil, config.Rect{X: 0, Y: 325, Width: 960, Height: 40})
	entities.NewHint(w.em, "Reach the exit", config.HintDuration)

	w.combat.ApplyDamage(brute, 5)
	w.weapon(hero).Reloading = true
	dlg, _ := ecs.GetComponent[*components.DialogueComponent](w.em, npc)
	dlg.Open = true

	anim, _ := ecs.GetComponent[*components.AnimationComponent](w.em, hero)
	anim.Frames = []*ebiten.Image{ebiten.NewImage(30, 50)}
	w.character(hero).Facing = components.FacingLeft

	hints := NewHintSystem(w.em)
	dialogue := NewDialogueSystem(w.em, w.gs, nil)
	if _, line, ok := dialogue.OpenDialogue(); !ok || line != "Hello" {
		t.Fatalf("OpenDialogue() = %q, %v", line, ok)
	}

	screen := ebiten.NewImage(config.GameWindowWidth, config.GameWindowHeight)
	NewRenderSystem(w.em, color.RGBA{R: 20, G: 20, B: 30, A: 255}, hints, dialogue).Draw(screen, 0, 0)
	// 没有提示与对话系统时跳过这两层
	NewRenderSystem(w.em, color.RGBA{}, nil, nil).Draw(screen, 0, 0)
}
