package systems

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	healthBarBack   = color.RGBA{R: 40, G: 40, B: 40, A: 200}
	healthBarFill   = color.RGBA{R: 210, G: 60, B: 60, A: 255}
	dialogueBoxFill = color.RGBA{R: 10, G: 10, B: 20, A: 210}
)

const (
	healthBarHeight = 4
	dialogueBoxH    = 56
	debugLineHeight = 16
)

// RenderSystem 绘制关卡与所有可见实体
//
// 绘制顺序：背景 → 平台/出口 → 角色与子弹（按脚底 Y、Depth、ID 排序）→ 特效→ 血条 → 提示、对话框、HUD。
// 有帧图片时绘制图片，否则用 SpriteComponent.Color 画占位矩形。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	background    color.RGBA
	hints         *HintSystem     // 可为 nil，不绘制提示
	dialogue      *DialogueSystem // 可为 nil，不绘制对话框
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, background color.RGBA, hints *HintSystem, dialogue *DialogueSystem) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		background:    background,
		hints:         hints,
		dialogue:      dialogue,
	}
}

// Draw 绘制整帧，camX/camY 为镜头左上角的世界坐标
func (s *RenderSystem) Draw(screen *ebiten.Image, camX, camY float64) {
	screen.Fill(s.background)

	for _, id := range s.drawOrder() {
		s.drawSprite(screen, id, camX, camY)
	}
	for _, id := range ecs.GetEntitiesWith2[*components.HealthComponent, *components.PositionComponent](s.entityManager) {
		s.drawHealthBar(screen, id, camX, camY)
	}

	s.drawHints(screen)
	s.drawDialogue(screen)
	s.drawHUD(screen)
}

// drawOrder 返回可见精灵的绘制顺序
func (s *RenderSystem) drawOrder() []ecs.EntityID {
	ids := ecs.GetEntitiesWith2[*components.SpriteComponent, *components.PositionComponent](s.entityManager)
	visible := ids[:0]
	for _, id := range ids {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if !sprite.Hidden {
			visible = append(visible, id)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		si, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, visible[i])
		sj, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, visible[j])
		if li, lj := layerOf(si.Depth), layerOf(sj.Depth); li != lj {
			return li < lj
		}
		bi, bj := s.bottomOf(visible[i], si), s.bottomOf(visible[j], sj)
		if bi != bj {
			return bi < bj
		}
		if si.Depth != sj.Depth {
			return si.Depth < sj.Depth
		}
		return visible[i] < visible[j]
	})
	return visible
}

// layerOf 几何 < 角色与子弹 < 特效
func layerOf(depth int) int {
	switch {
	case depth <= components.DepthGeometry:
		return 0
	case depth >= components.DepthEffect:
		return 2
	default:
		return 1
	}
}

func (s *RenderSystem) bottomOf(id ecs.EntityID, sprite *components.SpriteComponent) float64 {
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	return pos.Y + sprite.Height/2
}

func (s *RenderSystem) drawSprite(screen *ebiten.Image, id ecs.EntityID, camX, camY float64) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)

	scale := sprite.Scale
	if scale == 0 {
		scale = 1
	}
	flip := 1.0
	if ch, ok := ecs.GetComponent[*components.CharacterComponent](s.entityManager, id); ok {
		flip = ch.Facing.Sign()
	}
	flash := 0.0
	if f, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, id); ok && f.IsActive {
		flash = f.Intensity
	}

	sx := pos.X + sprite.OffsetX*scale*flip - camX
	sy := pos.Y + sprite.OffsetY*scale - camY

	var img *ebiten.Image
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id); ok {
		img = anim.CurrentImage()
	}

	if img == nil {
		w, h := sprite.Width*scale, sprite.Height*scale
		vector.DrawFilledRect(screen, float32(sx-w/2), float32(sy-h/2), float32(w), float32(h), brighten(sprite.Color, flash), false)
		return
	}

	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(scale*flip, scale)
	op.GeoM.Translate(sx, sy)
	if flash > 0 {
		f := float32(1 + flash)
		op.ColorScale.Scale(f, f, f, 1)
	}
	screen.DrawImage(img, op)
}

// drawHealthBar 受过伤的角色头顶显示血条
func (s *RenderSystem) drawHealthBar(screen *ebiten.Image, id ecs.EntityID, camX, camY float64) {
	health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	if health.Current >= health.Max || health.IsDead() {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	hb, ok := ecs.GetComponent[*components.HitboxComponent](s.entityManager, id)
	if !ok {
		return
	}
	l, t, _, _ := hb.Bounds(pos.X, pos.Y)
	x, y := float32(l-camX), float32(t-camY-healthBarHeight-4)
	w := float32(hb.Width)
	vector.DrawFilledRect(screen, x, y, w, healthBarHeight, healthBarBack, false)
	vector.DrawFilledRect(screen, x, y, w*float32(health.Ratio()), healthBarHeight, healthBarFill, false)
}

func (s *RenderSystem) drawHints(screen *ebiten.Image) {
	if s.hints == nil {
		return
	}
	y := 40
	for _, text := range s.hints.VisibleHints() {
		x := (config.GameWindowWidth - len(text)*6) / 2
		ebitenutil.DebugPrintAt(screen, text, x, y)
		y += debugLineHeight
	}
}

func (s *RenderSystem) drawDialogue(screen *ebiten.Image) {
	if s.dialogue == nil {
		return
	}
	npc, line, ok := s.dialogue.OpenDialogue()
	if !ok {
		return
	}
	top := float32(config.GameWindowHeight - dialogueBoxH - 12)
	vector.DrawFilledRect(screen, 12, top, config.GameWindowWidth-24, dialogueBoxH, dialogueBoxFill, false)

	speaker := ""
	if ch, ok := ecs.GetComponent[*components.CharacterComponent](s.entityManager, npc); ok {
		speaker = ch.Name
	}
	ebitenutil.DebugPrintAt(screen, speaker, 24, int(top)+8)
	ebitenutil.DebugPrintAt(screen, line, 24, int(top)+8+debugLineHeight)
	if dlg, ok := ecs.GetComponent[*components.DialogueComponent](s.entityManager, npc); ok {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("(%d/%d)", dlg.Index+1, len(dlg.Lines)), config.GameWindowWidth-80, int(top)+8)
	}
}

// drawHUD 左上角显示当前操控角色的名称、生命和弹药
func (s *RenderSystem) drawHUD(screen *ebiten.Image) {
	player, ok := ActivePlayer(s.entityManager)
	if !ok {
		return
	}
	line := ""
	if ch, ok := ecs.GetComponent[*components.CharacterComponent](s.entityManager, player); ok {
		line = ch.Name
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, player); ok {
		line += fmt.Sprintf("  HP %d/%d", health.Current, health.Max)
	}
	if w, ok := ecs.GetComponent[*components.WeaponComponent](s.entityManager, player); ok {
		if w.Reloading {
			line += "  RELOADING"
		} else {
			line += fmt.Sprintf("  AMMO %d/%d", w.Rounds, w.MagazineSize)
		}
	}
	ebitenutil.DebugPrintAt(screen, line, 8, 8)
}

// brighten 按强度向白色插值
func brighten(c color.RGBA, intensity float64) color.RGBA {
	if intensity <= 0 {
		return c
	}
	if intensity > 1 {
		intensity = 1
	}
	lerp := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*intensity)
	}
	return color.RGBA{R: lerp(c.R), G: lerp(c.G), B: lerp(c.B), A: c.A}
}
