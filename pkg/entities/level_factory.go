package entities

import (
	"image/color"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/jakecoffman/cp"
)

var (
	platformColor = color.RGBA{R: 86, G: 98, B: 118, A: 255}
	exitColor     = color.RGBA{R: 90, G: 220, B: 140, A: 110}
)

// NewPlatform 创建静态平台：碰撞形状挂在空间的静态刚体上
// space 为 nil 时只创建可绘制的实体
func NewPlatform(em *ecs.EntityManager, space *cp.Space, r config.Rect) ecs.EntityID {
	cx, cy := r.Center()

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: cx, Y: cy})
	ecs.AddComponent(em, id, &components.PlatformComponent{})
	ecs.AddComponent(em, id, &components.SpriteComponent{
		Scale:  1,
		Width:  r.Width,
		Height: r.Height,
		Color:  platformColor,
		Depth:  components.DepthGeometry,
	})

	if space != nil {
		shape := cp.NewBox2(space.StaticBody, cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}, 0)
		shape.SetFriction(1)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, components.CategoryPlatform, cp.ALL_CATEGORIES))
		space.AddShape(shape)
		ecs.AddComponent(em, id, &components.BodyComponent{Body: space.StaticBody, Shape: shape})
	}
	return id
}

// NewExitZone 创建关卡出口区域
func NewExitZone(em *ecs.EntityManager, r config.Rect) ecs.EntityID {
	cx, cy := r.Center()

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: cx, Y: cy})
	ecs.AddComponent(em, id, &components.ExitZoneComponent{Width: r.Width, Height: r.Height})
	ecs.AddComponent(em, id, &components.SpriteComponent{
		TextureKey: "exit",
		Scale:      1,
		Width:      r.Width,
		Height:     r.Height,
		Color:      exitColor,
		Depth:      components.DepthGeometry,
	})
	return id
}

// NewHint 创建屏幕提示，duration 秒后由 HintSystem 移除
func NewHint(em *ecs.EntityManager, text string, duration float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.HintComponent{Text: text, Remaining: duration})
	return id
}
