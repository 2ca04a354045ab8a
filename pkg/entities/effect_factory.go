package entities

import (
	"image/color"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
)

var hitSparkColor = color.RGBA{R: 255, G: 255, B: 255, A: 220}

// NewHitSpark 创建一个空闲的受击火花实体（对象池槽位）
// 实体创建时隐藏，由 HitFlashPool.Acquire 激活
func NewHitSpark(em *ecs.EntityManager) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{})
	ecs.AddComponent(em, id, &components.HitSparkComponent{Duration: config.HitSparkDuration})
	ecs.AddComponent(em, id, &components.SpriteComponent{
		TextureKey: "hit_spark",
		Scale:      1,
		Width:      14,
		Height:     14,
		Color:      hitSparkColor,
		Depth:      components.DepthEffect,
		Hidden:     true,
	})
	return id
}
