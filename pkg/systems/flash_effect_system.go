package systems

import (
	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/ecs"
)

// FlashEffectSystem 受击闪白效果
// 效果到期后移除组件，渲染系统只在组件存在时提亮角色
type FlashEffectSystem struct {
	entityManager *ecs.EntityManager
}

// NewFlashEffectSystem 创建闪白效果系统
func NewFlashEffectSystem(em *ecs.EntityManager) *FlashEffectSystem {
	return &FlashEffectSystem{
		entityManager: em,
	}
}

// Update 推进闪白计时，强度随时间线性衰减
func (s *FlashEffectSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.FlashEffectComponent](s.entityManager) {
		flash, _ := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, id)
		if !flash.IsActive {
			continue
		}

		flash.Elapsed += dt
		if flash.Elapsed >= flash.Duration {
			ecs.RemoveComponent[*components.FlashEffectComponent](s.entityManager, id)
			continue
		}
		flash.Intensity = 1 - flash.Elapsed/flash.Duration
	}
}
