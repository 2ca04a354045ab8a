package systems

import (
	"log"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/ecs"
)

// AnimationSystem 管理所有实体的帧动画
// 没有帧图片的动画同样按 FrameCount 推进，保证非循环动画能正常结束
type AnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewAnimationSystem 创建一个新的动画系统
func NewAnimationSystem(em *ecs.EntityManager) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
	}
}

// Update 更新所有动画实体的帧
func (s *AnimationSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.AnimationComponent](s.entityManager) {
		anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)

		// 非循环动画已完成，停在最后一帧
		if anim.IsFinished || anim.FrameSpeed <= 0 {
			continue
		}

		frameCount := anim.FrameCount
		if n := len(anim.Frames); n > 0 {
			frameCount = n
		}
		if frameCount <= 0 {
			continue
		}

		anim.FrameCounter += deltaTime
		if anim.FrameCounter < anim.FrameSpeed {
			continue
		}

		anim.FrameCounter = 0
		anim.CurrentFrame++
		if anim.CurrentFrame >= frameCount {
			if anim.IsLooping {
				anim.CurrentFrame = 0
			} else {
				anim.CurrentFrame = frameCount - 1
				anim.IsFinished = true
				log.Printf("[AnimationSystem] Animation %s finished (entity %d)", anim.Key, id)
			}
		}
	}
}
