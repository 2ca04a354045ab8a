package systems

import (
	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/ecs"
)

// HintSystem 提示文字倒计时，到时移除提示实体
type HintSystem struct {
	entityManager *ecs.EntityManager
}

// NewHintSystem 创建提示系统
func NewHintSystem(em *ecs.EntityManager) *HintSystem {
	return &HintSystem{entityManager: em}
}

// Update 更新所有提示的剩余时间
func (s *HintSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.HintComponent](s.entityManager) {
		hint, _ := ecs.GetComponent[*components.HintComponent](s.entityManager, id)
		hint.Remaining -= deltaTime
		if hint.Remaining <= 0 {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// VisibleHints 返回当前显示中的提示文字（按创建顺序）
func (s *HintSystem) VisibleHints() []string {
	var texts []string
	for _, id := range ecs.GetEntitiesWith1[*components.HintComponent](s.entityManager) {
		if s.entityManager.IsPendingDestroy(id) {
			continue
		}
		hint, _ := ecs.GetComponent[*components.HintComponent](s.entityManager, id)
		texts = append(texts, hint.Text)
	}
	return texts
}
