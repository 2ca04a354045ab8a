package systems

import (
	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/ecs"
)

// ProjectileSystem 子弹移动
// 子弹不参与刚体模拟，按速度直线移动；飞出关卡范围立即回收
type ProjectileSystem struct {
	entityManager *ecs.EntityManager
	levelWidth    float64
}

// NewProjectileSystem 创建子弹系统，levelWidth <= 0 表示不做边界回收
func NewProjectileSystem(em *ecs.EntityManager, levelWidth float64) *ProjectileSystem {
	return &ProjectileSystem{
		entityManager: em,
		levelWidth:    levelWidth,
	}
}

// Update 更新所有子弹位置
func (s *ProjectileSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith3[*components.ProjectileComponent, *components.PositionComponent, *components.VelocityComponent](s.entityManager)
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		pos.X += vel.VX * deltaTime
		pos.Y += vel.VY * deltaTime

		if s.levelWidth > 0 && (pos.X < 0 || pos.X > s.levelWidth) {
			s.entityManager.DestroyEntity(id)
		}
	}
}
