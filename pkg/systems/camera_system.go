package systems

import (
	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/ecs"
)

// CameraSystem 镜头跟随当前操控角色
// 角色保持在视口中央，靠近关卡边缘时镜头停在边界上
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID
}

// NewCameraSystem 创建镜头实体
func NewCameraSystem(em *ecs.EntityManager, viewWidth, viewHeight, levelWidth, levelHeight float64) *CameraSystem {
	cs := &CameraSystem{entityManager: em}
	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		ViewWidth:    viewWidth,
		ViewHeight:   viewHeight,
		BoundsWidth:  levelWidth,
		BoundsHeight: levelHeight,
	})
	return cs
}

// Update 把镜头移到当前操控角色处，没有操控角色时保持不动
func (cs *CameraSystem) Update(dt float64) {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}
	player, ok := ActivePlayer(cs.entityManager)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](cs.entityManager, player)
	if !ok {
		return
	}

	cam.X = clampCamera(pos.X-cam.ViewWidth/2, cam.BoundsWidth-cam.ViewWidth)
	cam.Y = clampCamera(pos.Y-cam.ViewHeight/2, cam.BoundsHeight-cam.ViewHeight)
}

// Offset 返回镜头左上角的世界坐标
func (cs *CameraSystem) Offset() (float64, float64) {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return 0, 0
	}
	return cam.X, cam.Y
}

// clampCamera 限制在 [0, max]；关卡比视口小时固定为 0
func clampCamera(v, max float64) float64 {
	if max <= 0 || v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
