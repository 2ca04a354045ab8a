package systems

import (
	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/jakecoffman/cp"
)

// groundNormalThreshold 接触法线的 Y 分量超过此值视为站在地面上
// 法线由角色指向接触对象，Y 轴向下，因此脚下的接触法线 Y 为正
const groundNormalThreshold = 0.5

// PhysicsSystem 刚体物理
//
// 持有关卡的 cp.Space。每帧把 VelocityComponent 写入刚体，推进模拟，
// 再把刚体的位置和速度写回组件，并根据接触法线计算角色是否着地。
type PhysicsSystem struct {
	em    *ecs.EntityManager
	space *cp.Space
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器
//   - gravity: 重力加速度（像素/秒²，向下为正）
func NewPhysicsSystem(em *ecs.EntityManager, gravity float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	ps := &PhysicsSystem{
		em:    em,
		space: space,
	}
	em.OnRemove(ps.removeBody)
	return ps
}

// Space 返回物理空间（实体工厂在其中创建刚体）
func (ps *PhysicsSystem) Space() *cp.Space {
	return ps.space
}

// AddBounds 在关卡左右两侧添加不可穿越的墙
func (ps *PhysicsSystem) AddBounds(width, height float64) {
	walls := []*cp.Shape{
		cp.NewSegment(ps.space.StaticBody, cp.Vector{X: 0, Y: -height}, cp.Vector{X: 0, Y: height * 2}, 1),
		cp.NewSegment(ps.space.StaticBody, cp.Vector{X: width, Y: -height}, cp.Vector{X: width, Y: height * 2}, 1),
	}
	for _, wall := range walls {
		wall.SetFriction(0)
		wall.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, components.CategoryPlatform, cp.ALL_CATEGORIES))
		ps.space.AddShape(wall)
	}
}

// Update 推进物理模拟
func (ps *PhysicsSystem) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}
	ids := ecs.GetEntitiesWith3[*components.BodyComponent, *components.PositionComponent, *components.VelocityComponent](ps.em)

	for _, id := range ids {
		body, _ := ecs.GetComponent[*components.BodyComponent](ps.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)
		if body.Body == nil || body.Body == ps.space.StaticBody {
			continue
		}
		body.Body.SetVelocity(vel.VX, vel.VY)
	}

	ps.space.Step(deltaTime)

	for _, id := range ids {
		body, _ := ecs.GetComponent[*components.BodyComponent](ps.em, id)
		if body.Body == nil || body.Body == ps.space.StaticBody {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)

		p := body.Body.Position()
		v := body.Body.Velocity()
		pos.X, pos.Y = p.X, p.Y
		vel.VX, vel.VY = v.X, v.Y

		if ch, ok := ecs.GetComponent[*components.CharacterComponent](ps.em, id); ok {
			ch.Grounded = isGrounded(body.Body)
		}
	}
}

// isGrounded 检查刚体是否有朝下的接触
func isGrounded(body *cp.Body) bool {
	grounded := false
	body.EachArbiter(func(arb *cp.Arbiter) {
		if arb.Normal().Y > groundNormalThreshold {
			grounded = true
		}
	})
	return grounded
}

// removeBody 实体移除时把刚体和形状从空间中删除（静态刚体只删除形状）
func (ps *PhysicsSystem) removeBody(id ecs.EntityID) {
	body, ok := ecs.GetComponent[*components.BodyComponent](ps.em, id)
	if !ok {
		return
	}
	if body.Shape != nil {
		ps.space.RemoveShape(body.Shape)
	}
	if body.Body != nil && body.Body != ps.space.StaticBody {
		ps.space.RemoveBody(body.Body)
	}
}
