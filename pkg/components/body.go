package components

import "github.com/jakecoffman/cp"

// 碰撞分类：角色只与平台碰撞，角色之间互相穿过
const (
	CategoryPlatform  uint = 1 << 0
	CategoryCharacter uint = 1 << 1
)

// BodyComponent 物理刚体引用
// 刚体由实体工厂创建，PhysicsSystem 负责每帧同步，并在实体移除时从空间中删除
type BodyComponent struct {
	Body  *cp.Body
	Shape *cp.Shape
}

// PlatformComponent 标记静态地面/平台实体（碰撞形状挂在空间的静态刚体上）
type PlatformComponent struct{}
