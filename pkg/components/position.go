package components

// PositionComponent 存储实体在世界坐标系中的位置
// 坐标为实体碰撞盒中心点（像素）
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 存储实体的速度（像素/秒）
// 行为系统写入期望速度，物理系统负责同步到刚体
type VelocityComponent struct {
	VX float64
	VY float64
}
