package components

// HitboxComponent 定义实体的碰撞检测边界框（以实体位置为中心）
type HitboxComponent struct {
	Width   float64
	Height  float64
	OffsetX float64 // 碰撞盒相对于实体位置的X偏移量（像素），正值向右偏移
	OffsetY float64 // 碰撞盒相对于实体位置的Y偏移量（像素），正值向下偏移
}

// Bounds 返回碰撞盒在世界坐标中的边界
func (h *HitboxComponent) Bounds(x, y float64) (left, top, right, bottom float64) {
	cx := x + h.OffsetX
	cy := y + h.OffsetY
	return cx - h.Width/2, cy - h.Height/2, cx + h.Width/2, cy + h.Height/2
}

// ExitZoneComponent 关卡出口区域
type ExitZoneComponent struct {
	Width  float64
	Height float64
}
