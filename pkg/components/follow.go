package components

// FollowComponent 跟随当前操控角色的伙伴配置
type FollowComponent struct {
	// BufferZone 与当前角色保持的水平距离（像素），区域内速度归零
	BufferZone float64
	// Hover 悬浮跟随（无人机）：同时保持在当前角色上方 OffsetY 处
	Hover   bool
	OffsetY float64
}
