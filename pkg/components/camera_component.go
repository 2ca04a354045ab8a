package components

// CameraComponent 视口位置（世界坐标左上角）
// 镜头跟随当前操控角色，并被限制在关卡范围内
type CameraComponent struct {
	X, Y float64

	// ViewWidth / ViewHeight 视口尺寸（即窗口逻辑尺寸）
	ViewWidth  float64
	ViewHeight float64

	// BoundsWidth / BoundsHeight 关卡尺寸
	BoundsWidth  float64
	BoundsHeight float64
}
