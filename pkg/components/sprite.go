package components

import "image/color"

// SpriteComponent 存储实体的视觉表现配置
// 纹理缺失时使用 Color 绘制 Width x Height 的占位矩形
type SpriteComponent struct {
	TextureKey string
	Scale      float64
	OffsetX    float64 // 绘制偏移（像素，缩放前）
	OffsetY    float64
	Width      float64
	Height     float64
	Color      color.RGBA
	Depth      int  // 同一脚底 Y 下的绘制顺序；DepthGeometry 及以下、DepthEffect 及以上单独分层
	Hidden     bool // 对象池中空闲的实体不绘制
}

const (
	// DepthGeometry 关卡几何（平台、出口），先于所有实体绘制
	DepthGeometry = -1
	// DepthEffect 特效层，最后绘制
	DepthEffect = 5
)
