package components

// FlashEffectComponent 闪烁效果组件
// 角色受击时短暂闪白
type FlashEffectComponent struct {
	// Duration 闪烁持续时间（秒）
	Duration float64

	// Elapsed 已经过的时间（秒）
	Elapsed float64

	// Intensity 闪烁强度（0.0 - 1.0）
	// 1.0 = 完全白色，0.0 = 无效果
	Intensity float64

	// IsActive 是否激活（用于临时禁用效果）
	IsActive bool
}

// HitSparkComponent 受击火花（对象池管理的独立精灵）
type HitSparkComponent struct {
	InUse    bool
	Duration float64
	Elapsed  float64
}
