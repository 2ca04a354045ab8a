package components

// HealthComponent 存储实体的生命值信息
// 不变量：每次修改后 0 <= Current <= Max
type HealthComponent struct {
	Current int // 当前生命值
	Max     int // 最大生命值
}

// NewHealth 创建满血的生命值组件
func NewHealth(max int) *HealthComponent {
	if max < 0 {
		max = 0
	}
	return &HealthComponent{Current: max, Max: max}
}

// Damage 扣除生命值，结果截断到 [0, Max]
// 已死亡时忽略，返回实际扣除的数值
func (h *HealthComponent) Damage(amount int) int {
	if h.IsDead() || amount <= 0 {
		return 0
	}
	before := h.Current
	h.Current -= amount
	h.clamp()
	return before - h.Current
}

// IsDead 生命值归零即死亡
func (h *HealthComponent) IsDead() bool {
	return h.Current <= 0
}

// Ratio 返回当前生命值比例 [0, 1]
func (h *HealthComponent) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

func (h *HealthComponent) clamp() {
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
}
