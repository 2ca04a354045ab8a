package components

// WeaponComponent 远程武器（弹匣 + 换弹计时）
type WeaponComponent struct {
	MagazineSize    int
	Rounds          int
	ReloadTime      float64 // 换弹耗时（秒）
	ReloadLeft      float64
	Reloading       bool
	FireCooldown    float64 // 两次射击最小间隔（秒）
	CooldownLeft    float64
	ProjectileSpeed float64
	Damage          int
}

// CanFire 弹匣有子弹、未在换弹且冷却结束
func (w *WeaponComponent) CanFire() bool {
	return !w.Reloading && w.Rounds > 0 && w.CooldownLeft <= 0
}
