package components

import "github.com/gonewx/wayfarer/pkg/ecs"

// Faction 阵营，子弹与近战只伤害敌对阵营
type Faction int

const (
	FactionParty Faction = iota
	FactionHostile
)

// FactionOf 根据角色种类确定阵营
func FactionOf(kind CharacterKind) Faction {
	if kind == KindEnemy {
		return FactionHostile
	}
	return FactionParty
}

// ProjectileComponent 子弹数据
type ProjectileComponent struct {
	Owner   ecs.EntityID
	Faction Faction
	Damage  int
}
