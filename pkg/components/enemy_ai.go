package components

import "github.com/gonewx/wayfarer/pkg/ecs"

// AIMode 敌人狩猎模式
type AIMode int

const (
	// AIModeIdle 范围内无目标，原地待命
	AIModeIdle AIMode = iota
	// AIModeChase 追击最近目标
	AIModeChase
	// AIModeMelee 近战攻击
	AIModeMelee
	// AIModeRanged 远程射击
	AIModeRanged
)

func (m AIMode) String() string {
	switch m {
	case AIModeChase:
		return "chase"
	case AIModeMelee:
		return "melee"
	case AIModeRanged:
		return "ranged"
	default:
		return "idle"
	}
}

// EnemyAIComponent 敌人狩猎行为数据
// 距离区间：<= MeleeRange 近战，<= RangedRange 射击，<= HuntRange 追击
type EnemyAIComponent struct {
	Mode        AIMode
	MeleeRange  float64
	RangedRange float64
	HuntRange   float64

	Target         ecs.EntityID // 当前目标，0 表示无
	TargetDistance float64

	AttackCooldown float64 // 近战冷却（秒）
	CooldownLeft   float64
}
