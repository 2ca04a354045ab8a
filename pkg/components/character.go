package components

import (
	"fmt"
	"strings"
)

// CharacterKind 角色种类
// 原先的 Player/Enemy/NPC 等子类统一为同一种实体，由种类标签区分行为
type CharacterKind int

const (
	// KindPlayer 可操控角色（当前未激活时执行跟随逻辑）
	KindPlayer CharacterKind = iota
	// KindEnemy 敌人，执行狩猎逻辑
	KindEnemy
	// KindNPC 可对话的非玩家角色
	KindNPC
	// KindDrone 无人机伙伴，悬浮跟随当前角色
	KindDrone
)

// String 返回配置文件中使用的种类名称
func (k CharacterKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindNPC:
		return "npc"
	case KindDrone:
		return "drone"
	default:
		return fmt.Sprintf("CharacterKind(%d)", int(k))
	}
}

// ParseCharacterKind 解析配置中的种类字符串（不区分大小写）
// 未知字符串返回错误
func ParseCharacterKind(s string) (CharacterKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "player":
		return KindPlayer, nil
	case "enemy":
		return KindEnemy, nil
	case "npc":
		return KindNPC, nil
	case "drone":
		return KindDrone, nil
	}
	return 0, fmt.Errorf("unsupported character kind %q", s)
}

// Facing 朝向
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

// Sign 返回朝向对应的水平方向符号（右 +1，左 -1）
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

// CharacterComponent 角色通用数据
type CharacterComponent struct {
	Kind        CharacterKind // 角色种类
	UnitID      string        // 角色配置 ID（如 "ranger"）
	Name        string        // 显示名称
	Facing      Facing        // 当前朝向
	Grounded    bool          // 是否站在地面/平台上（由物理系统每帧更新）
	Speed       float64       // 行走速度（像素/秒）
	RunSpeed    float64       // 奔跑速度（像素/秒）
	JumpSpeed   float64       // 起跳初速度（像素/秒，向上为正值）
	MeleeDamage int           // 近战伤害（无武器时攻击使用）
}
