package components

// PlayerControlComponent 标识可操控角色
// 同一时间只有一个角色 Active=true，接收键盘输入并作为镜头焦点
type PlayerControlComponent struct {
	Slot   int  // 队伍中的序号（切换顺序）
	Active bool // 是否为当前操控角色
}

// TrackableComponent 标记可被敌人狩猎的实体（玩家角色与 NPC）
type TrackableComponent struct{}
