package config

// 窗口与帧率
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 960
	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 540
	// FixedDeltaTime 固定时间步长（Ebitengine 默认 60 TPS）
	FixedDeltaTime = 1.0 / 60.0
)

// 狩猎距离默认值（像素）
const (
	DefaultMeleeRange  = 50.0
	DefaultRangedRange = 600.0
	DefaultHuntRange   = 3000.0
)

// 角色默认值
const (
	DefaultAttackTime     = 0.35 // 攻击动作持续时间（秒）
	DefaultHurtTime       = 0.3  // 受击硬直时间（秒）
	DefaultBufferZone     = 80.0 // 跟随伙伴的缓冲距离（像素）
	DefaultInteractRange  = 70.0 // NPC 交互距离（像素）
	DefaultAttackCooldown = 1.0  // 敌人近战冷却（秒）
	DefaultFrameRate      = 10.0 // 动画默认帧率
	DroneHoverOffsetY     = 70.0 // 无人机悬浮在当前角色上方的高度
)

// 战斗与特效
const (
	MeleeReach         = 40.0 // 近战判定框宽度（角色正前方）
	ProjectileLifetime = 2.0  // 子弹最长存在时间（秒）
	ProjectileSize     = 8.0
	CorpseLifetime     = 1.5  // 敌人死亡后尸体保留时间（秒）
	HitFlashDuration   = 0.12 // 受击闪白持续时间（秒）
	HitSparkDuration   = 0.2  // 受击火花显示时间（秒）
	HitSparkPoolSize   = 16   // 受击火花对象池容量
)

// 界面
const (
	// HintDuration 提示文字显示时长（秒），到时自动隐藏
	HintDuration = 4.0
	// InteractHintText 靠近 NPC 时的提示
	InteractHintText = "Press E to talk"
)

// 数据文件路径
const (
	CharactersPath  = "data/characters.yaml"
	LevelsPath      = "data/levels.yaml"
	KeyBindingsPath = "data/keybindings.yaml"
	DialoguePath    = "data/dialogue.yaml"
)
