package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储目录名
const AppName = "wayfarer"

// GameState 存储全局游戏状态
// 这是一个单例，用于管理跨场景和跨系统的全局状态数据
type GameState struct {
	registry        *Registry
	gdataManager    *gdata.Manager   // 可为 nil（降级模式，不持久化）
	settingsManager *SettingsManager // 全局设置
	saveManager     *SaveManager     // 关卡进度
	audioManager    *AudioManager    // 由 app 在创建音频上下文后注入
}

// 全局单例实例（这是架构规范允许的唯一全局变量）
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，确保整个游戏生命周期只有一个实例
func GetGameState() *GameState {
	if globalGameState == nil {
		manager, err := gdata.Open(gdata.Config{AppName: AppName})
		if err != nil {
			log.Printf("[GameState] Warning: gdata unavailable, progress will not persist: %v", err)
			manager = nil
		}
		globalGameState = NewGameState(manager)
	}
	return globalGameState
}

// NewGameState 使用给定的存储管理器构建状态（测试可传入 nil）
func NewGameState(manager *gdata.Manager) *GameState {
	gs := &GameState{
		registry:     NewRegistry(),
		gdataManager: manager,
	}

	settings, err := NewSettingsManager(manager)
	if err != nil {
		log.Printf("[GameState] Warning: settings manager init failed: %v", err)
	}
	gs.settingsManager = settings

	save, err := NewSaveManager(manager)
	if err != nil {
		log.Printf("[GameState] Warning: save manager init failed: %v", err)
	}
	gs.saveManager = save

	return gs
}

// resetGlobalGameState 重置单例（仅测试使用）
func resetGlobalGameState() {
	globalGameState = nil
}

// Registry 返回全局注册表
func (gs *GameState) Registry() *Registry {
	return gs.registry
}

// GetGdataManager 返回 gdata 管理器，可能为 nil
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// GetSaveManager 返回进度管理器
func (gs *GameState) GetSaveManager() *SaveManager {
	return gs.saveManager
}

// SetAudioManager 注入音频管理器
func (gs *GameState) SetAudioManager(am *AudioManager) {
	gs.audioManager = am
}

// GetAudioManager 返回音频管理器，未初始化时为 nil
func (gs *GameState) GetAudioManager() *AudioManager {
	return gs.audioManager
}

// PlaySound 播放音效的便捷方法，音频未初始化时静默忽略
func (gs *GameState) PlaySound(soundID string) {
	if gs.audioManager != nil {
		gs.audioManager.PlaySound(soundID)
	}
}
