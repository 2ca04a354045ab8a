package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ProgressData 关卡进度存档
type ProgressData struct {
	HighestLevel    string   `yaml:"highestLevel"`    // 已到达的最远关卡ID
	CompletedLevels []string `yaml:"completedLevels"` // 已通关的关卡ID（按完成顺序）
	LastCharacter   string   `yaml:"lastCharacter"`   // 上次退出时操控的角色
	EnemiesDefeated int      `yaml:"enemiesDefeated"` // 累计击败敌人数
}

// SaveManager 进度管理器
//
// 数据通过 gdata 以 YAML 格式持久化；gdataManager 为 nil 时只保存在内存中。
type SaveManager struct {
	gdataManager *gdata.Manager
	data         *ProgressData
}

const (
	progressObject   = "progress"
	progressProperty = "default"
)

// NewSaveManager 创建进度管理器并加载已有存档
func NewSaveManager(gdataManager *gdata.Manager) (*SaveManager, error) {
	sm := &SaveManager{
		gdataManager: gdataManager,
		data:         &ProgressData{},
	}
	if err := sm.Load(); err != nil {
		return sm, fmt.Errorf("failed to load progress: %w", err)
	}
	return sm, nil
}

// Load 从 gdata 读取存档，存档不存在时保持空进度
func (sm *SaveManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		return nil
	}
	raw, err := sm.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return err
	}
	var data ProgressData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse progress data: %w", err)
	}
	sm.data = &data
	return nil
}

// Save 写入存档，降级模式下直接返回 nil
func (sm *SaveManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	raw, err := yaml.Marshal(sm.data)
	if err != nil {
		return fmt.Errorf("failed to marshal progress data: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(progressObject, progressProperty, raw); err != nil {
		return fmt.Errorf("failed to write progress data: %w", err)
	}
	log.Printf("[SaveManager] Progress saved (highest level: %s)", sm.data.HighestLevel)
	return nil
}

// Data 返回当前进度（只读使用）
func (sm *SaveManager) Data() ProgressData {
	return *sm.data
}

// GetHighestLevel 返回已到达的最远关卡
func (sm *SaveManager) GetHighestLevel() string {
	return sm.data.HighestLevel
}

// IsLevelCompleted 检查关卡是否已通关
func (sm *SaveManager) IsLevelCompleted(levelID string) bool {
	for _, id := range sm.data.CompletedLevels {
		if id == levelID {
			return true
		}
	}
	return false
}

// CompleteLevel 记录通关并推进最远关卡
// nextLevel 为空表示已是最后一关，最远关卡停留在当前关
// 重玩早期关卡（下一关已通关）不会让最远关卡倒退
func (sm *SaveManager) CompleteLevel(levelID, nextLevel string) {
	if !sm.IsLevelCompleted(levelID) {
		sm.data.CompletedLevels = append(sm.data.CompletedLevels, levelID)
	}
	if nextLevel != "" && !sm.IsLevelCompleted(nextLevel) {
		sm.data.HighestLevel = nextLevel
	} else if sm.data.HighestLevel == "" {
		sm.data.HighestLevel = levelID
	}
}

// SetLastCharacter 记录当前操控角色
func (sm *SaveManager) SetLastCharacter(unitID string) {
	sm.data.LastCharacter = unitID
}

// AddEnemiesDefeated 累加击败敌人数
func (sm *SaveManager) AddEnemiesDefeated(n int) {
	if n > 0 {
		sm.data.EnemiesDefeated += n
	}
}
