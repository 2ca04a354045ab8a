package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于创建指定ID的关卡场景，避免 game 包依赖 scenes 包
type SceneFactory func(levelID string) (Scene, error)

// SceneManager manages which scene is active.
// Only one scene's Update and Draw are called per frame.
type SceneManager struct {
	currentScene   Scene
	currentLevelID string
	sceneFactory   SceneFactory
	pendingLevelID string // 下一帧开始前切换的关卡（空表示无）
}

// NewSceneManager creates a SceneManager with no active scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene immediately.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentLevelID 返回当前关卡ID
func (sm *SceneManager) CurrentLevelID() string {
	return sm.currentLevelID
}

// LoadLevel 立即创建并切换到指定关卡
func (sm *SceneManager) LoadLevel(levelID string) error {
	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory is not set")
	}

	log.Printf("[SceneManager] Loading level: %s", levelID)
	scene, err := sm.sceneFactory(levelID)
	if err != nil {
		return fmt.Errorf("failed to create level %s: %w", levelID, err)
	}

	sm.currentScene = scene
	sm.currentLevelID = levelID
	return nil
}

// RequestLevel 请求在下一次 Update 开始时切换关卡
// 场景内部（例如到达出口）调用此方法，避免在自身 Update 过程中被替换
func (sm *SceneManager) RequestLevel(levelID string) {
	sm.pendingLevelID = levelID
}

// RestartLevel 请求重新加载当前关卡
func (sm *SceneManager) RestartLevel() {
	sm.RequestLevel(sm.currentLevelID)
}

// Update 先处理挂起的关卡切换，再更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.pendingLevelID != "" {
		levelID := sm.pendingLevelID
		sm.pendingLevelID = ""
		if err := sm.LoadLevel(levelID); err != nil {
			log.Printf("[SceneManager] Error: %v", err)
		}
	}

	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the active scene.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
