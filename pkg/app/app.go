// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来：加载配置、创建音频与资源管理器、
// 决定起始关卡并驱动场景管理器。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/game"
	"github.com/gonewx/wayfarer/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// audioSampleRate 音频采样率
const audioSampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 指定要加载的关卡（如 "2"），为空则从存档加载或使用第一关
	Level string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	gameState                *game.GameState
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := config.LoadGameConfig()
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	log.Printf("[Config] Loaded %d characters, %d levels",
		len(gameConfig.Characters.UnitIDs()), len(gameConfig.Levels.Levels))

	audioContext := audio.NewContext(audioSampleRate)
	resourceManager := game.NewResourceManager(audioContext)

	gameState := game.GetGameState()
	audioManager := game.NewAudioManager(resourceManager, gameState.GetSettingsManager())
	gameState.SetAudioManager(audioManager)
	log.Printf("[App] AudioManager initialized")
	TrackLastCharacter(gameState.Registry(), gameState.GetSaveManager())

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(scenes.NewLevelFactory(scenes.Deps{
		Config:    gameConfig,
		Resources: resourceManager,
		Requester: sceneManager,
		GameState: gameState,
	}))

	levelToLoad := StartLevel(cfg.Level, gameState.GetSaveManager(), gameConfig.Levels)
	log.Printf("[App] Starting level: %s", levelToLoad)
	if err := sceneManager.LoadLevel(levelToLoad); err != nil {
		return nil, err
	}

	if sm := gameState.GetSettingsManager(); sm != nil && sm.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		gameState:    gameState,
		verbose:      cfg.Verbose,
	}, nil
}

// StartLevel 决定起始关卡：命令行参数 > 存档最高关卡 > 第一关
// 存档中的关卡已不存在时回退到第一关
func StartLevel(requested string, save *game.SaveManager, levels *config.LevelsConfig) string {
	if requested != "" {
		return requested
	}
	if save != nil {
		if err := save.Load(); err != nil {
			log.Printf("[App] Warning: failed to load progress: %v", err)
		} else if highest := save.GetHighestLevel(); highest != "" {
			if _, ok := levels.Get(highest); ok {
				log.Printf("[App] Loading from save: highest level = %s", highest)
				return highest
			}
			log.Printf("[App] Saved level %s no longer exists", highest)
		}
	}
	first := levels.First()
	if first == nil {
		return ""
	}
	log.Printf("[App] No save found, starting new game at level %s", first.ID)
	return first.ID
}

// TrackLastCharacter 操控角色变化时同步写入存档数据（落盘仍由通关或退出时的 Save 完成）
func TrackLastCharacter(reg *game.Registry, save *game.SaveManager) {
	if reg == nil || save == nil {
		return
	}
	reg.OnChange(game.RegistryKeyActiveCharacter, func(_ string, _, value interface{}) {
		if unit, ok := value.(string); ok && unit != "" {
			save.SetLastCharacter(unit)
		}
	})
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 需要 main 中调用 ebiten.SetWindowClosingHandled(true)
	if ebiten.IsWindowBeingClosed() {
		if !a.SaveOnExit() {
			log.Printf("[App] Warning: progress was not saved")
		}
		return ebiten.Termination
	}

	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(config.FixedDeltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}
	if sm := a.gameState.GetSettingsManager(); sm != nil {
		sm.SetFullscreen(fullscreen)
		if err := sm.Save(); err != nil {
			log.Printf("[App] Warning: failed to save settings: %v", err)
		}
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右两边填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// SaveOnExit 窗口关闭时保存当前场景的进度
func (a *App) SaveOnExit() bool {
	if s, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		return s.SaveOnExit()
	}
	return true
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
