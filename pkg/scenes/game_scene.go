package scenes

import (
	"fmt"
	"log"

	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/gonewx/wayfarer/pkg/entities"
	"github.com/gonewx/wayfarer/pkg/game"
	"github.com/gonewx/wayfarer/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// PartySpacing 队伍成员出生时的水平间隔（后续成员排在操控角色身后）
	PartySpacing = 40.0

	// 每隔多少帧输出一次场景统计日志
	statsLogInterval = 600
)

// Deps 创建关卡场景所需的外部依赖
type Deps struct {
	Config    *config.GameConfig
	Resources *game.ResourceManager  // 可为 nil（测试环境，全部使用占位矩形）
	Requester systems.LevelRequester // 关卡切换请求（通常是 SceneManager）
	GameState *game.GameState
	Keys      systems.KeySource // 为 nil 时读取真实键盘
}

// GameScene 单个关卡的运行场景
//
// 场景拥有自己的实体管理器和物理空间，切换关卡时整体丢弃重建。
type GameScene struct {
	level         *config.LevelConfig
	gameState     *game.GameState
	entityManager *ecs.EntityManager

	inputSystem       *systems.InputSystem
	playerStateSystem *systems.PlayerStateSystem
	followSystem      *systems.FollowSystem
	enemyAISystem     *systems.EnemyAISystem
	weaponSystem      *systems.WeaponSystem
	physicsSystem     *systems.PhysicsSystem
	combatSystem      *systems.CombatSystem
	projectileSystem  *systems.ProjectileSystem
	dialogueSystem    *systems.DialogueSystem
	hintSystem        *systems.HintSystem
	animationSystem   *systems.AnimationSystem
	flashEffectSystem *systems.FlashEffectSystem
	lifetimeSystem    *systems.LifetimeSystem
	hitSparks         *systems.HitFlashPool
	levelSystem       *systems.LevelSystem
	cameraSystem      *systems.CameraSystem
	renderSystem      *systems.RenderSystem

	frameCount int
}

// NewLevelFactory 返回供 SceneManager 使用的关卡工厂
func NewLevelFactory(deps Deps) game.SceneFactory {
	return func(levelID string) (game.Scene, error) {
		scene, err := NewGameScene(deps, levelID)
		if err != nil {
			return nil, err
		}
		return scene, nil
	}
}

// NewGameScene 按关卡配置搭建实体与系统
func NewGameScene(deps Deps, levelID string) (*GameScene, error) {
	if deps.Config == nil || deps.Config.Levels == nil || deps.Config.Characters == nil {
		return nil, fmt.Errorf("game config is not loaded")
	}
	lvl, ok := deps.Config.Levels.Get(levelID)
	if !ok {
		return nil, fmt.Errorf("unknown level %q", levelID)
	}
	background, err := config.ParseHexColor(lvl.Background)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", lvl.ID, err)
	}

	gs := deps.GameState
	if gs == nil {
		gs = game.GetGameState()
	}
	keys := deps.Keys
	if keys == nil {
		keys = systems.EbitenKeySource{}
	}

	// 存活人数只属于上一关，由新关卡的 LevelSystem 重新写入
	gs.Registry().Delete(game.RegistryKeyPartyAlive)

	em := ecs.NewEntityManager()
	s := &GameScene{
		level:         lvl,
		gameState:     gs,
		entityManager: em,
	}

	// 物理系统最先创建：它注册的移除回调负责回收刚体
	s.physicsSystem = systems.NewPhysicsSystem(em, lvl.Gravity)
	s.physicsSystem.AddBounds(lvl.Width, lvl.Height)

	s.playerStateSystem = systems.NewPlayerStateSystem(em, gs)
	s.weaponSystem = systems.NewWeaponSystem(em, gs)
	s.hitSparks = systems.NewHitFlashPool(em, config.HitSparkPoolSize)
	s.combatSystem = systems.NewCombatSystem(em, gs, s.playerStateSystem, s.weaponSystem, s.hitSparks)
	s.inputSystem = systems.NewInputSystem(em, gs, keys, deps.Config.KeyBindings, s.playerStateSystem)
	s.followSystem = systems.NewFollowSystem(em)
	s.enemyAISystem = systems.NewEnemyAISystem(em, s.playerStateSystem, s.weaponSystem)
	s.projectileSystem = systems.NewProjectileSystem(em, lvl.Width)
	s.dialogueSystem = systems.NewDialogueSystem(em, gs, s.inputSystem)
	s.hintSystem = systems.NewHintSystem(em)
	s.animationSystem = systems.NewAnimationSystem(em)
	s.flashEffectSystem = systems.NewFlashEffectSystem(em)
	s.lifetimeSystem = systems.NewLifetimeSystem(em)

	var sprites entities.SpriteLoader
	if deps.Resources != nil {
		sprites = deps.Resources
	}
	if err := s.populate(deps.Config, sprites); err != nil {
		return nil, err
	}

	s.levelSystem = systems.NewLevelSystem(em, gs, deps.Requester, s.combatSystem, lvl)
	s.cameraSystem = systems.NewCameraSystem(em,
		float64(config.GameWindowWidth), float64(config.GameWindowHeight), lvl.Width, lvl.Height)
	s.cameraSystem.Update(0)
	s.renderSystem = systems.NewRenderSystem(em, background, s.hintSystem, s.dialogueSystem)

	if am := gs.GetAudioManager(); am != nil {
		am.PlayMusic(game.MusicLevel)
	}

	log.Printf("[GameScene] Level %s (%s) ready: %d entities", lvl.ID, lvl.Name, em.EntityCount())
	return s, nil
}

// populate 创建平台、出口、队伍、敌人与 NPC
func (s *GameScene) populate(cfg *config.GameConfig, sprites entities.SpriteLoader) error {
	em := s.entityManager
	space := s.physicsSystem.Space()
	lvl := s.level

	for _, r := range lvl.Platforms {
		entities.NewPlatform(em, space, r)
	}
	entities.NewExitZone(em, lvl.Exit)

	var first ecs.EntityID
	for slot, unit := range lvl.Party {
		charCfg, _ := cfg.Characters.Get(unit)
		x := lvl.Spawn.X - float64(slot)*PartySpacing
		id, err := entities.NewPlayer(em, space, sprites, charCfg, unit, slot, x, lvl.Spawn.Y)
		if err != nil {
			return fmt.Errorf("level %s party: %w", lvl.ID, err)
		}
		if slot == 0 {
			first = id
		}
	}
	if first == 0 {
		return fmt.Errorf("level %s has no party", lvl.ID)
	}
	systems.SetActivePlayer(em, s.gameState.Registry(), first)

	if lvl.Drone != "" {
		charCfg, _ := cfg.Characters.Get(lvl.Drone)
		if _, err := entities.NewDrone(em, space, sprites, charCfg, lvl.Drone,
			lvl.Spawn.X, lvl.Spawn.Y-config.DroneHoverOffsetY); err != nil {
			return fmt.Errorf("level %s drone: %w", lvl.ID, err)
		}
	}

	for _, sp := range lvl.Enemies {
		charCfg, _ := cfg.Characters.Get(sp.Unit)
		if _, err := entities.NewEnemy(em, space, sprites, charCfg, sp.Unit, sp.X, sp.Y); err != nil {
			return fmt.Errorf("level %s enemy: %w", lvl.ID, err)
		}
	}

	for _, sp := range lvl.NPCs {
		charCfg, _ := cfg.Characters.Get(sp.Unit)
		lines := cfg.Dialogue.LinesFor(sp.Unit)
		if _, err := entities.NewNPC(em, space, sprites, charCfg, sp.Unit, lines, sp.X, sp.Y); err != nil {
			return fmt.Errorf("level %s npc: %w", lvl.ID, err)
		}
	}

	s.gameState.Registry().Set(game.RegistryKeyLevel, lvl.ID)

	if lvl.Hint != "" && s.hintsEnabled() {
		entities.NewHint(em, lvl.Hint, config.HintDuration)
	}
	return nil
}

func (s *GameScene) hintsEnabled() bool {
	sm := s.gameState.GetSettingsManager()
	if sm == nil {
		return true
	}
	return sm.GetSettings().ShowHints
}

// Update 按固定顺序推进所有系统
func (s *GameScene) Update(deltaTime float64) {
	s.frameCount++

	s.inputSystem.Update(deltaTime)
	s.playerStateSystem.Update(deltaTime)
	s.followSystem.Update(deltaTime)
	s.enemyAISystem.Update(deltaTime)
	s.weaponSystem.Update(deltaTime)
	s.physicsSystem.Update(deltaTime)
	s.combatSystem.Update(deltaTime)
	s.projectileSystem.Update(deltaTime)
	s.dialogueSystem.Update(deltaTime)
	s.hintSystem.Update(deltaTime)
	s.animationSystem.Update(deltaTime)
	s.flashEffectSystem.Update(deltaTime)
	s.lifetimeSystem.Update(deltaTime)
	s.hitSparks.Update(deltaTime)
	s.levelSystem.Update(deltaTime)
	s.cameraSystem.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()

	if s.frameCount%statsLogInterval == 0 {
		log.Printf("[GameScene] frame %d: %d entities, %d party alive, %d/%d sparks",
			s.frameCount, s.entityManager.EntityCount(), systems.LivingPartyCount(s.entityManager),
			s.hitSparks.InUse(), s.hitSparks.Size())
	}
}

// Draw 以镜头偏移绘制整个场景
func (s *GameScene) Draw(screen *ebiten.Image) {
	camX, camY := s.cameraSystem.Offset()
	s.renderSystem.Draw(screen, camX, camY)
}

// SaveOnExit 关闭游戏时保存进度（只记录当前操控角色，关卡进度在通关时已写入）
func (s *GameScene) SaveOnExit() bool {
	save := s.gameState.GetSaveManager()
	if save == nil {
		return false
	}
	if unit := s.gameState.Registry().GetString(game.RegistryKeyActiveCharacter); unit != "" {
		save.SetLastCharacter(unit)
	}
	if err := save.Save(); err != nil {
		log.Printf("[GameScene] Warning: failed to save progress: %v", err)
		return false
	}
	return true
}

// Level 返回当前关卡配置
func (s *GameScene) Level() *config.LevelConfig {
	return s.level
}

// EntityManager 返回场景的实体管理器
func (s *GameScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}
