package systems

import (
	"log"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/gonewx/wayfarer/pkg/entities"
	"github.com/gonewx/wayfarer/pkg/game"
)

// finalLevelHint 最后一关通关后显示
const finalLevelHint = "Journey complete!"

// LevelRequester 关卡切换请求（由 SceneManager 实现，在下一帧开始时执行）
type LevelRequester interface {
	RequestLevel(levelID string)
	RestartLevel()
}

// Damager 结算伤害（由 CombatSystem 实现）
type Damager interface {
	ApplyDamage(target ecs.EntityID, amount int) int
}

// LevelSystem 关卡流程
//
// 掉出关卡底部的角色直接死亡；
// 操控角色进入出口区域时结算进度并请求下一关；
// 队伍全灭后等待尸体停留时间，然后请求重开本关。
type LevelSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	requester     LevelRequester
	damager       Damager
	level         *config.LevelConfig

	finished        bool // 已通关或已请求重开
	wipeTimer       float64
	defeatedAtStart int // 进入关卡时注册表中的击败数，结算时只累计本关的增量
}

// NewLevelSystem 创建关卡系统
// damager 为 nil 时不处理掉落死亡
func NewLevelSystem(em *ecs.EntityManager, gs *game.GameState, requester LevelRequester, damager Damager, level *config.LevelConfig) *LevelSystem {
	s := &LevelSystem{
		entityManager: em,
		gameState:     gs,
		requester:     requester,
		damager:       damager,
		level:         level,
	}
	if reg := registryOf(gs); reg != nil {
		s.defeatedAtStart = reg.GetInt(game.RegistryKeyEnemiesDefeated)
	}
	return s
}

// Update 检查掉落、全灭与出口
func (s *LevelSystem) Update(deltaTime float64) {
	if s.finished {
		return
	}
	s.killFallen()

	alive := LivingPartyCount(s.entityManager)
	if reg := registryOf(s.gameState); reg != nil {
		reg.Set(game.RegistryKeyPartyAlive, alive)
	}

	if alive == 0 {
		s.wipeTimer += deltaTime
		if s.wipeTimer >= config.CorpseLifetime {
			s.finished = true
			log.Printf("[LevelSystem] Party wiped on level %s, restarting", s.level.ID)
			if s.requester != nil {
				s.requester.RestartLevel()
			}
		}
		return
	}
	s.wipeTimer = 0

	player, ok := ActivePlayer(s.entityManager)
	if !ok || !s.atExit(player) {
		return
	}
	s.complete(player)
}

// killFallen 位置低于关卡底部的存活角色受到等同最大生命的伤害
// 走正常的死亡流程：切换操控角色、尸体移除、全灭重开
func (s *LevelSystem) killFallen() {
	if s.damager == nil || s.level.Height <= 0 {
		return
	}
	ids := ecs.GetEntitiesWith3[*components.CharacterComponent, *components.HealthComponent, *components.PositionComponent](s.entityManager)
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		if pos.Y <= s.level.Height || health.IsDead() {
			continue
		}
		log.Printf("[LevelSystem] Entity %d fell out of level %s", id, s.level.ID)
		s.damager.ApplyDamage(id, health.Max)
	}
}

// atExit 角色碰撞盒与任一出口区域重叠
func (s *LevelSystem) atExit(player ecs.EntityID) bool {
	pos, ok1 := ecs.GetComponent[*components.PositionComponent](s.entityManager, player)
	hb, ok2 := ecs.GetComponent[*components.HitboxComponent](s.entityManager, player)
	if !ok1 || !ok2 {
		return false
	}
	l, t, r, b := hb.Bounds(pos.X, pos.Y)

	for _, id := range ecs.GetEntitiesWith2[*components.ExitZoneComponent, *components.PositionComponent](s.entityManager) {
		zone, _ := ecs.GetComponent[*components.ExitZoneComponent](s.entityManager, id)
		zpos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		zl, zt := zpos.X-zone.Width/2, zpos.Y-zone.Height/2
		zr, zb := zl+zone.Width, zt+zone.Height
		if l < zr && r > zl && t < zb && b > zt {
			return true
		}
	}
	return false
}

func (s *LevelSystem) complete(player ecs.EntityID) {
	s.finished = true
	log.Printf("[LevelSystem] Level %s complete", s.level.ID)
	playSound(s.gameState, game.SoundLevelEnd)

	if s.gameState != nil {
		if sm := s.gameState.GetSaveManager(); sm != nil {
			sm.CompleteLevel(s.level.ID, s.level.Next)
			if ch, ok := ecs.GetComponent[*components.CharacterComponent](s.entityManager, player); ok {
				sm.SetLastCharacter(ch.UnitID)
			}
			sm.AddEnemiesDefeated(s.gameState.Registry().GetInt(game.RegistryKeyEnemiesDefeated) - s.defeatedAtStart)
			if err := sm.Save(); err != nil {
				log.Printf("[LevelSystem] Failed to save progress: %v", err)
			}
		}
	}

	if s.level.Next == "" {
		entities.NewHint(s.entityManager, finalLevelHint, config.HintDuration)
		return
	}
	if s.requester != nil {
		s.requester.RequestLevel(s.level.Next)
	}
}
