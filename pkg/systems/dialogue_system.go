package systems

import (
	"log"
	"math"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/gonewx/wayfarer/pkg/entities"
	"github.com/gonewx/wayfarer/pkg/game"
)

// IntentSource 提供本帧输入意图，由 InputSystem 实现
type IntentSource interface {
	Intent() Intent
}

// DialogueSystem NPC 对话
//
// 操控角色进入 NPC 交互范围后显示交互提示；按交互键打开对话，
// 再次按下显示下一句，最后一句之后关闭。离开范围时对话自动关闭。
type DialogueSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	input         IntentSource
	promptHint    ecs.EntityID // 交互提示实体，0 表示未显示
}

// NewDialogueSystem 创建对话系统
func NewDialogueSystem(em *ecs.EntityManager, gs *game.GameState, input IntentSource) *DialogueSystem {
	return &DialogueSystem{
		entityManager: em,
		gameState:     gs,
		input:         input,
	}
}

// Update 更新交互范围、提示与对话进度
func (s *DialogueSystem) Update(deltaTime float64) {
	npcs := ecs.GetEntitiesWith2[*components.DialogueComponent, *components.PositionComponent](s.entityManager)

	nearest := ecs.EntityID(0)
	if player, ok := ActivePlayer(s.entityManager); ok {
		nearest = s.nearestInRange(player, npcs)
	}

	for _, id := range npcs {
		dlg, _ := ecs.GetComponent[*components.DialogueComponent](s.entityManager, id)
		dlg.InRange = id == nearest
		if !dlg.InRange && dlg.Open {
			s.close(id, dlg)
		}
	}

	if nearest == 0 {
		s.hidePrompt()
		return
	}

	dlg, _ := ecs.GetComponent[*components.DialogueComponent](s.entityManager, nearest)
	if s.input != nil && s.input.Intent().Interact {
		s.Interact(nearest)
	}
	if dlg.Open {
		s.hidePrompt()
	} else {
		s.showPrompt()
	}
}

// Interact 打开对话或前进到下一句，返回对话是否仍处于打开状态
func (s *DialogueSystem) Interact(npc ecs.EntityID) bool {
	dlg, ok := ecs.GetComponent[*components.DialogueComponent](s.entityManager, npc)
	if !ok || len(dlg.Lines) == 0 {
		return false
	}

	if !dlg.Open {
		dlg.Open = true
		dlg.Index = 0
		log.Printf("[DialogueSystem] Dialogue opened with entity %d", npc)
	} else {
		dlg.Index++
		if dlg.Index >= len(dlg.Lines) {
			s.close(npc, dlg)
			return false
		}
	}
	playSound(s.gameState, game.SoundDialogue)
	return true
}

// OpenDialogue 返回当前打开的对话（NPC 实体与当前行），没有时 ok 为 false
func (s *DialogueSystem) OpenDialogue() (npc ecs.EntityID, line string, ok bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.DialogueComponent](s.entityManager) {
		dlg, _ := ecs.GetComponent[*components.DialogueComponent](s.entityManager, id)
		if dlg.Open {
			return id, dlg.CurrentLine(), true
		}
	}
	return 0, "", false
}

func (s *DialogueSystem) nearestInRange(player ecs.EntityID, npcs []ecs.EntityID) ecs.EntityID {
	ppos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, player)
	if !ok {
		return 0
	}
	best := ecs.EntityID(0)
	bestDist := math.Inf(1)
	for _, id := range npcs {
		if !isAlive(s.entityManager, id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		dlg, _ := ecs.GetComponent[*components.DialogueComponent](s.entityManager, id)
		d := math.Hypot(pos.X-ppos.X, pos.Y-ppos.Y)
		if d <= dlg.InteractRange && d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}

func (s *DialogueSystem) close(id ecs.EntityID, dlg *components.DialogueComponent) {
	dlg.Open = false
	dlg.Index = 0
	log.Printf("[DialogueSystem] Dialogue closed with entity %d", id)
}

// showPrompt 显示交互提示；在范围内时每帧续期，离开后由 hidePrompt 移除
func (s *DialogueSystem) showPrompt() {
	if s.promptHint != 0 && s.entityManager.Exists(s.promptHint) && !s.entityManager.IsPendingDestroy(s.promptHint) {
		if hint, ok := ecs.GetComponent[*components.HintComponent](s.entityManager, s.promptHint); ok {
			hint.Remaining = config.HintDuration
			return
		}
	}
	s.promptHint = entities.NewHint(s.entityManager, config.InteractHintText, config.HintDuration)
}

func (s *DialogueSystem) hidePrompt() {
	if s.promptHint != 0 {
		s.entityManager.DestroyEntity(s.promptHint)
		s.promptHint = 0
	}
}
