package systems

import (
	"testing"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/gonewx/wayfarer/pkg/entities"
	"github.com/gonewx/wayfarer/pkg/game"
)

func newLevelWorld(t *testing.T, next string) (*testWorld, *fakeLevelRequester, *LevelSystem) {
	t.Helper()
	w := newTestWorld(t)
	level := &config.LevelConfig{ID: "1", Next: next, Width: 2000, Height: 540}
	entities.NewExitZone(w.em, config.Rect{X: 1800, Y: 250, Width: 100, Height: 100})
	requester := &fakeLevelRequester{}
	return w, requester, NewLevelSystem(w.em, w.gs, requester, w.combat, level)
}

func TestLevelCompleteAtExit(t *testing.T) {
	w := newTestWorld(t)
	w.gs.Registry().Set(game.RegistryKeyEnemiesDefeated, 5)

	level := &config.LevelConfig{ID: "1", Next: "2", Width: 2000}
	entities.NewExitZone(w.em, config.Rect{X: 1800, Y: 250, Width: 100, Height: 100})
	requester := &fakeLevelRequester{}
	levels := NewLevelSystem(w.em, w.gs, requester, w.combat, level)

	hero := w.spawnPlayer(t, "hero", 0, 500, 300)
	brute := w.spawn(t, "brute", 600, 300)
	w.kill(brute)

	levels.Update(1.0 / 60)
	if levels.finished || len(requester.requested) != 0 {
		t.Fatal("Level should not end away from the exit")
	}

	w.position(hero).X = 1790 // 碰撞盒右边缘进入出口
	levels.Update(1.0 / 60)
	levels.Update(1.0 / 60)

	if !levels.finished {
		t.Fatal("Level should be finished")
	}
	if len(requester.requested) != 1 || requester.requested[0] != "2" {
		t.Errorf("Requested levels = %v, want [2]", requester.requested)
	}

	progress := w.gs.GetSaveManager().Data()
	if !w.gs.GetSaveManager().IsLevelCompleted("1") || progress.HighestLevel != "2" {
		t.Errorf("Progress = %+v, want level 1 completed and highest 2", progress)
	}
	if progress.LastCharacter != "hero" {
		t.Errorf("LastCharacter = %q, want hero", progress.LastCharacter)
	}
	if progress.EnemiesDefeated != 1 {
		t.Errorf("EnemiesDefeated = %d, want only this level's 1", progress.EnemiesDefeated)
	}
}

func TestLevelCompleteFinalLevel(t *testing.T) {
	w, requester, levels := newLevelWorld(t, "")
	w.spawnPlayer(t, "hero", 0, 1850, 300)

	levels.Update(1.0 / 60)

	if !levels.finished || len(requester.requested) != 0 {
		t.Errorf("Final level: finished %v, requests %v", levels.finished, requester.requested)
	}
	found := false
	for _, text := range NewHintSystem(w.em).VisibleHints() {
		if text == finalLevelHint {
			found = true
		}
	}
	if !found {
		t.Error("Final level should show the completion hint")
	}
	if got := w.gs.GetSaveManager().GetHighestLevel(); got != "1" {
		t.Errorf("HighestLevel = %q, want 1", got)
	}
}

func TestLevelOnlyActivePlayerTriggersExit(t *testing.T) {
	w, requester, levels := newLevelWorld(t, "2")
	w.spawnPlayer(t, "hero", 0, 500, 300)
	w.spawnPlayer(t, "gunner", 1, 1850, 300)

	levels.Update(1.0 / 60)
	if levels.finished || len(requester.requested) != 0 {
		t.Error("A follower reaching the exit should not complete the level")
	}
}

func TestLevelRestartAfterPartyWipe(t *testing.T) {
	w, requester, levels := newLevelWorld(t, "2")
	hero := w.spawnPlayer(t, "hero", 0, 500, 300)
	gunner := w.spawnPlayer(t, "gunner", 1, 450, 300)

	levels.Update(1.0 / 60)
	if got := w.gs.Registry().GetInt(game.RegistryKeyPartyAlive); got != 2 {
		t.Errorf("partyAlive = %d, want 2", got)
	}

	w.kill(hero)
	levels.Update(1.0)
	if requester.restarts != 0 {
		t.Fatal("One survivor left: no restart")
	}

	w.kill(gunner)
	levels.Update(1.0)
	if requester.restarts != 0 {
		t.Fatal("Restart should wait for the corpse delay")
	}
	levels.Update(config.CorpseLifetime)
	levels.Update(config.CorpseLifetime)

	if requester.restarts != 1 {
		t.Errorf("restarts = %d, want exactly 1", requester.restarts)
	}
	if got := w.gs.Registry().GetInt(game.RegistryKeyPartyAlive); got != 0 {
		t.Errorf("partyAlive = %d, want 0", got)
	}
}

func TestLevelKillsFallenCharacters(t *testing.T) {
	w, requester, levels := newLevelWorld(t, "2")
	hero := w.spawnPlayer(t, "hero", 0, 500, 300)
	gunner := w.spawnPlayer(t, "gunner", 1, 450, 300)
	brute := w.spawn(t, "brute", 900, 300)
	elder := w.spawn(t, "elder", 700, 300)

	tests := []struct {
		name string
		id   ecs.EntityID
	}{
		{"enemy", brute},
		{"npc", elder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w.position(tt.id).Y = 541
			levels.Update(1.0 / 60)
			if !w.health(tt.id).IsDead() {
				t.Errorf("%s below the level should die, health = %d", tt.name, w.health(tt.id).Current)
			}
			if !ecs.HasComponent[*components.LifetimeComponent](w.em, tt.id) {
				t.Errorf("%s corpse should be removed later", tt.name)
			}
		})
	}

	// 恰好在底边上不算掉落
	w.position(hero).Y = 540
	levels.Update(1.0 / 60)
	if w.health(hero).IsDead() {
		t.Fatal("A character on the bottom edge should survive")
	}

	w.position(hero).Y = 800
	levels.Update(1.0 / 60)
	if !w.health(hero).IsDead() {
		t.Fatal("Fallen hero should die")
	}
	if active, _ := ActivePlayer(w.em); active != gunner {
		t.Errorf("Active player after fall = %d, want %d", active, gunner)
	}
	if got := w.gs.Registry().GetInt(game.RegistryKeyPartyAlive); got != 1 {
		t.Errorf("partyAlive = %d, want 1", got)
	}

	w.position(gunner).Y = 800
	levels.Update(1.0 / 60)
	levels.Update(config.CorpseLifetime)
	if requester.restarts != 1 {
		t.Errorf("restarts = %d, want 1 after the whole party fell", requester.restarts)
	}
}

func TestLevelFallIgnoredWithoutDamager(t *testing.T) {
	w := newTestWorld(t)
	level := &config.LevelConfig{ID: "1", Width: 2000, Height: 540}
	levels := NewLevelSystem(w.em, w.gs, nil, nil, level)
	hero := w.spawnPlayer(t, "hero", 0, 500, 900)

	levels.Update(1.0 / 60)
	if w.health(hero).IsDead() {
		t.Error("Without a damager falling is not handled")
	}
}
