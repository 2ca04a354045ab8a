package systems

import (
	"testing"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/gonewx/wayfarer/pkg/entities"
	"github.com/gonewx/wayfarer/pkg/game"
)

const testCharactersYAML = `
characters:
  hero:
    kind: player
    name: Hero
    width: 30
    height: 50
    speed: 180
    runSpeed: 300
    jumpSpeed: 520
    health: 100
    meleeDamage: 20
  gunner:
    kind: player
    name: Gunner
    width: 30
    height: 50
    speed: 160
    jumpSpeed: 500
    health: 80
    weapon: {magazineSize: 2, reloadTime: 1, damage: 10, projectileSpeed: 400}
  brute:
    kind: enemy
    width: 30
    height: 50
    speed: 120
    health: 40
    meleeDamage: 15
  shooter:
    kind: enemy
    width: 30
    height: 50
    speed: 100
    health: 30
    weapon: {magazineSize: 3, reloadTime: 2, damage: 10, projectileSpeed: 400}
  elder:
    kind: npc
    name: Elder
    width: 30
    height: 50
    health: 10
  drone:
    kind: drone
    width: 20
    height: 14
    speed: 200
    health: 1
`

// testWorld 组装测试所需的实体管理器和核心系统（不含物理空间）
type testWorld struct {
	em      *ecs.EntityManager
	gs      *game.GameState
	chars   *config.CharactersConfig
	states  *PlayerStateSystem
	weapons *WeaponSystem
	sparks  *HitFlashPool
	combat  *CombatSystem
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	chars, err := config.ParseCharacters([]byte(testCharactersYAML))
	if err != nil {
		t.Fatalf("ParseCharacters error: %v", err)
	}

	em := ecs.NewEntityManager()
	gs := game.NewGameState(nil)
	w := &testWorld{
		em:      em,
		gs:      gs,
		chars:   chars,
		states:  NewPlayerStateSystem(em, gs),
		weapons: NewWeaponSystem(em, gs),
		sparks:  NewHitFlashPool(em, 4),
	}
	w.combat = NewCombatSystem(em, gs, w.states, w.weapons, w.sparks)
	return w
}

func (w *testWorld) config(t *testing.T, unit string) *config.CharacterConfig {
	t.Helper()
	cfg, ok := w.chars.Get(unit)
	if !ok {
		t.Fatalf("character %s missing", unit)
	}
	return cfg
}

// spawn 创建站在地面上的角色（玩家以外的种类）
func (w *testWorld) spawn(t *testing.T, unit string, x, y float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewCharacter(w.em, nil, nil, w.config(t, unit), unit, x, y)
	if err != nil {
		t.Fatalf("NewCharacter(%s) error: %v", unit, err)
	}
	w.character(id).Grounded = true
	return id
}

// spawnPlayer 创建队伍成员，slot 0 为初始操控角色
func (w *testWorld) spawnPlayer(t *testing.T, unit string, slot int, x, y float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewPlayer(w.em, nil, nil, w.config(t, unit), unit, slot, x, y)
	if err != nil {
		t.Fatalf("NewPlayer(%s) error: %v", unit, err)
	}
	w.character(id).Grounded = true
	if slot == 0 {
		SetActivePlayer(w.em, w.gs.Registry(), id)
	}
	return id
}

func (w *testWorld) character(id ecs.EntityID) *components.CharacterComponent {
	ch, _ := ecs.GetComponent[*components.CharacterComponent](w.em, id)
	return ch
}

func (w *testWorld) state(id ecs.EntityID) *components.MoveStateComponent {
	mv, _ := ecs.GetComponent[*components.MoveStateComponent](w.em, id)
	return mv
}

func (w *testWorld) velocity(id ecs.EntityID) *components.VelocityComponent {
	vel, _ := ecs.GetComponent[*components.VelocityComponent](w.em, id)
	return vel
}

func (w *testWorld) position(id ecs.EntityID) *components.PositionComponent {
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
	return pos
}

func (w *testWorld) health(id ecs.EntityID) *components.HealthComponent {
	h, _ := ecs.GetComponent[*components.HealthComponent](w.em, id)
	return h
}

func (w *testWorld) weapon(id ecs.EntityID) *components.WeaponComponent {
	wc, _ := ecs.GetComponent[*components.WeaponComponent](w.em, id)
	return wc
}

// kill 直接把角色打死（经过 CombatSystem，触发死亡流程）
func (w *testWorld) kill(id ecs.EntityID) {
	w.combat.ApplyDamage(id, w.health(id).Max)
}
