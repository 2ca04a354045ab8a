package systems

import (
	"testing"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/gonewx/wayfarer/pkg/entities"
)

func spawnNPC(t *testing.T, w *testWorld, lines []string, x float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewNPC(w.em, nil, nil, w.config(t, "elder"), "elder", lines, x, 300)
	if err != nil {
		t.Fatalf("NewNPC error: %v", err)
	}
	return id
}

func TestDialogueOpenAdvanceClose(t *testing.T) {
	w := newTestWorld(t)
	w.spawnPlayer(t, "hero", 0, 100, 300)
	npc := spawnNPC(t, w, []string{"one", "two"}, 150)
	input := &fakeIntentSource{}
	dialogue := NewDialogueSystem(w.em, w.gs, input)
	hints := NewHintSystem(w.em)

	dialogue.Update(1.0 / 60)
	if got := hints.VisibleHints(); len(got) != 1 || got[0] != config.InteractHintText {
		t.Fatalf("In range: hints = %v, want the interact prompt", got)
	}

	steps := []struct {
		wantOpen bool
		wantLine string
	}{
		{true, "one"},
		{true, "two"},
		{false, ""},
	}
	input.intent.Interact = true
	for i, step := range steps {
		dialogue.Update(1.0 / 60)
		gotNPC, line, open := dialogue.OpenDialogue()
		if open != step.wantOpen || line != step.wantLine {
			t.Errorf("interact #%d: open %v line %q, want %v %q", i, open, line, step.wantOpen, step.wantLine)
		}
		if open && gotNPC != npc {
			t.Errorf("interact #%d: dialogue with %d, want %d", i, gotNPC, npc)
		}
		if open && len(hints.VisibleHints()) != 0 {
			t.Errorf("interact #%d: prompt should hide while the dialogue is open", i)
		}
	}

	// 对话结束后提示重新出现，可以再次从第一句开始
	if len(hints.VisibleHints()) != 1 {
		t.Error("Prompt should return after the dialogue closes")
	}
	dialogue.Update(1.0 / 60)
	if _, line, _ := dialogue.OpenDialogue(); line != "one" {
		t.Errorf("Reopened dialogue line = %q, want one", line)
	}
}

func TestDialogueClosesWhenLeavingRange(t *testing.T) {
	w := newTestWorld(t)
	hero := w.spawnPlayer(t, "hero", 0, 100, 300)
	npc := spawnNPC(t, w, []string{"one", "two"}, 150)
	input := &fakeIntentSource{intent: Intent{Interact: true}}
	dialogue := NewDialogueSystem(w.em, w.gs, input)
	hints := NewHintSystem(w.em)

	dialogue.Update(1.0 / 60)
	if _, _, open := dialogue.OpenDialogue(); !open {
		t.Fatal("Dialogue should open")
	}

	input.intent.Interact = false
	w.position(hero).X = 400
	dialogue.Update(1.0 / 60)

	dlg, _ := ecs.GetComponent[*components.DialogueComponent](w.em, npc)
	if dlg.Open || dlg.InRange || dlg.Index != 0 {
		t.Errorf("Out of range: open %v inRange %v index %d", dlg.Open, dlg.InRange, dlg.Index)
	}
	if len(hints.VisibleHints()) != 0 {
		t.Error("Prompt should disappear out of range")
	}
}

func TestDialoguePicksNearestNPC(t *testing.T) {
	w := newTestWorld(t)
	w.spawnPlayer(t, "hero", 0, 100, 300)
	far := spawnNPC(t, w, []string{"far"}, 160)
	near := spawnNPC(t, w, []string{"near"}, 130)
	input := &fakeIntentSource{intent: Intent{Interact: true}}

	dialogue := NewDialogueSystem(w.em, w.gs, input)
	dialogue.Update(1.0 / 60)

	gotNPC, line, _ := dialogue.OpenDialogue()
	if gotNPC != near || line != "near" {
		t.Errorf("Dialogue with %d (%q), want nearest %d", gotNPC, line, near)
	}
	dlg, _ := ecs.GetComponent[*components.DialogueComponent](w.em, far)
	if dlg.InRange {
		t.Error("Only the nearest NPC should be in range")
	}
}

func TestDialoguePromptPersistsWhileInRange(t *testing.T) {
	w := newTestWorld(t)
	w.spawnPlayer(t, "hero", 0, 100, 300)
	spawnNPC(t, w, []string{"one"}, 150)
	dialogue := NewDialogueSystem(w.em, w.gs, &fakeIntentSource{})
	hints := NewHintSystem(w.em)

	for i := 0; i < 600; i++ {
		dialogue.Update(1.0 / 60)
		hints.Update(1.0 / 60)
		w.em.RemoveMarkedEntities()
	}
	if got := hints.VisibleHints(); len(got) != 1 {
		t.Errorf("Prompt should stay while in range, hints = %v", got)
	}
}

func TestDialogueWithoutLines(t *testing.T) {
	w := newTestWorld(t)
	w.spawnPlayer(t, "hero", 0, 100, 300)
	npc := spawnNPC(t, w, nil, 150)

	dialogue := NewDialogueSystem(w.em, w.gs, &fakeIntentSource{intent: Intent{Interact: true}})
	dialogue.Update(1.0 / 60)
	if dialogue.Interact(npc) {
		t.Error("NPC without lines cannot open a dialogue")
	}
	if _, _, open := dialogue.OpenDialogue(); open {
		t.Error("No dialogue should be open")
	}
}
