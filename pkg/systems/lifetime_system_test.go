package systems

import (
	"testing"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/ecs"
)

func TestLifetimeSystem(t *testing.T) {
	tests := []struct {
		name        string
		max         float64
		elapsed     float64
		expired     bool
		wantDestroy bool
	}{
		{"fresh", 1.5, 0.5, false, false},
		{"exactly at limit", 1.5, 1.5, false, true},
		{"past limit", 1.5, 2.0, false, true},
		{"marked expired", 10, 0.1, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			id := em.CreateEntity()
			ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: tt.max, IsExpired: tt.expired})

			NewLifetimeSystem(em).Update(tt.elapsed)

			if got := em.IsPendingDestroy(id); got != tt.wantDestroy {
				t.Errorf("destroyed = %v, want %v", got, tt.wantDestroy)
			}
		})
	}
}

func TestEnemyCorpseRemovedAfterLifetime(t *testing.T) {
	w := newTestWorld(t)
	brute := w.spawn(t, "brute", 100, 300)
	w.kill(brute)

	lifetime := NewLifetimeSystem(w.em)
	lifetime.Update(1.0)
	if w.em.IsPendingDestroy(brute) {
		t.Fatal("Corpse removed too early")
	}
	lifetime.Update(1.0)
	if !w.em.IsPendingDestroy(brute) {
		t.Error("Corpse should be removed after CorpseLifetime")
	}
}
