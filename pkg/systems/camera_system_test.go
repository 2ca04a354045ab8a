package systems

import "testing"

func TestCameraFollowsActivePlayer(t *testing.T) {
	tests := []struct {
		name    string
		playerX float64
		playerY float64
		wantX   float64
		wantY   float64
	}{
		{"centred", 1500, 540, 1020, 270},
		{"clamped left", 100, 540, 0, 270},
		{"clamped right", 2950, 540, 2040, 270},
		{"clamped top", 1500, 50, 1020, 0},
		{"clamped bottom", 1500, 1070, 1020, 540},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			w.spawnPlayer(t, "hero", 0, tt.playerX, tt.playerY)
			cam := NewCameraSystem(w.em, 960, 540, 3000, 1080)

			cam.Update(1.0 / 60)

			x, y := cam.Offset()
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Offset = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCameraSmallLevelAndNoPlayer(t *testing.T) {
	w := newTestWorld(t)
	cam := NewCameraSystem(w.em, 960, 540, 800, 400)

	cam.Update(1.0 / 60)
	if x, y := cam.Offset(); x != 0 || y != 0 {
		t.Errorf("Camera without a player should stay at origin, got (%v, %v)", x, y)
	}

	w.spawnPlayer(t, "hero", 0, 700, 350)
	cam.Update(1.0 / 60)
	if x, y := cam.Offset(); x != 0 || y != 0 {
		t.Errorf("Level smaller than the view should pin the camera at origin, got (%v, %v)", x, y)
	}
}
