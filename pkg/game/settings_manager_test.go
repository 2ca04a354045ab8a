package game

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.MusicVolume != 0.7 || s.SoundVolume != 0.8 {
		t.Errorf("Unexpected default volumes: %+v", s)
	}
	if !s.MusicEnabled || !s.SoundEnabled || !s.ShowHints {
		t.Errorf("Music, sound and hints should be enabled by default: %+v", s)
	}
	if s.Fullscreen {
		t.Error("Fullscreen should be off by default")
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.4, 0.4},
		{1, 1},
		{1.7, 1},
	}
	for _, tt := range tests {
		if got := clampVolume(tt.in); got != tt.want {
			t.Errorf("clampVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	sm.SetMusicVolume(2)
	sm.SetSoundVolume(-1)
	sm.SetShowHints(false)
	if err := sm.Save(); err != nil {
		t.Errorf("Save in degraded mode should return nil, got %v", err)
	}

	s := sm.GetSettings()
	if s.MusicVolume != 1 || s.SoundVolume != 0 || s.ShowHints {
		t.Errorf("Unexpected settings: %+v", s)
	}
}

func TestSettingsManagerPersistence(t *testing.T) {
	manager := createTestGdataManager(t, "settings")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	sm, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("NewSettingsManager error: %v", err)
	}
	sm.SetMusicVolume(0.25)
	sm.SetFullscreen(true)
	sm.SetSoundEnabled(false)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	reloaded, _ := NewSettingsManager(manager)
	s := reloaded.GetSettings()
	if s.MusicVolume != 0.25 || !s.Fullscreen || s.SoundEnabled {
		t.Errorf("Settings not persisted: %+v", s)
	}
}

func TestAudioManagerWithoutContext(t *testing.T) {
	settings, _ := NewSettingsManager(nil)
	am := NewAudioManager(NewResourceManager(nil), settings)

	if am.PlaySound(SoundShoot) {
		t.Error("PlaySound should fail without an audio context")
	}
	if am.PlayMusic("theme") {
		t.Error("PlayMusic should fail without an audio context")
	}

	settings.SetSoundEnabled(false)
	if am.PlaySound(SoundShoot) {
		t.Error("PlaySound should be a no-op when sound is disabled")
	}

	am.SetSoundVolume(0.3)
	if am.GetSoundVolume() != 0.3 {
		t.Errorf("GetSoundVolume = %v, want 0.3", am.GetSoundVolume())
	}
}
