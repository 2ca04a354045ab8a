package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// 音效资源ID（对应 assets/sounds/<id>.{wav,ogg,mp3}）
const (
	SoundAttack   = "attack"
	SoundShoot    = "shoot"
	SoundReload   = "reload"
	SoundHurt     = "hurt"
	SoundDeath    = "death"
	SoundJump     = "jump"
	SoundSwitch   = "switch"
	SoundDialogue = "dialogue"
	SoundLevelEnd = "level_end"

	MusicLevel = "level_music" // 关卡背景音乐
)

// AudioManager 音频管理器
// 统一管理音效和背景音乐的播放，音量与开关读取自 SettingsManager
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager // 可为 nil，使用默认音量
	currentMusic    *audio.Player
	currentMusicID  string
	missing         map[string]bool // 已确认不存在的资源，避免重复查找和刷屏日志
}

// NewAudioManager 创建新的音频管理器
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		missing:         make(map[string]bool),
	}
}

// PlaySound 播放音效（单次），返回是否实际播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.player(soundID, false)
	if player == nil {
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// PlayMusic 循环播放背景音乐，同一时间只有一首
func (am *AudioManager) PlayMusic(musicID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().MusicEnabled {
		return false
	}
	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}

	am.StopMusic()

	player := am.player(musicID, true)
	if player == nil {
		return false
	}

	volume := am.GetMusicVolume()
	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind music %s: %v", musicID, err)
	}
	player.Play()

	am.currentMusic = player
	am.currentMusicID = musicID
	log.Printf("[AudioManager] Playing music: %s (volume: %.2f)", musicID, volume)
	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// SetMusicVolume 设置音乐音量并立即应用到当前音乐
func (am *AudioManager) SetMusicVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetMusicVolume(volume)
	}
	if am.currentMusic != nil {
		am.currentMusic.SetVolume(am.GetMusicVolume())
	}
}

// SetSoundVolume 设置音效音量，影响后续播放
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
}

// GetMusicVolume 获取当前音乐音量
func (am *AudioManager) GetMusicVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().MusicVolume
	}
	return DefaultSettings().MusicVolume
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return DefaultSettings().SoundVolume
}

func (am *AudioManager) player(id string, loop bool) *audio.Player {
	if am.missing[id] || am.resourceManager == nil {
		return nil
	}
	player, err := am.resourceManager.LoadAudio(id, loop)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load audio %s: %v", id, err)
	}
	if player == nil {
		am.missing[id] = true
		return nil
	}
	return player
}
