package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"io"
	"path"
	"strings"

	"github.com/gonewx/wayfarer/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const (
	spriteDir = "assets/sprites"
	soundDir  = "assets/sounds"
)

// soundExtensions 按优先级查找音频文件
var soundExtensions = []string{".wav", ".ogg", ".mp3"}

// ResourceManager is responsible for loading and caching images and audio.
//
// All files are read through the embedded package, so the same code works with
// the embedded asset tree and with files on disk during development.
// Missing sprites and sounds are not errors: callers fall back to placeholder
// rectangles and silence.
//
// This implementation is NOT thread-safe; the game loop is single-threaded.
type ResourceManager struct {
	imageCache   map[string]*ebiten.Image   // path -> Image
	stripCache   map[string][]*ebiten.Image // sprite key -> frames
	audioCache   map[string]*audio.Player   // sound/music ID -> Player
	audioContext *audio.Context             // 可为 nil（无音频设备或测试环境）
}

// NewResourceManager creates a ResourceManager.
// audioContext may be nil, in which case every audio load is a no-op.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		imageCache:   make(map[string]*ebiten.Image),
		stripCache:   make(map[string][]*ebiten.Image),
		audioCache:   make(map[string]*audio.Player),
		audioContext: audioContext,
	}
}

// LoadImage loads and caches an image file.
func (rm *ResourceManager) LoadImage(p string) (*ebiten.Image, error) {
	if cached, ok := rm.imageCache[p]; ok {
		return cached, nil
	}

	file, err := embedded.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", p, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", p, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[p] = ebitenImg
	return ebitenImg, nil
}

// GetImage returns a cached image or nil.
func (rm *ResourceManager) GetImage(p string) *ebiten.Image {
	return rm.imageCache[p]
}

// SpritePath 返回精灵条的文件路径
func SpritePath(key string) string {
	return path.Join(spriteDir, key+".png")
}

// LoadSpriteStrip 加载水平排列的动画帧条并按帧数切分
//
// 文件不存在时返回 (nil, nil)，由渲染系统绘制占位矩形。
func (rm *ResourceManager) LoadSpriteStrip(key string, frames int) ([]*ebiten.Image, error) {
	if frames <= 0 {
		frames = 1
	}
	cacheKey := fmt.Sprintf("%s#%d", key, frames)
	if cached, ok := rm.stripCache[cacheKey]; ok {
		return cached, nil
	}

	p := SpritePath(key)
	if !embedded.Exists(p) {
		rm.stripCache[cacheKey] = nil
		return nil, nil
	}

	sheet, err := rm.LoadImage(p)
	if err != nil {
		return nil, err
	}

	bounds := sheet.Bounds()
	frameWidth := bounds.Dx() / frames
	if frameWidth <= 0 {
		return nil, fmt.Errorf("sprite %s is %dpx wide, cannot split into %d frames", key, bounds.Dx(), frames)
	}

	result := make([]*ebiten.Image, 0, frames)
	for i := 0; i < frames; i++ {
		rect := image.Rect(bounds.Min.X+i*frameWidth, bounds.Min.Y, bounds.Min.X+(i+1)*frameWidth, bounds.Max.Y)
		result = append(result, sheet.SubImage(rect).(*ebiten.Image))
	}
	rm.stripCache[cacheKey] = result
	return result, nil
}

// SoundPath 查找音效文件路径，找不到时返回空字符串
func SoundPath(id string) string {
	for _, ext := range soundExtensions {
		p := path.Join(soundDir, id+ext)
		if embedded.Exists(p) {
			return p
		}
	}
	return ""
}

type audioStream interface {
	io.ReadSeeker
	Length() int64
}

// decodeAudio 根据扩展名解码音频文件
func decodeAudio(p string, data []byte) (audioStream, error) {
	reader := bytes.NewReader(data)
	ext := strings.ToLower(path.Ext(p))

	switch ext {
	case ".wav":
		s, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", p, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", p, err)
		}
		return s, nil
	case ".mp3":
		s, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", p, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .ogg, .mp3)", ext)
	}
}

// LoadAudio 加载音频并创建播放器
//
// loop 为 true 时包装为无限循环（背景音乐）。
// 没有音频上下文或找不到文件时返回 (nil, nil)。
func (rm *ResourceManager) LoadAudio(id string, loop bool) (*audio.Player, error) {
	if cached, ok := rm.audioCache[id]; ok {
		return cached, nil
	}
	if rm.audioContext == nil {
		return nil, nil
	}

	p := SoundPath(id)
	if p == "" {
		return nil, nil
	}

	data, err := embedded.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", p, err)
	}
	stream, err := decodeAudio(p, data)
	if err != nil {
		return nil, err
	}

	var src io.Reader = stream
	if loop {
		src = audio.NewInfiniteLoop(stream, stream.Length())
	}
	player, err := rm.audioContext.NewPlayer(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", p, err)
	}

	rm.audioCache[id] = player
	return player, nil
}
