// validate_config 检查 data/ 下的配置文件，并列出缺失的精灵与音效
//
// 用法（在项目根目录执行）：
//
//	go run ./cmd/validate_config
//	go run ./cmd/validate_config -strict   # 资源缺失时返回非零退出码
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/embedded"
	"github.com/gonewx/wayfarer/pkg/game"
)

var strict = flag.Bool("strict", false, "精灵或音效缺失时视为失败")

var soundIDs = []string{
	game.SoundAttack, game.SoundShoot, game.SoundReload, game.SoundHurt, game.SoundDeath,
	game.SoundJump, game.SoundSwitch, game.SoundDialogue, game.SoundLevelEnd, game.MusicLevel,
}

func main() {
	flag.Parse()

	root := os.DirFS(".")
	embedded.Init(root, root)

	cfg, err := config.LoadGameConfig()
	if err != nil {
		fmt.Printf("❌ 配置加载失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 角色: %d, 关卡: %d, 对话: %d\n",
		len(cfg.Characters.UnitIDs()), len(cfg.Levels.Levels), len(cfg.Dialogue.Dialogue))

	missing := 0
	for _, key := range spriteKeys(cfg.Characters) {
		if !embedded.Exists(game.SpritePath(key)) {
			fmt.Printf("⚠️  缺少精灵: %s\n", game.SpritePath(key))
			missing++
		}
	}
	for _, id := range soundIDs {
		if game.SoundPath(id) == "" {
			fmt.Printf("⚠️  缺少音效: %s\n", id)
			missing++
		}
	}

	if missing == 0 {
		fmt.Printf("✅ 所有资源齐全\n")
		return
	}
	fmt.Printf("共 %d 个资源缺失（将使用占位矩形或静音）\n", missing)
	if *strict {
		os.Exit(1)
	}
}

// spriteKeys 收集所有角色引用的动画键（去重、排序）
func spriteKeys(chars *config.CharactersConfig) []string {
	seen := make(map[string]bool)
	for _, id := range chars.UnitIDs() {
		c, _ := chars.Get(id)
		for _, state := range components.AllMoveStates {
			if spec := c.AnimationFor(state); spec.Key != "" {
				seen[spec.Key] = true
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
