package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gonewx/wayfarer/pkg/app"
	"github.com/gonewx/wayfarer/pkg/config"
	"github.com/gonewx/wayfarer/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag = flag.Bool("verbose", false, "输出详细日志")
	levelFlag   = flag.String("level", "", "直接进入指定关卡（如 2），默认从存档继续")
)

func main() {
	flag.Parse()

	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose: *verboseFlag,
		Level:   *levelFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Wayfarer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
