package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"github.com/gonewx/arena/pkg/app"
	"github.com/gonewx/arena/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "磁盘上的竞技场配置文件（默认使用内嵌配置）")
	seed       = flag.Int64("seed", 0, "场地随机种子（0 表示使用配置）")
)

func main() {
	// .env 是可选的
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Main] 读取 .env 失败: %v", err)
	}
	flag.Parse()

	cfg := app.Config{
		Verbose:    *verbose || envBool("ARENA_VERBOSE"),
		ConfigPath: *configPath,
		Seed:       *seed,
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = os.Getenv("ARENA_CONFIG")
	}

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("游戏初始化失败: %v", err)
	}

	arenaConfig := gameApp.ArenaConfig()
	ebiten.SetWindowSize(arenaConfig.Window.Width, arenaConfig.Window.Height)
	ebiten.SetWindowTitle(arenaConfig.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
