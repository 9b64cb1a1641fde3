// arena_sim 无窗口运行竞技场游戏循环
//
// 用脚本输入驱动 ArenaScene 固定步长跑若干帧，打印会话结果。
// 用于在没有显示设备的环境下检查移动、攻击和接触伤害。
//
//	go run ./cmd/arena_sim --frames 600 --seed 42 --pattern patrol
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gonewx/arena/pkg/config"
	"github.com/gonewx/arena/pkg/game"
	"github.com/gonewx/arena/pkg/scenes"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	frames     = flag.Int("frames", 600, "模拟帧数")
	seed       = flag.Int64("seed", 42, "场地随机种子")
	pattern    = flag.String("pattern", "patrol", "输入脚本: idle | patrol | spin")
	configPath = flag.String("config", config.ArenaConfigPath, "竞技场配置文件")
)

const frameDelta = 1.0 / 60.0

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadArenaConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.Arena.Seed = *seed

	script, err := buildScript(*pattern)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	scene, err := scenes.NewArenaScene(scenes.ArenaSceneOptions{
		Config:       cfg,
		Loader:       game.NewManifestModelLoader(os.DirFS(".")),
		Input:        script,
		ScreenWidth:  cfg.Window.Width,
		ScreenHeight: cfg.Window.Height,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create arena: %v\n", err)
		os.Exit(1)
	}
	defer scene.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := scene.AwaitModel(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "model load failed: %v\n", err)
		os.Exit(1)
	}

	session := scene.Session()
	ran := 0
	for ; ran < *frames && !scene.Ended(); ran++ {
		scene.Update(frameDelta)
	}

	fmt.Printf("session:   %s\n", session.ID)
	fmt.Printf("frames:    %d (%.2fs game time)\n", ran, session.GameTime)
	fmt.Printf("phase:     %s\n", session.Phase())
	fmt.Printf("health:    %d / %d\n", session.Health(), session.MaxHealth())
	fmt.Printf("score:     %d\n", session.Score())
	fmt.Printf("enemies:   %d\n", scene.EnemiesLeft())
	fmt.Printf("animation: %s\n", scene.CurrentAnimation())
	if t, ok := scene.PlayerTransform(); ok {
		fmt.Printf("position:  (%.2f, %.2f, %.2f) facing %.3f rad\n",
			t.Position.X, t.Position.Y, t.Position.Z, t.Facing)
	}
}

// buildScript 生成输入脚本，脚本用完后保持最后一帧
func buildScript(name string) (*game.ScriptedInput, error) {
	switch name {
	case "idle":
		return game.NewScriptedInput(game.InputFrame{}), nil

	case "patrol":
		// 四个方向各走一秒，每秒攻击一次
		si := game.NewScriptedInput()
		dirs := []game.InputFrame{
			{Forward: true},
			{Right: true},
			{Back: true},
			{Left: true},
		}
		for _, d := range dirs {
			for i := 0; i < 60; i++ {
				f := d
				f.Attack = i == 0
				si.Append(f)
			}
		}
		si.Append(game.InputFrame{})
		return si, nil

	case "spin":
		// 一边前进一边缓慢转动视角
		si := game.NewScriptedInput()
		for i := 0; i <= 240; i++ {
			look := float64(i)/120 - 1
			si.Append(game.InputFrame{Forward: true, Look: look, Attack: i%30 == 0})
		}
		return si, nil
	}
	return nil, fmt.Errorf("unknown pattern %q (idle | patrol | spin)", name)
}
