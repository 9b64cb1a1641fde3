// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/arena/pkg/config"
	"github.com/gonewx/arena/pkg/embedded"
	"github.com/gonewx/arena/pkg/game"
	"github.com/gonewx/arena/pkg/scenes"
	"github.com/gonewx/arena/pkg/systems"
	"github.com/gonewx/arena/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 磁盘上的竞技场配置，为空则使用内嵌的 data/arena.yaml
	ConfigPath string
	// Seed 覆盖配置中的随机种子（0 表示不覆盖）
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	arenaConfig  *config.ArenaConfig
	verbose      bool

	lastUpdate time.Time

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	arenaConfig, err := loadArenaConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.Seed != 0 {
		arenaConfig.Arena.Seed = cfg.Seed
	}

	dataFS, err := embedded.FS()
	if err != nil {
		return nil, err
	}
	loader := game.NewManifestModelLoader(dataFS)

	// 偏好设置存储失败时退化为内存模式
	gdataManager, err := gdata.Open(gdata.Config{AppName: "arena"})
	if err != nil {
		log.Printf("[App] 无法打开偏好设置存储，使用默认设置: %v", err)
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager)
	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func() game.Scene {
		prefs := settings.GetSettings()
		input := systems.NewEbitenInputSource(prefs.Bindings, prefs.LookSensitivity, arenaConfig.Window.Width)
		scene, err := scenes.NewArenaScene(scenes.ArenaSceneOptions{
			Config:       arenaConfig,
			Loader:       loader,
			Input:        input,
			SceneManager: sceneManager,
			ScreenWidth:  arenaConfig.Window.Width,
			ScreenHeight: arenaConfig.Window.Height,
		})
		if err != nil {
			log.Printf("[App] 场景创建失败: %v", err)
			return scenes.NewLoadErrorScene(sceneManager, input, err)
		}
		return scene
	})
	sceneManager.Restart()

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		arenaConfig:  arenaConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// loadArenaConfig 优先读取磁盘配置，否则使用内嵌配置
func loadArenaConfig(path string) (*config.ArenaConfig, error) {
	if path != "" {
		cfg, err := config.LoadArenaConfig(path)
		if err != nil {
			return nil, fmt.Errorf("竞技场配置加载失败: %w", err)
		}
		log.Printf("[Config] 加载竞技场配置: %s", path)
		return cfg, nil
	}

	data, err := embedded.ReadFile(config.ArenaConfigPath)
	if err != nil {
		return nil, fmt.Errorf("竞技场配置读取失败: %w", err)
	}
	cfg, err := config.ParseArenaConfig(data)
	if err != nil {
		return nil, fmt.Errorf("竞技场配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载内嵌竞技场配置: %s", config.ArenaConfigPath)
	return cfg, nil
}

// ArenaConfig 返回生效的竞技场配置
func (a *App) ArenaConfig() *config.ArenaConfig {
	return a.arenaConfig
}

// Update 更新游戏逻辑
// 每个 tick 调用一次，帧时间取真实经过时间并限制在 maxDeltaTime 以内
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.arenaConfig.Window.Width, a.arenaConfig.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.arenaConfig.Window.Width, a.arenaConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（移动端始终全屏）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	now := time.Now()
	deltaTime := 1.0 / float64(ebiten.TPS())
	if !a.lastUpdate.IsZero() {
		deltaTime = now.Sub(a.lastUpdate).Seconds()
	}
	a.lastUpdate = now
	if deltaTime > a.arenaConfig.Window.MaxDeltaTime {
		deltaTime = a.arenaConfig.Window.MaxDeltaTime
	}

	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	enable := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(enable)
	if !enable {
		// 退出全屏
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}

	a.settings.SetFullscreen(enable)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] 保存偏好设置失败: %v", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.arenaConfig.Window.Width, a.arenaConfig.Window.Height
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
