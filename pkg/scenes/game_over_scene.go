package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/arena/pkg/game"
	"github.com/gonewx/arena/pkg/systems"
)

var (
	overlayColor = color.RGBA{R: 0x20, G: 0x08, B: 0x08, A: 0xff}
	titleColor   = color.RGBA{R: 0xff, G: 0x50, B: 0x50, A: 0xff}
)

// GameOverScene 生命值耗尽后的结束界面
// 唯一的操作是完全重开（新会话、新场地）
type GameOverScene struct {
	sceneManager *game.SceneManager
	restart      RestartSource

	lines []string
}

// NewGameOverScene 创建结束界面
// restart 为空时不响应重开
func NewGameOverScene(sm *game.SceneManager, restart RestartSource, score, enemiesLeft int) *GameOverScene {
	return &GameOverScene{
		sceneManager: sm,
		restart:      restart,
		lines: []string{
			"GAME OVER",
			"",
			fmt.Sprintf("Score: %d", score),
			fmt.Sprintf("Enemies left: %d", enemiesLeft),
			"",
			"Press Enter to restart",
		},
	}
}

// Lines 界面文字
func (s *GameOverScene) Lines() []string {
	return s.lines
}

// Update 检查重开按键
func (s *GameOverScene) Update(deltaTime float64) {
	if s.restart != nil && s.restart.RestartRequested() {
		s.sceneManager.Restart()
	}
}

// Draw 绘制结束界面
func (s *GameOverScene) Draw(screen *ebiten.Image) {
	screen.Fill(overlayColor)
	bounds := screen.Bounds()
	cx := float64(bounds.Dx()) / 2
	y := float64(bounds.Dy()) / 3

	face := systems.DefaultFace()
	systems.DrawCenteredText(screen, s.lines[:1], face, cx, y, titleColor)
	systems.DrawCenteredText(screen, s.lines[1:], face, cx, y+20, color.White)
}
