package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/arena/pkg/game"
	"github.com/gonewx/arena/pkg/systems"
	"github.com/gonewx/arena/pkg/utils"
)

// maxErrorLineWidth 错误信息每行最大宽度（像素）
const maxErrorLineWidth = 600

// LoadErrorScene 模型加载失败界面
// 显示失败原因；重开会创建新会话并重新加载
type LoadErrorScene struct {
	sceneManager *game.SceneManager
	restart      RestartSource

	lines []string
}

// NewLoadErrorScene 创建加载失败界面
func NewLoadErrorScene(sm *game.SceneManager, restart RestartSource, cause error) *LoadErrorScene {
	lines := []string{"Failed to load the character model", ""}
	if cause != nil {
		lines = append(lines, utils.WrapText(cause.Error(), systems.DefaultFace(), maxErrorLineWidth)...)
	}
	lines = append(lines, "", "Press Enter to retry")

	return &LoadErrorScene{
		sceneManager: sm,
		restart:      restart,
		lines:        lines,
	}
}

// Lines 界面文字
func (s *LoadErrorScene) Lines() []string {
	return s.lines
}

// Update 检查重开按键
func (s *LoadErrorScene) Update(deltaTime float64) {
	if s.restart != nil && s.restart.RestartRequested() {
		s.sceneManager.Restart()
	}
}

// Draw 绘制错误信息
func (s *LoadErrorScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	bounds := screen.Bounds()
	systems.DrawCenteredText(screen, s.lines, systems.DefaultFace(), float64(bounds.Dx())/2, float64(bounds.Dy())/3, color.White)
}
