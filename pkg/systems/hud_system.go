package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/gonewx/arena/pkg/game"
)

const (
	hudMargin    = 10.0
	hudBarWidth  = 200.0
	hudBarHeight = 12.0
)

var (
	hudTextColor   = color.White
	hudBarBack     = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xc0}
	hudBarFill     = color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}
	hudPanelColor  = color.RGBA{A: 0x80}
	defaultHUDFace = text.NewGoXFace(basicfont.Face7x13)
)

// DefaultFace HUD 和提示界面共用的位图字体
func DefaultFace() text.Face {
	return defaultHUDFace
}

// HUDSystem 生命值和分数显示
//
// 通过会话的 StatsListener 接收变化，只在数值变化时重建文字。
type HUDSystem struct {
	face text.Face

	health    int
	maxHealth int
	score     int

	lines []string
}

// NewHUDSystem 创建 HUD 并订阅会话数值变化
func NewHUDSystem(session *game.Session) *HUDSystem {
	h := &HUDSystem{
		face:      defaultHUDFace,
		maxHealth: session.MaxHealth(),
	}
	session.AddStatsListener(h.OnStatsChanged)
	return h
}

// OnStatsChanged 会话数值变化回调
func (h *HUDSystem) OnStatsChanged(health, score int) {
	h.health = health
	h.score = score
	h.lines = []string{
		fmt.Sprintf("Health: %d / %d", health, h.maxHealth),
		fmt.Sprintf("Score: %d", score),
	}
}

// Lines 当前显示的文字
func (h *HUDSystem) Lines() []string {
	return h.lines
}

// Draw 绘制血条和文字
func (h *HUDSystem) Draw(screen *ebiten.Image, status string) {
	lineHeight := h.face.Metrics().HAscent + h.face.Metrics().HDescent + 4
	lines := h.lines
	if status != "" {
		lines = append(append([]string(nil), lines...), status)
	}

	panelHeight := hudBarHeight + float64(len(lines))*lineHeight + hudMargin*2
	vector.FillRect(screen, 0, 0, float32(hudBarWidth+hudMargin*2), float32(panelHeight), hudPanelColor, false)

	vector.FillRect(screen, hudMargin, hudMargin, hudBarWidth, hudBarHeight, hudBarBack, false)
	if fill := h.healthBarFill(); fill > 0 {
		vector.FillRect(screen, hudMargin, hudMargin, float32(fill), hudBarHeight, hudBarFill, false)
	}

	y := hudMargin*1.5 + hudBarHeight
	for _, line := range lines {
		DrawText(screen, line, h.face, hudMargin, y, hudTextColor)
		y += lineHeight
	}
}

// healthBarFill 血条填充宽度（像素）
func (h *HUDSystem) healthBarFill() float64 {
	if h.maxHealth <= 0 {
		return 0
	}
	return hudBarWidth * float64(h.health) / float64(h.maxHealth)
}

// DrawText 在 (x, y) 处绘制一行文字（左上角对齐）
func DrawText(screen *ebiten.Image, str string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// DrawCenteredText 以 (cx, y) 为中心绘制多行文字
func DrawCenteredText(screen *ebiten.Image, lines []string, face text.Face, cx, y float64, clr color.Color) {
	lineHeight := face.Metrics().HAscent + face.Metrics().HDescent + 6
	for _, line := range lines {
		w, _ := text.Measure(line, face, lineHeight)
		DrawText(screen, line, face, cx-w/2, y, clr)
		y += lineHeight
	}
}
