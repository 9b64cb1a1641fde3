package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (arena, game over, load error).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Closer 是一个可选接口，场景被替换时调用
// 用于取消场景持有的后台任务（如尚未完成的模型加载）
type Closer interface {
	Close()
}
