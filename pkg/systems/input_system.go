package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/arena/pkg/game"
	"github.com/gonewx/arena/pkg/utils"
)

// EbitenInputSource 每帧从 ebiten 轮询键盘和鼠标，写入会话的 InputState
//
// 移动键和视角是电平量，每帧覆盖；攻击是边沿事件，
// 只在按下的那一帧锁存，由游戏循环消费。
type EbitenInputSource struct {
	forward []ebiten.Key
	back    []ebiten.Key
	left    []ebiten.Key
	right   []ebiten.Key
	attack  []ebiten.Key
	restart []ebiten.Key

	screenWidth     int
	lookSensitivity float64
}

// NewEbitenInputSource 根据按键绑定创建输入源
//
// 参数:
//   - bindings: 按键名称绑定（ebiten.Key 的名称，如 "W"、"ArrowUp"、"Space"）
//   - lookSensitivity: 视角灵敏度
//   - screenWidth: 逻辑屏幕宽度，用于把光标 x 换算到 [-1, 1]
func NewEbitenInputSource(bindings game.KeyBindings, lookSensitivity float64, screenWidth int) *EbitenInputSource {
	return &EbitenInputSource{
		forward:         ParseKeys(bindings.Forward),
		back:            ParseKeys(bindings.Back),
		left:            ParseKeys(bindings.Left),
		right:           ParseKeys(bindings.Right),
		attack:          ParseKeys(bindings.Attack),
		restart:         ParseKeys(bindings.Restart),
		screenWidth:     screenWidth,
		lookSensitivity: lookSensitivity,
	}
}

// keysByName ebiten 按键名称 -> 按键
var keysByName = func() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		m[k.String()] = k
	}
	return m
}()

// ParseKey 解析按键名称
func ParseKey(name string) (ebiten.Key, bool) {
	k, ok := keysByName[name]
	return k, ok
}

// ParseKeys 解析一组按键名称，未知名称记录日志后跳过
func ParseKeys(names []string) []ebiten.Key {
	keys := make([]ebiten.Key, 0, len(names))
	for _, name := range names {
		k, ok := ParseKey(name)
		if !ok {
			log.Printf("[InputSystem] 未知按键 %q，已忽略", name)
			continue
		}
		keys = append(keys, k)
	}
	return keys
}

// CursorToLook 把光标 x 坐标换算成视角输入 [-1, 1]
// 屏幕中央为 0，两侧边缘为 ±sensitivity（再截断到 [-1, 1]）
func CursorToLook(cursorX, screenWidth int, sensitivity float64) float64 {
	if screenWidth <= 0 {
		return 0
	}
	look := (float64(cursorX)/float64(screenWidth)*2 - 1) * sensitivity
	return utils.Clamp(look, -1, 1)
}

// Poll 轮询一次输入
func (s *EbitenInputSource) Poll(state *game.InputState) {
	state.Forward = anyPressed(s.forward)
	state.Back = anyPressed(s.back)
	state.Left = anyPressed(s.left)
	state.Right = anyPressed(s.right)

	cursorX, _ := ebiten.CursorPosition()
	state.SetLook(CursorToLook(cursorX, s.screenWidth, s.lookSensitivity))

	if anyJustPressed(s.attack) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		state.TriggerAttack()
	}
}

// RestartRequested 本帧是否按下了重开键
func (s *EbitenInputSource) RestartRequested() bool {
	return anyJustPressed(s.restart)
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
