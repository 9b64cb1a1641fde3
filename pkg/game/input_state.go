package game

import "github.com/gonewx/arena/pkg/utils"

// InputState 每帧读取一次的输入记录
//
// 移动标志是电平量（按住期间一直为 true）；攻击是边沿事件，
// 被锁存后由游戏循环通过 ConsumeAttack 读取并清除，
// 因此一次按键只触发一次攻击判定。
type InputState struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool

	// Look 水平视角输入，范围 [-1, 1]
	Look float64

	attackLatched bool
}

// AnyMovement 是否有任意移动键按下
func (s *InputState) AnyMovement() bool {
	return s.Forward || s.Back || s.Left || s.Right
}

// TriggerAttack 锁存一次攻击事件
func (s *InputState) TriggerAttack() {
	s.attackLatched = true
}

// AttackPending 是否有尚未消费的攻击事件
func (s *InputState) AttackPending() bool {
	return s.attackLatched
}

// ConsumeAttack 读取并清除攻击事件
func (s *InputState) ConsumeAttack() bool {
	triggered := s.attackLatched
	s.attackLatched = false
	return triggered
}

// SetLook 设置视角输入并限制在 [-1, 1]
func (s *InputState) SetLook(v float64) {
	s.Look = utils.Clamp(v, -1, 1)
}

// InputSource 输入来源
// 游戏循环每帧调用一次 Poll，这是读取外部输入的唯一位置
type InputSource interface {
	Poll(state *InputState)
}

// InputFrame 一帧的脚本化输入
type InputFrame struct {
	Forward, Back, Left, Right bool
	Look                       float64
	Attack                     bool
}

// ScriptedInput 按帧回放预先写好的输入，脚本用完后保持最后一帧的电平量
// 用于测试和无窗口模拟
type ScriptedInput struct {
	frames []InputFrame
	next   int
}

// NewScriptedInput 创建脚本输入
func NewScriptedInput(frames ...InputFrame) *ScriptedInput {
	return &ScriptedInput{frames: frames}
}

// Poll 应用下一帧输入
func (si *ScriptedInput) Poll(state *InputState) {
	if len(si.frames) == 0 {
		return
	}

	idx := si.next
	fresh := idx < len(si.frames)
	if fresh {
		si.next++
	} else {
		idx = len(si.frames) - 1
	}
	f := si.frames[idx]

	state.Forward = f.Forward
	state.Back = f.Back
	state.Left = f.Left
	state.Right = f.Right
	state.SetLook(f.Look)

	// 攻击是边沿事件，只在脚本对应帧触发一次
	if f.Attack && fresh {
		state.TriggerAttack()
	}
}

// Append 追加脚本帧
func (si *ScriptedInput) Append(frames ...InputFrame) {
	si.frames = append(si.frames, frames...)
}

// Remaining 尚未回放的帧数
func (si *ScriptedInput) Remaining() int {
	return len(si.frames) - si.next
}
