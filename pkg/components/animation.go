package components

// LoopMode 动画片段的循环方式
type LoopMode int

const (
	// LoopRepeat 循环播放
	LoopRepeat LoopMode = iota
	// LoopOnce 播放一次后停在最后一帧
	LoopOnce
)

// String 返回循环方式名称（用于日志）
func (m LoopMode) String() string {
	if m == LoopOnce {
		return "once"
	}
	return "repeat"
}

// ClipState 一个动画片段的播放状态
//
// 片段数据本身（时长、名称）加载后不变；其余字段由 AnimationSystem 每帧推进。
type ClipState struct {
	Name     string  // 片段名称（Idle/Walk/Run/Attack）
	Duration float64 // 片段时长（秒）

	Loop     LoopMode
	Time     float64 // 播放头位置（秒）
	Weight   float64 // 当前混合权重 [0, 1]
	Enabled  bool    // 是否参与更新（淡出完成后关闭）
	Finished bool    // 单次播放的片段是否已结束

	// 权重渐变：在 FadeDuration 秒内从 FadeFrom 过渡到 FadeTo
	Fading       bool
	FadeFrom     float64
	FadeTo       float64
	FadeElapsed  float64
	FadeDuration float64
}

// AnimationPlayerComponent 一个角色的动画播放器
//
// 持有该角色所有已加载的片段，记录当前片段；
// 切换片段时旧片段淡出、新片段淡入（交叉淡化）。
type AnimationPlayerComponent struct {
	Clips        map[string]*ClipState
	Current      string  // 当前片段名称，空表示尚未播放
	FadeDuration float64 // 交叉淡化时长（秒）

	// missingLogged 已经报告过的缺失片段，避免每帧刷日志
	missingLogged map[string]bool
}

// NewAnimationPlayerComponent 创建动画播放器
// clips: 片段名称 -> 时长（秒）
func NewAnimationPlayerComponent(clips map[string]float64, fadeDuration float64) *AnimationPlayerComponent {
	comp := &AnimationPlayerComponent{
		Clips:         make(map[string]*ClipState, len(clips)),
		FadeDuration:  fadeDuration,
		missingLogged: make(map[string]bool),
	}
	for name, duration := range clips {
		comp.Clips[name] = &ClipState{
			Name:     name,
			Duration: duration,
		}
	}
	return comp
}

// MarkMissingLogged 记录缺失片段已报告，首次调用返回 true
func (c *AnimationPlayerComponent) MarkMissingLogged(name string) bool {
	if c.missingLogged == nil {
		c.missingLogged = make(map[string]bool)
	}
	if c.missingLogged[name] {
		return false
	}
	c.missingLogged[name] = true
	return true
}
