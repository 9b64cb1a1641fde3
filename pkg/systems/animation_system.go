package systems

import (
	"log"
	"math"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/ecs"
	"github.com/gonewx/arena/pkg/utils"
)

// AnimationSystem 角色动画播放器
//
// 每个角色实体持有一个 AnimationPlayerComponent，记录所有已加载片段和当前片段。
// 切换片段时，旧片段在 FadeDuration 内淡出，新片段同时淡入；
// 淡出完成的片段被停用，不再推进时间。
//
// 调用约定：每帧先调用 Update，再查询 IsPlaying / CurrentClip。
type AnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewAnimationSystem 创建动画系统
func NewAnimationSystem(em *ecs.EntityManager) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
	}
}

// Play 播放指定片段
//
// 参数:
//   - id: 角色实体
//   - name: 片段名称（Idle/Walk/Run/Attack）
//   - loop: 循环方式
//
// 行为:
//   - 片段不存在：记录一次日志后忽略
//   - 循环片段已是当前片段且未结束：不做任何事（播放头不重置）
//   - 单次片段总是从头播放（连续攻击每次都重播）
//   - 其他情况：播放头归零，当前片段淡出，新片段淡入
func (s *AnimationSystem) Play(id ecs.EntityID, name string, loop components.LoopMode) {
	player, ok := ecs.GetComponent[*components.AnimationPlayerComponent](s.entityManager, id)
	if !ok {
		return
	}

	clip, exists := player.Clips[name]
	if !exists {
		if player.MarkMissingLogged(name) {
			log.Printf("[AnimationSystem] 实体 %d 没有动画片段 %q，已忽略", id, name)
		}
		return
	}

	if loop == components.LoopRepeat && player.Current == name && clip.Enabled && !clip.Finished {
		return
	}

	fade := player.FadeDuration
	if previous, ok := player.Clips[player.Current]; ok && player.Current != name && previous.Enabled {
		startFade(previous, 0, fade)
	}

	clip.Time = 0
	clip.Loop = loop
	clip.Finished = false
	if player.Current == "" || player.Current == name {
		// 第一次播放或重播单次片段，不需要淡入
		clip.Enabled = true
		clip.Weight = 1
		clip.Fading = false
	} else {
		if !clip.Enabled {
			clip.Weight = 0
		}
		clip.Enabled = true
		startFade(clip, 1, fade)
	}

	if player.Current != name {
		log.Printf("[AnimationSystem] 实体 %d: %s -> %s (%s)", id, displayClipName(player.Current), name, loop)
	}
	player.Current = name
}

// startFade 从当前权重开始渐变到 to
func startFade(clip *components.ClipState, to, duration float64) {
	if duration <= 0 {
		clip.Weight = to
		clip.Fading = false
		if to == 0 {
			clip.Enabled = false
		}
		return
	}
	clip.Fading = true
	clip.FadeFrom = clip.Weight
	clip.FadeTo = to
	clip.FadeElapsed = 0
	clip.FadeDuration = duration
}

func displayClipName(name string) string {
	if name == "" {
		return "<none>"
	}
	return name
}

// Update 推进所有启用片段（包括正在淡出的片段）的时间和权重
func (s *AnimationSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.AnimationPlayerComponent](s.entityManager)

	for _, id := range entities {
		player, _ := ecs.GetComponent[*components.AnimationPlayerComponent](s.entityManager, id)
		for _, clip := range player.Clips {
			if !clip.Enabled {
				continue
			}
			advanceClip(clip, deltaTime)
		}
	}
}

func advanceClip(clip *components.ClipState, dt float64) {
	if !clip.Finished {
		clip.Time += dt
		switch clip.Loop {
		case components.LoopOnce:
			if clip.Time >= clip.Duration {
				clip.Time = clip.Duration
				clip.Finished = true
			}
		default:
			if clip.Duration > 0 {
				clip.Time = math.Mod(clip.Time, clip.Duration)
			}
		}
	}

	if !clip.Fading {
		return
	}
	clip.FadeElapsed += dt
	progress := clip.FadeElapsed / clip.FadeDuration
	if progress >= 1 {
		clip.Weight = clip.FadeTo
		clip.Fading = false
		if clip.FadeTo == 0 {
			clip.Enabled = false
		}
		return
	}
	clip.Weight = utils.Lerp(clip.FadeFrom, clip.FadeTo, progress)
}

// IsPlaying 指定片段是否为当前片段且仍在播放（单次片段未结束）
func (s *AnimationSystem) IsPlaying(id ecs.EntityID, name string) bool {
	player, ok := ecs.GetComponent[*components.AnimationPlayerComponent](s.entityManager, id)
	if !ok || player.Current != name {
		return false
	}
	clip, ok := player.Clips[name]
	return ok && clip.Enabled && !clip.Finished
}

// CurrentClip 返回当前片段名称，没有播放器或尚未播放时返回空字符串
func (s *AnimationSystem) CurrentClip(id ecs.EntityID) string {
	player, ok := ecs.GetComponent[*components.AnimationPlayerComponent](s.entityManager, id)
	if !ok {
		return ""
	}
	return player.Current
}

// IsFinished 当前片段是否为已播放结束的单次片段
func (s *AnimationSystem) IsFinished(id ecs.EntityID) bool {
	player, ok := ecs.GetComponent[*components.AnimationPlayerComponent](s.entityManager, id)
	if !ok {
		return false
	}
	clip, ok := player.Clips[player.Current]
	return ok && clip.Finished
}
