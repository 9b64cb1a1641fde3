package systems

import (
	"math"
	"testing"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/ecs"
)

func newAnimatedEntity(t *testing.T, em *ecs.EntityManager) (ecs.EntityID, *components.AnimationPlayerComponent) {
	t.Helper()
	id := em.CreateEntity()
	player := components.NewAnimationPlayerComponent(map[string]float64{
		"Idle":   2.0,
		"Walk":   1.0,
		"Attack": 0.6,
	}, 0.3)
	ecs.AddComponent(em, id, player)
	return id, player
}

// TestAnimationSystem_PlayIdempotent 当前片段重复 Play 不重置播放头
func TestAnimationSystem_PlayIdempotent(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewAnimationSystem(em)
	id, player := newAnimatedEntity(t, em)

	s.Play(id, "Idle", components.LoopRepeat)
	s.Update(0.5)

	s.Play(id, "Idle", components.LoopRepeat)

	idle := player.Clips["Idle"]
	if math.Abs(idle.Time-0.5) > 1e-9 {
		t.Errorf("Idle play-head was reset: got %.3f, want 0.5", idle.Time)
	}
	if idle.Fading {
		t.Error("repeated Play must not start a crossfade")
	}
	if !s.IsPlaying(id, "Idle") {
		t.Error("Idle should still be playing")
	}
}

// TestAnimationSystem_OnceClipRestarts 播放中的单次片段再次 Play 从头开始
func TestAnimationSystem_OnceClipRestarts(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewAnimationSystem(em)
	id, player := newAnimatedEntity(t, em)

	s.Play(id, "Attack", components.LoopOnce)
	s.Update(0.2)

	attack := player.Clips["Attack"]
	if attack.Finished || attack.Time == 0 {
		t.Fatalf("Attack should be mid-clip: %+v", attack)
	}

	s.Play(id, "Attack", components.LoopOnce)
	if attack.Time != 0 {
		t.Errorf("Attack play-head = %.3f, want 0", attack.Time)
	}
	if attack.Weight != 1 || attack.Fading {
		t.Errorf("restarted Attack should stay fully weighted: %+v", attack)
	}
	if !s.IsPlaying(id, "Attack") {
		t.Error("Attack should be playing after restart")
	}
}

// TestAnimationSystem_Crossfade 切换片段时交叉淡化
func TestAnimationSystem_Crossfade(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewAnimationSystem(em)
	id, player := newAnimatedEntity(t, em)

	s.Play(id, "Idle", components.LoopRepeat)
	s.Update(0.2)
	s.Play(id, "Walk", components.LoopRepeat)

	idle := player.Clips["Idle"]
	walk := player.Clips["Walk"]

	if s.CurrentClip(id) != "Walk" {
		t.Fatalf("expected current Walk, got %s", s.CurrentClip(id))
	}
	if walk.Time != 0 || walk.Weight != 0 {
		t.Errorf("Walk should start at time 0 weight 0, got time=%.2f weight=%.2f", walk.Time, walk.Weight)
	}

	// 淡化进行到一半
	s.Update(0.15)
	if math.Abs(walk.Weight-0.5) > 1e-9 || math.Abs(idle.Weight-0.5) > 1e-9 {
		t.Errorf("mid-fade weights: walk=%.3f idle=%.3f, want 0.5/0.5", walk.Weight, idle.Weight)
	}
	// 淡出中的片段依然推进时间
	if math.Abs(idle.Time-0.35) > 1e-9 {
		t.Errorf("fading-out clip should advance, got time %.3f", idle.Time)
	}

	s.Update(0.2)
	if walk.Weight != 1 || walk.Fading {
		t.Errorf("Walk should be fully faded in, weight=%.2f fading=%v", walk.Weight, walk.Fading)
	}
	if idle.Enabled || idle.Weight != 0 {
		t.Errorf("Idle should be disabled after fade-out, enabled=%v weight=%.2f", idle.Enabled, idle.Weight)
	}
	if s.IsPlaying(id, "Idle") {
		t.Error("Idle must not report playing after switching away")
	}
}

// TestAnimationSystem_OnceClip 单次片段在结束时停住并报告结束
func TestAnimationSystem_OnceClip(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewAnimationSystem(em)
	id, player := newAnimatedEntity(t, em)

	s.Play(id, "Walk", components.LoopRepeat)
	s.Play(id, "Attack", components.LoopOnce)

	s.Update(0.4)
	if !s.IsPlaying(id, "Attack") {
		t.Fatal("Attack should be playing before its duration elapses")
	}

	s.Update(0.4)
	attack := player.Clips["Attack"]
	if !attack.Finished || attack.Time != attack.Duration {
		t.Errorf("Attack should clamp at its duration: time=%.2f finished=%v", attack.Time, attack.Finished)
	}
	if s.IsPlaying(id, "Attack") {
		t.Error("finished once-clip must not report playing")
	}
	if !s.IsFinished(id) {
		t.Error("IsFinished should report the finished Attack clip")
	}

	// 结束后可以重播
	s.Play(id, "Attack", components.LoopOnce)
	if attack.Finished || attack.Time != 0 || !s.IsPlaying(id, "Attack") {
		t.Errorf("replaying a finished clip should restart it: %+v", attack)
	}
}

// TestAnimationSystem_RepeatWraps 循环片段时间回绕
func TestAnimationSystem_RepeatWraps(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewAnimationSystem(em)
	id, player := newAnimatedEntity(t, em)

	s.Play(id, "Walk", components.LoopRepeat)
	s.Update(2.25)

	walk := player.Clips["Walk"]
	if math.Abs(walk.Time-0.25) > 1e-9 {
		t.Errorf("expected wrapped time 0.25, got %.3f", walk.Time)
	}
	if walk.Finished {
		t.Error("repeating clip never finishes")
	}
}

// TestAnimationSystem_MissingClip 缺失片段被忽略
func TestAnimationSystem_MissingClip(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewAnimationSystem(em)
	id, player := newAnimatedEntity(t, em)

	s.Play(id, "Idle", components.LoopRepeat)
	s.Play(id, "Dance", components.LoopRepeat)
	s.Play(id, "Dance", components.LoopRepeat)

	if s.CurrentClip(id) != "Idle" {
		t.Errorf("missing clip must not change current, got %s", s.CurrentClip(id))
	}
	if player.MarkMissingLogged("Dance") {
		t.Error("missing clip should already be recorded as logged")
	}

	// 没有播放器的实体
	other := em.CreateEntity()
	s.Play(other, "Idle", components.LoopRepeat)
	if s.IsPlaying(other, "Idle") || s.CurrentClip(other) != "" {
		t.Error("entity without player should report nothing")
	}
}

// TestAnimationSystem_ZeroFade 淡化时长为 0 时立即切换
func TestAnimationSystem_ZeroFade(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewAnimationSystem(em)
	id, player := newAnimatedEntity(t, em)
	player.FadeDuration = 0

	s.Play(id, "Idle", components.LoopRepeat)
	s.Play(id, "Walk", components.LoopRepeat)

	if player.Clips["Idle"].Enabled {
		t.Error("Idle should be disabled immediately")
	}
	if player.Clips["Walk"].Weight != 1 {
		t.Errorf("Walk weight should be 1, got %.2f", player.Clips["Walk"].Weight)
	}
}
