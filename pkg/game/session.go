package game

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
)

// 会话阶段
const (
	PhaseLoading  = "loading"  // 等待角色模型加载
	PhasePlaying  = "playing"  // 正常游戏
	PhaseGameOver = "gameover" // 生命值耗尽（终止状态）
	PhaseFailed   = "failed"   // 模型加载失败（终止状态）
)

// 会话事件
const (
	EventModelLoaded = "model_loaded"
	EventLoadFailed  = "load_failed"
	EventDied        = "died"
)

// StatsListener 生命值或分数变化时的回调（UI 显示用）
type StatsListener func(health, score int)

// Session 一局游戏的全部共享状态
//
// 替代全局变量：输入、生命值、分数、游戏时间都挂在会话上，
// 由 ArenaScene 显式传给各个系统。会话在开局时创建，
// 终止（死亡或加载失败）后不可恢复，重开必须创建新会话。
type Session struct {
	ID uuid.UUID

	Input    InputState
	GameTime float64 // 会话内累计游戏时间（秒）

	health    int
	maxHealth int
	score     int

	phase     *fsm.FSM
	loadErr   error
	listeners []StatsListener
}

// NewSession 创建新会话，初始阶段为 loading
func NewSession(maxHealth int) *Session {
	s := &Session{
		ID:        uuid.New(),
		health:    maxHealth,
		maxHealth: maxHealth,
	}

	s.phase = fsm.NewFSM(
		PhaseLoading,
		fsm.Events{
			{Name: EventModelLoaded, Src: []string{PhaseLoading}, Dst: PhasePlaying},
			{Name: EventLoadFailed, Src: []string{PhaseLoading}, Dst: PhaseFailed},
			{Name: EventDied, Src: []string{PhasePlaying}, Dst: PhaseGameOver},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.Printf("[Session %s] %s -> %s (%s)", s.shortID(), e.Src, e.Dst, e.Event)
			},
		},
	)

	return s
}

func (s *Session) shortID() string {
	return s.ID.String()[:8]
}

// Phase 当前阶段
func (s *Session) Phase() string {
	return s.phase.Current()
}

// IsPlaying 是否处于可操作阶段
func (s *Session) IsPlaying() bool {
	return s.phase.Is(PhasePlaying)
}

// IsTerminal 会话是否已终止（死亡或加载失败）
func (s *Session) IsTerminal() bool {
	return s.phase.Is(PhaseGameOver) || s.phase.Is(PhaseFailed)
}

// Health 当前生命值，范围 [0, MaxHealth]
func (s *Session) Health() int {
	return s.health
}

// MaxHealth 最大生命值
func (s *Session) MaxHealth() int {
	return s.maxHealth
}

// Score 当前分数，只增不减
func (s *Session) Score() int {
	return s.score
}

// LoadError 加载失败的原因（仅 failed 阶段非空）
func (s *Session) LoadError() error {
	return s.loadErr
}

// AddStatsListener 注册生命值/分数变化回调，注册时立即推送一次当前值
func (s *Session) AddStatsListener(l StatsListener) {
	s.listeners = append(s.listeners, l)
	l(s.health, s.score)
}

func (s *Session) notifyStats() {
	for _, l := range s.listeners {
		l(s.health, s.score)
	}
}

// MarkLoaded 模型加载完成，进入 playing
func (s *Session) MarkLoaded(ctx context.Context) error {
	if err := s.phase.Event(ctx, EventModelLoaded); err != nil {
		return fmt.Errorf("session %s: %w", s.shortID(), err)
	}
	return nil
}

// MarkLoadFailed 模型加载失败，进入 failed 并保存原因
func (s *Session) MarkLoadFailed(ctx context.Context, cause error) error {
	s.loadErr = cause
	if err := s.phase.Event(ctx, EventLoadFailed); err != nil {
		return fmt.Errorf("session %s: %w", s.shortID(), err)
	}
	return nil
}

// ApplyDamage 扣除生命值
//
// 生命值不会低于 0；降到 0 时触发 died 转换，返回 true。
// 非 playing 阶段调用不产生任何效果，因此死亡只会被报告一次。
func (s *Session) ApplyDamage(ctx context.Context, amount int) (died bool, err error) {
	if !s.IsPlaying() || amount <= 0 {
		return false, nil
	}

	s.health -= amount
	if s.health < 0 {
		s.health = 0
	}
	s.notifyStats()

	if s.health > 0 {
		return false, nil
	}

	if err := s.phase.Event(ctx, EventDied); err != nil {
		return false, fmt.Errorf("session %s: %w", s.shortID(), err)
	}
	return true, nil
}

// AddScore 增加分数
// 负数增量会被拒绝，保证分数单调不减
func (s *Session) AddScore(delta int) error {
	if delta < 0 {
		return fmt.Errorf("score delta must not be negative: %d", delta)
	}
	if delta == 0 {
		return nil
	}
	if s.IsTerminal() {
		return ErrSessionTerminal
	}
	s.score += delta
	s.notifyStats()
	return nil
}

// Advance 推进会话游戏时间
func (s *Session) Advance(dt float64) {
	s.GameTime += dt
}
