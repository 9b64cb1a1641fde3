package game

import (
	"context"
	"errors"
	"testing"
)

func newPlayingSession(t *testing.T, maxHealth int) *Session {
	t.Helper()
	s := NewSession(maxHealth)
	if err := s.MarkLoaded(context.Background()); err != nil {
		t.Fatalf("MarkLoaded failed: %v", err)
	}
	return s
}

func TestNewSession(t *testing.T) {
	s := NewSession(100)

	if s.Phase() != PhaseLoading {
		t.Errorf("expected phase %s, got %s", PhaseLoading, s.Phase())
	}
	if s.Health() != 100 || s.MaxHealth() != 100 {
		t.Errorf("expected health 100/100, got %d/%d", s.Health(), s.MaxHealth())
	}
	if s.Score() != 0 {
		t.Errorf("expected score 0, got %d", s.Score())
	}
	if s.IsPlaying() || s.IsTerminal() {
		t.Error("loading session should be neither playing nor terminal")
	}

	other := NewSession(100)
	if s.ID == other.ID {
		t.Error("sessions should have distinct IDs")
	}
}

func TestSessionDamageBeforeLoadIsIgnored(t *testing.T) {
	s := NewSession(100)
	died, err := s.ApplyDamage(context.Background(), 50)
	if err != nil || died {
		t.Fatalf("unexpected result: died=%v err=%v", died, err)
	}
	if s.Health() != 100 {
		t.Errorf("damage before load should be ignored, health=%d", s.Health())
	}
}

func TestSessionDamageClampsAndDiesOnce(t *testing.T) {
	ctx := context.Background()
	s := newPlayingSession(t, 10)

	var notifications []int
	s.AddStatsListener(func(health, score int) {
		notifications = append(notifications, health)
	})

	for i := 0; i < 9; i++ {
		died, err := s.ApplyDamage(ctx, 1)
		if err != nil || died {
			t.Fatalf("frame %d: unexpected died=%v err=%v", i, died, err)
		}
	}
	if s.Health() != 1 {
		t.Fatalf("expected health 1, got %d", s.Health())
	}

	// 超额伤害被截断到 0
	died, err := s.ApplyDamage(ctx, 5)
	if err != nil {
		t.Fatalf("ApplyDamage failed: %v", err)
	}
	if !died {
		t.Error("expected died=true when health reaches 0")
	}
	if s.Health() != 0 {
		t.Errorf("health should clamp at 0, got %d", s.Health())
	}
	if s.Phase() != PhaseGameOver || !s.IsTerminal() {
		t.Errorf("expected terminal gameover phase, got %s", s.Phase())
	}

	// 终止后不再处理伤害
	died, err = s.ApplyDamage(ctx, 1)
	if died || err != nil {
		t.Errorf("damage after terminal should be a no-op, died=%v err=%v", died, err)
	}

	// 1 次注册推送 + 10 次变化
	if len(notifications) != 11 {
		t.Errorf("expected 11 stats notifications, got %d", len(notifications))
	}
}

func TestSessionScoreIsMonotonic(t *testing.T) {
	s := newPlayingSession(t, 100)

	if err := s.AddScore(10); err != nil {
		t.Fatalf("AddScore failed: %v", err)
	}
	if err := s.AddScore(-5); err == nil {
		t.Error("negative score delta should be rejected")
	}
	if s.Score() != 10 {
		t.Errorf("expected score 10, got %d", s.Score())
	}

	if _, err := s.ApplyDamage(context.Background(), 100); err != nil {
		t.Fatal(err)
	}
	if err := s.AddScore(10); !errors.Is(err, ErrSessionTerminal) {
		t.Errorf("expected ErrSessionTerminal after death, got %v", err)
	}
}

func TestSessionLoadFailed(t *testing.T) {
	s := NewSession(100)
	cause := errors.New("disk on fire")

	if err := s.MarkLoadFailed(context.Background(), cause); err != nil {
		t.Fatalf("MarkLoadFailed failed: %v", err)
	}
	if s.Phase() != PhaseFailed || !s.IsTerminal() {
		t.Errorf("expected failed phase, got %s", s.Phase())
	}
	if !errors.Is(s.LoadError(), cause) {
		t.Errorf("LoadError should return the cause, got %v", s.LoadError())
	}

	// 失败后不能再进入 playing
	if err := s.MarkLoaded(context.Background()); err == nil {
		t.Error("MarkLoaded after failure should return an error")
	}
}

func TestSessionAdvance(t *testing.T) {
	s := NewSession(100)
	s.Advance(0.5)
	s.Advance(0.25)
	if s.GameTime != 0.75 {
		t.Errorf("expected game time 0.75, got %f", s.GameTime)
	}
}
