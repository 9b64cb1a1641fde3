package entities

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/config"
	"github.com/gonewx/arena/pkg/ecs"
	"github.com/gonewx/arena/pkg/utils"
)

// TestWallPostPositions 围墙桩覆盖四条边且没有重复
func TestWallPostPositions(t *testing.T) {
	positions := WallPostPositions(25, 2)
	if len(positions) != 100 {
		t.Fatalf("expected 100 posts, got %d", len(positions))
	}

	seen := make(map[utils.Vec3]bool)
	for _, p := range positions {
		if seen[p] {
			t.Errorf("duplicate post at %+v", p)
		}
		seen[p] = true
		onEdge := math.Abs(math.Abs(p.X)-25) < 1e-9 || math.Abs(math.Abs(p.Z)-25) < 1e-9
		if !onEdge {
			t.Errorf("post %+v is not on the arena edge", p)
		}
	}

	// 间距不能超过直径，否则角色能从缝隙穿过
	odd := WallPostPositions(10, 3)
	if len(odd) != 28 {
		t.Fatalf("expected 28 posts, got %d", len(odd))
	}
	if gap := odd[2].X - odd[0].X; gap > 3 {
		t.Errorf("post spacing %.3f exceeds diameter 3", gap)
	}
}

// TestNewArena 场地搭建
func TestNewArena(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultArenaConfig()

	arena, err := NewArena(em, cfg, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("NewArena failed: %v", err)
	}

	if len(arena.Walls) != 100 {
		t.Errorf("expected 100 wall posts, got %d", len(arena.Walls))
	}
	if len(arena.Props) != cfg.Arena.PropCount {
		t.Errorf("expected %d props, got %d", cfg.Arena.PropCount, len(arena.Props))
	}

	for _, id := range arena.Props {
		transform, ok := ecs.GetComponent[*components.TransformComponent](em, id)
		if !ok {
			t.Fatalf("prop %d has no transform", id)
		}
		p := transform.Position
		if math.Abs(p.X) > cfg.Arena.SpawnExtent || math.Abs(p.Z) > cfg.Arena.SpawnExtent {
			t.Errorf("prop %+v outside spawn extent", p)
		}
		if p.HorizontalDistanceTo(utils.Vec3{}) < cfg.Arena.PropClearance {
			t.Errorf("prop %+v too close to spawn point", p)
		}
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](em, id)
		if obstacle.Kind != components.ObstacleProp {
			t.Errorf("prop %d has kind %v", id, obstacle.Kind)
		}
	}

	if got := len(ecs.GetEntitiesWith1[*components.ObstacleComponent](em)); got != 110 {
		t.Errorf("expected 110 obstacle entities, got %d", got)
	}
}

// TestNewArena_Deterministic 相同种子生成相同场地
func TestNewArena_Deterministic(t *testing.T) {
	cfg := config.DefaultArenaConfig()

	layout := func() []utils.Vec3 {
		em := ecs.NewEntityManager()
		arena, err := NewArena(em, cfg, rand.New(rand.NewSource(7)))
		if err != nil {
			t.Fatal(err)
		}
		var out []utils.Vec3
		for _, id := range arena.Props {
			tc, _ := ecs.GetComponent[*components.TransformComponent](em, id)
			out = append(out, tc.Position)
		}
		return out
	}

	a, b := layout(), layout()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("prop %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// TestNewArena_ImpossibleClearance 无法满足的间距返回错误
func TestNewArena_ImpossibleClearance(t *testing.T) {
	cfg := config.DefaultArenaConfig()
	cfg.Arena.PropClearance = 100

	if _, err := NewArena(ecs.NewEntityManager(), cfg, rand.New(rand.NewSource(1))); err == nil {
		t.Error("expected error when clearance cannot be satisfied")
	}
	if _, err := NewArena(nil, cfg, rand.New(rand.NewSource(1))); err == nil {
		t.Error("expected error for nil entity manager")
	}
}
