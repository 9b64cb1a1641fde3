package systems

import (
	"math/rand"
	"testing"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/ecs"
	"github.com/gonewx/arena/pkg/utils"
)

// TestCollisionSystem_WouldCollide 测试水平距离判定
func TestCollisionSystem_WouldCollide(t *testing.T) {
	cs := NewCollisionSystem(ecs.NewEntityManager(), 1, 25)
	cs.Register(utils.Vec3{X: 5, Y: 0, Z: 5})

	tests := []struct {
		name      string
		candidate utils.Vec3
		radius    float64
		want      bool
	}{
		{"far away", utils.Vec3{X: -5, Z: -5}, 1, false},
		{"inside", utils.Vec3{X: 5, Z: 6}, 1, true},
		{"just inside", utils.Vec3{X: 5, Z: 6.99}, 1, true},
		{"touching is allowed", utils.Vec3{X: 5, Z: 7}, 1, false},
		{"height ignored", utils.Vec3{X: 5, Y: 10, Z: 5.5}, 1, true},
		{"larger radius", utils.Vec3{X: 8.5, Z: 5}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cs.WouldCollide(tt.candidate, tt.radius); got != tt.want {
				t.Errorf("WouldCollide(%+v, %.1f) = %v, want %v", tt.candidate, tt.radius, got, tt.want)
			}
		})
	}
}

// TestCollisionSystem_GridMatchesLinearScan 网格粗筛结果与线性扫描一致
func TestCollisionSystem_GridMatchesLinearScan(t *testing.T) {
	cs := NewCollisionSystem(ecs.NewEntityManager(), 1, 25)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 60; i++ {
		cs.Register(utils.Vec3{X: rng.Float64()*50 - 25, Z: rng.Float64()*50 - 25})
	}

	for i := 0; i < 2000; i++ {
		// 覆盖网格外的区域
		candidate := utils.Vec3{X: rng.Float64()*80 - 40, Z: rng.Float64()*80 - 40}
		radius := 0.2 + rng.Float64()*2
		grid := cs.WouldCollide(candidate, radius)
		linear := cs.LinearWouldCollide(candidate, radius)
		if grid != linear {
			t.Fatalf("mismatch at %+v r=%.2f: grid=%v linear=%v", candidate, radius, grid, linear)
		}
	}
}

// TestCollisionSystem_RegisterObstacles 从实体注册障碍物
func TestCollisionSystem_RegisterObstacles(t *testing.T) {
	em := ecs.NewEntityManager()
	for _, x := range []float64{-3, 0, 3} {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.ObstacleComponent{Kind: components.ObstacleProp})
		ecs.AddComponent(em, id, &components.TransformComponent{Position: utils.Vec3{X: x}})
	}
	// 非障碍物实体不注册
	other := em.CreateEntity()
	ecs.AddComponent(em, other, &components.TransformComponent{Position: utils.Vec3{X: 10}})

	cs := NewCollisionSystem(em, 0.5, 25)
	cs.RegisterObstacles()

	if cs.Count() != 3 {
		t.Fatalf("expected 3 obstacles, got %d", cs.Count())
	}
	if !cs.WouldCollide(utils.Vec3{X: 3.5}, 0.5) {
		t.Error("expected collision near registered obstacle")
	}
	if cs.WouldCollide(utils.Vec3{X: 10}, 0.5) {
		t.Error("non-obstacle entity must not be registered")
	}
}
