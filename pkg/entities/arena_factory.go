package entities

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/config"
	"github.com/gonewx/arena/pkg/ecs"
	"github.com/gonewx/arena/pkg/utils"
)

const (
	// WallHeight 围墙高度
	WallHeight = 5.0

	// PropHeight 场地障碍物高度
	PropHeight = 4.0
)

var (
	wallColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	propColor = color.RGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 0xff}
)

// Arena 场地搭建结果
type Arena struct {
	Walls []ecs.EntityID
	Props []ecs.EntityID
}

// NewObstacleEntity 创建静态障碍物
func NewObstacleEntity(em *ecs.EntityManager, pos utils.Vec3, kind components.ObstacleKind, width float64) ecs.EntityID {
	height, clr := WallHeight, wallColor
	if kind == components.ObstacleProp {
		height, clr = PropHeight, propColor
	}

	pos.Y = height / 2
	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.ObstacleComponent{Kind: kind})
	ecs.AddComponent(em, entityID, &components.TransformComponent{Position: pos})
	ecs.AddComponent(em, entityID, &components.RenderableComponent{
		Shape:  components.ShapeBox,
		Color:  clr,
		Width:  width,
		Height: height,
	})
	return entityID
}

// NewArena 搭建场地：四面围墙 + 随机障碍物
//
// 围墙是位于 ±halfExtent 的一排排桩，间距为障碍物直径，保证角色无法穿过。
// 障碍物在 ±spawnExtent 内随机放置，与出生点保持 propClearance 距离。
func NewArena(em *ecs.EntityManager, cfg *config.ArenaConfig, rng *rand.Rand) (*Arena, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}

	arena := &Arena{}
	diameter := cfg.Obstacles.Radius * 2

	for _, pos := range WallPostPositions(cfg.Arena.HalfExtent, diameter) {
		arena.Walls = append(arena.Walls, NewObstacleEntity(em, pos, components.ObstacleWall, diameter))
	}

	for i := 0; i < cfg.Arena.PropCount; i++ {
		pos, err := randomPosition(rng, cfg.Arena.SpawnExtent, 0, cfg.Arena.PropClearance)
		if err != nil {
			return nil, fmt.Errorf("prop %d: %w", i, err)
		}
		arena.Props = append(arena.Props, NewObstacleEntity(em, pos, components.ObstacleProp, diameter))
	}

	log.Printf("[Arena] 围墙桩 %d 个，障碍物 %d 个", len(arena.Walls), len(arena.Props))
	return arena, nil
}

// WallPostPositions 计算围墙桩位置（水平面，Y=0）
// 四个角只放一次
func WallPostPositions(halfExtent, spacing float64) []utils.Vec3 {
	n := int(math.Ceil(2 * halfExtent / spacing))
	step := 2 * halfExtent / float64(n)

	positions := make([]utils.Vec3, 0, 4*n)
	for i := 0; i <= n; i++ {
		v := -halfExtent + float64(i)*step
		positions = append(positions,
			utils.Vec3{X: v, Z: -halfExtent},
			utils.Vec3{X: v, Z: halfExtent},
		)
	}
	for i := 1; i < n; i++ {
		v := -halfExtent + float64(i)*step
		positions = append(positions,
			utils.Vec3{X: -halfExtent, Z: v},
			utils.Vec3{X: halfExtent, Z: v},
		)
	}
	return positions
}
