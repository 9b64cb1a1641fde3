package entities

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/config"
	"github.com/gonewx/arena/pkg/ecs"
	"github.com/gonewx/arena/pkg/utils"
)

const (
	// EnemyWidth 敌人方块边长
	EnemyWidth = 1.0

	// maxPlacementAttempts 随机放置的最大尝试次数
	maxPlacementAttempts = 1000
)

// EnemyColor 敌人颜色
var EnemyColor = color.RGBA{R: 0xff, A: 0xff}

// NewEnemyEntity 创建一个游荡敌人
//
// 参数:
//   - em: 实体管理器
//   - pos: 中心位置
//   - phase: 游荡相位（弧度）
//   - cfg: 敌人配置
func NewEnemyEntity(em *ecs.EntityManager, pos utils.Vec3, phase float64, cfg config.EnemyConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.EnemyComponent{
		Phase:         phase,
		ContactRadius: cfg.ContactRadius,
	})
	ecs.AddComponent(em, entityID, &components.TransformComponent{Position: pos})
	ecs.AddComponent(em, entityID, &components.RenderableComponent{
		Shape:  components.ShapeBox,
		Color:  EnemyColor,
		Width:  EnemyWidth,
		Height: cfg.Height * 2,
	})
	return entityID, nil
}

// SpawnEnemies 在 ±spawnExtent 范围内随机生成 cfg.Enemies.Count 个敌人
// 与出生点保持 propClearance 的距离，避免开局即接触
func SpawnEnemies(em *ecs.EntityManager, cfg *config.ArenaConfig, rng *rand.Rand) ([]ecs.EntityID, error) {
	ids := make([]ecs.EntityID, 0, cfg.Enemies.Count)
	for i := 0; i < cfg.Enemies.Count; i++ {
		pos, err := randomPosition(rng, cfg.Arena.SpawnExtent, cfg.Enemies.Height, cfg.Arena.PropClearance)
		if err != nil {
			return ids, fmt.Errorf("enemy %d: %w", i, err)
		}
		id, err := NewEnemyEntity(em, pos, rng.Float64()*2*math.Pi, cfg.Enemies)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// randomPosition 在 ±extent 的正方形内取一个与原点水平距离不小于 clearance 的点
func randomPosition(rng *rand.Rand, extent, height, clearance float64) (utils.Vec3, error) {
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		pos := utils.Vec3{
			X: (rng.Float64()*2 - 1) * extent,
			Y: height,
			Z: (rng.Float64()*2 - 1) * extent,
		}
		if pos.HorizontalDistanceTo(utils.Vec3{}) >= clearance {
			return pos, nil
		}
	}
	return utils.Vec3{}, fmt.Errorf("no position within ±%.1f keeps %.1f clearance", extent, clearance)
}
