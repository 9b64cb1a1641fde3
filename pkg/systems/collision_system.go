package systems

import (
	"log"
	"math"

	"github.com/solarlune/resolv"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/ecs"
	"github.com/gonewx/arena/pkg/utils"
)

const (
	obstacleTag = "obstacle"
	probeTag    = "probe"

	// gridMarginCells 网格在墙体外额外保留的格数
	gridMarginCells = 2

	// cellPad resolv 按像素计算占用格子（右下边界减 1），宽高各补 1 保证粗筛不漏
	cellPad = 1.0
)

// CollisionSystem 静态障碍物索引
//
// 所有障碍物共用一个近似半径。判定在水平面（XZ）上进行：
// 候选位置与任一障碍物的距离小于 radius + obstacleRadius 即视为碰撞。
//
// 墙体由一排排桩组成，障碍物数量在百个左右，因此用 resolv 的网格做粗筛，
// 再对同格障碍物做精确距离判定。网格外的查询退回线性扫描，结果与线性扫描一致。
type CollisionSystem struct {
	entityManager  *ecs.EntityManager
	obstacleRadius float64

	space  *resolv.Space
	probe  *resolv.Object
	offset float64 // 世界坐标 -> 网格坐标的平移量

	obstacles []utils.Vec3
}

// NewCollisionSystem 创建碰撞索引
//
// 参数:
//   - em: 实体管理器
//   - obstacleRadius: 障碍物统一碰撞半径
//   - halfExtent: 场地半宽（墙体位置），决定网格覆盖范围
func NewCollisionSystem(em *ecs.EntityManager, obstacleRadius, halfExtent float64) *CollisionSystem {
	cell := int(math.Ceil(obstacleRadius * 2))
	if cell < 1 {
		cell = 1
	}
	offset := halfExtent + float64(gridMarginCells*cell)
	size := int(math.Ceil(offset * 2))

	space := resolv.NewSpace(size, size, cell, cell)
	probe := resolv.NewObject(0, 0, 1, 1, probeTag)
	space.Add(probe)

	return &CollisionSystem{
		entityManager:  em,
		obstacleRadius: obstacleRadius,
		space:          space,
		probe:          probe,
		offset:         offset,
	}
}

// ObstacleRadius 障碍物统一碰撞半径
func (s *CollisionSystem) ObstacleRadius() float64 {
	return s.obstacleRadius
}

// Count 已注册障碍物数量
func (s *CollisionSystem) Count() int {
	return len(s.obstacles)
}

// Register 注册一个静态障碍物
// 注册后不能移除或移动
func (s *CollisionSystem) Register(pos utils.Vec3) {
	d := s.obstacleRadius * 2
	obj := resolv.NewObject(pos.X+s.offset-s.obstacleRadius, pos.Z+s.offset-s.obstacleRadius, d+cellPad, d+cellPad, obstacleTag)
	obj.Data = len(s.obstacles)
	s.space.Add(obj)
	s.obstacles = append(s.obstacles, pos)
}

// RegisterObstacles 把实体管理器中所有障碍物实体注册到索引
// 场地搭建完成后调用一次
func (s *CollisionSystem) RegisterObstacles() {
	entities := ecs.GetEntitiesWith2[*components.ObstacleComponent, *components.TransformComponent](s.entityManager)
	for _, id := range entities {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		s.Register(transform.Position)
	}
	log.Printf("[CollisionSystem] 注册 %d 个障碍物 (半径 %.2f)", len(s.obstacles), s.obstacleRadius)
}

// WouldCollide 候选位置是否落在任一障碍物的碰撞范围内
func (s *CollisionSystem) WouldCollide(candidate utils.Vec3, radius float64) bool {
	gx := candidate.X + s.offset - radius
	gy := candidate.Z + s.offset - radius
	extent := s.offset * 2
	size := radius*2 + cellPad
	if gx < 0 || gy < 0 || gx+size > extent || gy+size > extent {
		return s.LinearWouldCollide(candidate, radius)
	}

	s.probe.X = gx
	s.probe.Y = gy
	s.probe.W = size
	s.probe.H = size
	s.probe.Update()

	hit := s.probe.Check(0, 0, obstacleTag)
	if hit == nil {
		return false
	}
	for _, obj := range hit.Objects {
		idx, ok := obj.Data.(int)
		if !ok {
			continue
		}
		if s.overlaps(s.obstacles[idx], candidate, radius) {
			return true
		}
	}
	return false
}

// LinearWouldCollide 逐个检查所有障碍物，结果与 WouldCollide 相同
func (s *CollisionSystem) LinearWouldCollide(candidate utils.Vec3, radius float64) bool {
	for _, pos := range s.obstacles {
		if s.overlaps(pos, candidate, radius) {
			return true
		}
	}
	return false
}

func (s *CollisionSystem) overlaps(obstacle, candidate utils.Vec3, radius float64) bool {
	return obstacle.HorizontalDistanceTo(candidate) < radius+s.obstacleRadius
}
