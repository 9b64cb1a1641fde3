package systems

import (
	"context"
	"log"
	"math"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/ecs"
	"github.com/gonewx/arena/pkg/game"
	"github.com/gonewx/arena/pkg/utils"
)

// EnemySystem 游荡敌人
//
// 游荡：位移 = (sin(t·f + phase), 0, cos(t·f + phase)) · speed · dt，
// t 为会话游戏时间，phase 为每个敌人固定的相位，结果限制在生成范围内。
// 接触：与玩家距离小于接触半径的每个敌人每帧造成一次伤害。
type EnemySystem struct {
	entityManager *ecs.EntityManager

	wanderSpeed     float64
	wanderFrequency float64
	spawnExtent     float64
	contactDamage   int
}

// NewEnemySystem 创建敌人系统
func NewEnemySystem(em *ecs.EntityManager, wanderSpeed, wanderFrequency, spawnExtent float64, contactDamage int) *EnemySystem {
	return &EnemySystem{
		entityManager:   em,
		wanderSpeed:     wanderSpeed,
		wanderFrequency: wanderFrequency,
		spawnExtent:     spawnExtent,
		contactDamage:   contactDamage,
	}
}

// Update 推进所有敌人并结算接触伤害
//
// 参数:
//   - ctx: 传给会话状态机
//   - session: 当前会话，提供游戏时间并接收伤害
//   - player: 玩家实体
//   - dt: 帧时间（秒）
//
// 返回:
//   - int: 本帧处于接触状态的敌人数
//   - error: 会话状态转换失败
func (s *EnemySystem) Update(ctx context.Context, session *game.Session, player ecs.EntityID, dt float64) (int, error) {
	enemies := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.TransformComponent](s.entityManager)

	t := session.GameTime * s.wanderFrequency
	for _, id := range enemies {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		sin, cos := math.Sincos(t + enemy.Phase)
		step := s.wanderSpeed * dt
		transform.Position.X = utils.Clamp(transform.Position.X+sin*step, -s.spawnExtent, s.spawnExtent)
		transform.Position.Z = utils.Clamp(transform.Position.Z+cos*step, -s.spawnExtent, s.spawnExtent)
	}

	playerTransform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, player)
	if !ok {
		return 0, nil
	}

	contacts := 0
	for _, id := range enemies {
		if session.IsTerminal() {
			break
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if transform.Position.DistanceTo(playerTransform.Position) >= enemy.ContactRadius {
			continue
		}

		contacts++
		died, err := session.ApplyDamage(ctx, s.contactDamage)
		if err != nil {
			return contacts, err
		}
		if died {
			log.Printf("[EnemySystem] 敌人 %d 造成致命伤害", id)
		}
	}

	return contacts, nil
}
