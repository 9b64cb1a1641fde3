package systems

import (
	"log"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/ecs"
	"github.com/gonewx/arena/pkg/utils"
)

// AttackResult 一次攻击判定的结果
type AttackResult struct {
	Defeated   []ecs.EntityID // 被击败的敌人（按 EntityID 升序）
	ScoreDelta int
}

// CombatSystem 攻击判定
//
// 每次攻击边沿事件调用一次 ResolveAttack：先对敌人集合取快照，
// 收集打击范围内的全部敌人，再统一销毁。遍历期间集合不变，不会漏判。
type CombatSystem struct {
	entityManager *ecs.EntityManager
	strikeRadius  float64
	scorePerKill  int
}

// NewCombatSystem 创建攻击判定系统
func NewCombatSystem(em *ecs.EntityManager, strikeRadius float64, scorePerKill int) *CombatSystem {
	return &CombatSystem{
		entityManager: em,
		strikeRadius:  strikeRadius,
		scorePerKill:  scorePerKill,
	}
}

// ResolveAttack 以 center 为中心结算一次攻击
// 距离严格小于打击半径的敌人被移除，每个加 scorePerKill 分
func (s *CombatSystem) ResolveAttack(center utils.Vec3) AttackResult {
	enemies := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.TransformComponent](s.entityManager)

	var result AttackResult
	for _, id := range enemies {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if transform.Position.DistanceTo(center) < s.strikeRadius {
			result.Defeated = append(result.Defeated, id)
		}
	}

	for _, id := range result.Defeated {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()

	result.ScoreDelta = len(result.Defeated) * s.scorePerKill
	if len(result.Defeated) > 0 {
		log.Printf("[CombatSystem] 击败 %d 个敌人 (+%d)", len(result.Defeated), result.ScoreDelta)
	}
	return result
}
