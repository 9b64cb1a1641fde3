package entities

import (
	"fmt"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/config"
	"github.com/gonewx/arena/pkg/ecs"
	"github.com/gonewx/arena/pkg/game"
	"github.com/gonewx/arena/pkg/utils"
)

// NewPlayerEntity 根据加载完成的模型创建玩家角色
// 角色出生在场地中心，朝向 0
//
// 参数:
//   - em: 实体管理器
//   - model: 已加载的模型
//   - cfg: 竞技场配置（移动参数、动画片段绑定）
//
// 返回:
//   - ecs.EntityID: 玩家实体ID
//   - error: 片段绑定失败（序号越界）时返回错误，不会创建半初始化的实体
func NewPlayerEntity(em *ecs.EntityManager, model *game.Model, cfg *config.ArenaConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if model == nil {
		return 0, fmt.Errorf("model cannot be nil")
	}

	clips, err := model.BindClips(cfg.Model.ClipBindings)
	if err != nil {
		return 0, fmt.Errorf("failed to bind animation clips: %w", err)
	}

	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.PlayerComponent{
		MeshName: model.Mesh.Name,
	})
	ecs.AddComponent(em, entityID, &components.TransformComponent{
		Position: utils.Vec3{Y: cfg.Player.SpawnHeight},
	})
	ecs.AddComponent(em, entityID, &components.CharacterComponent{
		MoveSpeed:          cfg.Player.MoveSpeed,
		TurnFraction:       cfg.Player.TurnFraction,
		ReferenceFrameRate: cfg.Player.ReferenceFrameRate,
		ColliderRadius:     cfg.Player.ColliderRadius,
	})
	ecs.AddComponent(em, entityID, components.NewAnimationPlayerComponent(clips, cfg.Animation.FadeDuration))
	ecs.AddComponent(em, entityID, &components.RenderableComponent{
		Shape:  components.ShapeCapsule,
		Color:  model.Mesh.Color,
		Width:  model.Mesh.Radius * 2,
		Height: model.Mesh.Height,
	})

	return entityID, nil
}
