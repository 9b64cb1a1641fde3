package systems

import (
	"math"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/ecs"
	"github.com/gonewx/arena/pkg/utils"
)

// CameraSystem 第三人称跟随镜头
// 镜头位于角色身后（沿视角朝向），每帧重新计算，不做平滑
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID // 镜头实体ID
}

// NewCameraSystem 创建镜头系统，同时创建镜头实体
func NewCameraSystem(em *ecs.EntityManager, distance, height, fov float64) *CameraSystem {
	cs := &CameraSystem{
		entityManager: em,
	}

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		Distance: distance,
		Height:   height,
		FOV:      fov,
		Position: utils.Vec3{Y: height, Z: distance},
	})

	return cs
}

// CameraEntity 镜头实体ID
func (cs *CameraSystem) CameraEntity() ecs.EntityID {
	return cs.cameraEntity
}

// Camera 返回镜头组件
func (cs *CameraSystem) Camera() *components.CameraComponent {
	camera, _ := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	return camera
}

// Update 根据目标角色的位置和视角朝向放置镜头
func (cs *CameraSystem) Update(target ecs.EntityID) {
	camera, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}
	transform, ok := ecs.GetComponent[*components.TransformComponent](cs.entityManager, target)
	if !ok {
		return
	}

	desired := 0.0
	if character, ok := ecs.GetComponent[*components.CharacterComponent](cs.entityManager, target); ok {
		desired = character.DesiredFacing
	}

	sin, cos := math.Sincos(desired)
	camera.Position = transform.Position.Add(utils.Vec3{
		X: camera.Distance * sin,
		Y: camera.Height,
		Z: camera.Distance * cos,
	})
	camera.LookAt = transform.Position
}
