package scenes

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/config"
	"github.com/gonewx/arena/pkg/ecs"
	"github.com/gonewx/arena/pkg/entities"
	"github.com/gonewx/arena/pkg/game"
	"github.com/gonewx/arena/pkg/systems"
	"github.com/gonewx/arena/pkg/utils"
)

// RestartSource 提供"重新开始"按键的输入源（可选）
type RestartSource interface {
	RestartRequested() bool
}

// ArenaSceneOptions ArenaScene 的依赖
type ArenaSceneOptions struct {
	Config *config.ArenaConfig
	Loader game.ModelLoader
	Input  game.InputSource

	// SceneManager 为空时（无窗口模拟）不切换结束场景
	SceneManager *game.SceneManager

	ScreenWidth  int
	ScreenHeight int
}

// ArenaScene 一局游戏：场地、敌人、玩家角色和每帧的游戏循环
//
// 每帧顺序固定：
//  1. 推进动画时间
//  2. 轮询输入
//  3. 模型未加载：检查异步加载结果后返回
//  4. 角色控制器（移动、转身、动画选择）
//  5. 攻击边沿事件 -> 攻击判定、加分
//  6. 敌人游荡与接触伤害
//  7. 终止检查（生命值为 0 -> 结束场景，不再更新）
//  8. 镜头跟随；渲染在 Draw 中进行
type ArenaScene struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg          *config.ArenaConfig
	sceneManager *game.SceneManager
	session      *game.Session
	input        game.InputSource

	entityManager *ecs.EntityManager
	animation     *systems.AnimationSystem
	collision     *systems.CollisionSystem
	controller    *systems.CharacterControllerSystem
	combat        *systems.CombatSystem
	enemies       *systems.EnemySystem
	camera        *systems.CameraSystem
	render        *systems.RenderSystem
	hud           *systems.HUDSystem

	player ecs.EntityID
	loadCh <-chan game.ModelLoadResult

	screenWidth  int
	screenHeight int
	ended        bool
}

// NewArenaScene 创建新会话并搭建场地，同时在后台开始加载角色模型
func NewArenaScene(opts ArenaSceneOptions) (*ArenaScene, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("arena config cannot be nil")
	}
	if opts.Loader == nil {
		return nil, fmt.Errorf("model loader cannot be nil")
	}
	if opts.Input == nil {
		return nil, fmt.Errorf("input source cannot be nil")
	}
	cfg := opts.Config

	seed := cfg.Arena.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	em := ecs.NewEntityManager()
	if _, err := entities.NewArena(em, cfg, rng); err != nil {
		return nil, fmt.Errorf("failed to build arena: %w", err)
	}
	if _, err := entities.SpawnEnemies(em, cfg, rng); err != nil {
		return nil, fmt.Errorf("failed to spawn enemies: %w", err)
	}

	collision := systems.NewCollisionSystem(em, cfg.Obstacles.Radius, cfg.Arena.HalfExtent)
	collision.RegisterObstacles()
	animation := systems.NewAnimationSystem(em)
	session := game.NewSession(cfg.Player.MaxHealth)

	ctx, cancel := context.WithCancel(context.Background())
	s := &ArenaScene{
		ctx:           ctx,
		cancel:        cancel,
		cfg:           cfg,
		sceneManager:  opts.SceneManager,
		session:       session,
		input:         opts.Input,
		entityManager: em,
		animation:     animation,
		collision:     collision,
		controller:    systems.NewCharacterControllerSystem(em, collision, animation),
		combat:        systems.NewCombatSystem(em, cfg.Combat.StrikeRadius, cfg.Combat.ScorePerKill),
		enemies: systems.NewEnemySystem(em, cfg.Enemies.WanderSpeed, cfg.Enemies.WanderFrequency,
			cfg.Arena.SpawnExtent, cfg.Enemies.ContactDamage),
		camera:       systems.NewCameraSystem(em, cfg.Camera.Distance, cfg.Camera.Height, cfg.Camera.FOV),
		render:       systems.NewRenderSystem(em, cfg.Arena.HalfExtent),
		hud:          systems.NewHUDSystem(session),
		screenWidth:  opts.ScreenWidth,
		screenHeight: opts.ScreenHeight,
	}

	s.loadCh = game.LoadModelAsync(ctx, opts.Loader, cfg.Model.Resource)
	log.Printf("[ArenaScene] 会话 %s 开始 (seed=%d)，加载模型 %s", session.ID, seed, cfg.Model.Resource)
	return s, nil
}

// Session 当前会话
func (s *ArenaScene) Session() *game.Session {
	return s.session
}

// EntityManager 实体管理器
func (s *ArenaScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Player 玩家实体，模型加载完成前为 ecs.InvalidEntity
func (s *ArenaScene) Player() ecs.EntityID {
	return s.player
}

// PlayerTransform 玩家位置和朝向，未加载时返回 false
func (s *ArenaScene) PlayerTransform() (*components.TransformComponent, bool) {
	return ecs.GetComponent[*components.TransformComponent](s.entityManager, s.player)
}

// EnemiesLeft 存活敌人数量
func (s *ArenaScene) EnemiesLeft() int {
	return len(ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager))
}

// CurrentAnimation 玩家当前动画片段
func (s *ArenaScene) CurrentAnimation() string {
	return s.animation.CurrentClip(s.player)
}

// Update 推进一帧
func (s *ArenaScene) Update(deltaTime float64) {
	if s.ended {
		return
	}

	s.animation.Update(deltaTime)
	s.input.Poll(&s.session.Input)

	if s.player == ecs.InvalidEntity {
		// 加载期间的攻击不保留到开局
		s.session.Input.ConsumeAttack()
		s.pollModel()
		return
	}

	s.session.Advance(deltaTime)
	if err := s.step(deltaTime); err != nil {
		log.Printf("[ArenaScene] 帧更新失败: %v", err)
	}

	if s.session.IsTerminal() {
		s.endSession()
		return
	}

	s.camera.Update(s.player)
	s.entityManager.RemoveMarkedEntities()
}

// step 角色、攻击、敌人
func (s *ArenaScene) step(dt float64) error {
	attack := s.session.Input.ConsumeAttack()
	s.controller.Update(s.player, &s.session.Input, attack, dt)

	if attack {
		transform, _ := s.PlayerTransform()
		result := s.combat.ResolveAttack(transform.Position)
		if err := s.session.AddScore(result.ScoreDelta); err != nil {
			return fmt.Errorf("add score: %w", err)
		}
	}

	if _, err := s.enemies.Update(s.ctx, s.session, s.player, dt); err != nil {
		return fmt.Errorf("enemy update: %w", err)
	}
	return nil
}

// pollModel 非阻塞地检查异步加载结果
func (s *ArenaScene) pollModel() {
	select {
	case res, ok := <-s.loadCh:
		if !ok {
			return
		}
		s.applyModel(res)
	default:
	}
}

// AwaitModel 阻塞等待模型加载完成（无窗口模拟和测试使用）
func (s *ArenaScene) AwaitModel(ctx context.Context) error {
	if s.player != ecs.InvalidEntity {
		return nil
	}
	select {
	case res, ok := <-s.loadCh:
		if !ok {
			return s.session.LoadError()
		}
		s.applyModel(res)
		if s.session.IsTerminal() {
			return s.session.LoadError()
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ArenaScene) applyModel(res game.ModelLoadResult) {
	if res.Err != nil {
		s.failLoad(res.Err)
		return
	}

	player, err := entities.NewPlayerEntity(s.entityManager, res.Model, s.cfg)
	if err != nil {
		s.failLoad(err)
		return
	}
	if err := s.session.MarkLoaded(s.ctx); err != nil {
		log.Printf("[ArenaScene] %v", err)
		return
	}

	s.player = player
	s.animation.Play(player, systems.ClipIdle, components.LoopRepeat)
	s.camera.Update(player)
}

func (s *ArenaScene) failLoad(err error) {
	log.Printf("[ArenaScene] 模型加载失败: %v", err)
	if markErr := s.session.MarkLoadFailed(s.ctx, err); markErr != nil {
		log.Printf("[ArenaScene] %v", markErr)
	}
	s.endSession()
}

// endSession 会话终止后切换到对应的结束场景
func (s *ArenaScene) endSession() {
	if s.ended {
		return
	}
	s.ended = true

	restart, _ := s.input.(RestartSource)
	if s.session.Phase() == game.PhaseFailed {
		log.Printf("[ArenaScene] 会话 %s 加载失败", s.session.ID)
		if s.sceneManager != nil {
			s.sceneManager.SwitchTo(NewLoadErrorScene(s.sceneManager, restart, s.session.LoadError()))
		}
		return
	}

	log.Printf("[ArenaScene] 会话 %s 结束，得分 %d", s.session.ID, s.session.Score())
	if s.sceneManager != nil {
		s.sceneManager.SwitchTo(NewGameOverScene(s.sceneManager, restart, s.session.Score(), s.EnemiesLeft()))
	}
}

// Ended 会话是否已经结束
func (s *ArenaScene) Ended() bool {
	return s.ended
}

// Close 停止后台加载
func (s *ArenaScene) Close() {
	s.cancel()
}

// Draw 渲染场景和 HUD
func (s *ArenaScene) Draw(screen *ebiten.Image) {
	s.render.Draw(screen, s.camera.Camera())

	status := ""
	if s.player == ecs.InvalidEntity {
		status = "Loading model..."
	} else if tc, ok := s.PlayerTransform(); ok {
		status = fmt.Sprintf("Enemies: %d  Pos: %.1f, %.1f  Facing: %.0f°",
			s.EnemiesLeft(), tc.Position.X, tc.Position.Z, utils.WrapAngle(tc.Facing)*180/math.Pi)
	}
	s.hud.Draw(screen, status)
}
