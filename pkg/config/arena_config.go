package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ArenaConfigPath 内嵌竞技场配置路径
const ArenaConfigPath = "data/arena.yaml"

// ArenaConfig 竞技场演示的全部可调参数
//
// 配置文件位置: data/arena.yaml
//
// 所有与时间相关的量都以"每秒"为单位的速率表示，
// 参考帧率（ReferenceFrameRate）只用于把原先按帧计的比例换算成速率。
type ArenaConfig struct {
	Window    WindowConfig    `yaml:"window"`
	Arena     ArenaLayout     `yaml:"arena"`
	Player    PlayerConfig    `yaml:"player"`
	Enemies   EnemyConfig     `yaml:"enemies"`
	Combat    CombatConfig    `yaml:"combat"`
	Obstacles ObstacleConfig  `yaml:"obstacles"`
	Camera    CameraConfig    `yaml:"camera"`
	Animation AnimationConfig `yaml:"animation"`
	Model     ModelConfig     `yaml:"model"`
}

// WindowConfig 窗口与帧时间
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`

	// MaxDeltaTime 单帧最大时间步长（秒），窗口拖动等卡顿后防止角色瞬移
	MaxDeltaTime float64 `yaml:"maxDeltaTime"`
}

// ArenaLayout 场地尺寸
type ArenaLayout struct {
	// HalfExtent 墙体所在位置（±HalfExtent）
	HalfExtent float64 `yaml:"halfExtent"`

	// SpawnExtent 敌人和障碍物随机生成范围（±SpawnExtent）
	SpawnExtent float64 `yaml:"spawnExtent"`

	// PropCount 场地内部障碍物数量
	PropCount int `yaml:"propCount"`

	// PropClearance 障碍物与出生点的最小水平距离
	PropClearance float64 `yaml:"propClearance"`

	// Seed 随机种子，0 表示使用当前时间
	Seed int64 `yaml:"seed"`
}

// PlayerConfig 角色控制参数
type PlayerConfig struct {
	MaxHealth int `yaml:"maxHealth"`

	// MoveSpeed 移动速度（单位/秒）
	MoveSpeed float64 `yaml:"moveSpeed"`

	// TurnFraction 每个参考帧朝目标方向逼近的比例
	TurnFraction float64 `yaml:"turnFraction"`

	// ReferenceFrameRate 参考帧率，用于把 TurnFraction 换算成速率
	ReferenceFrameRate float64 `yaml:"referenceFrameRate"`

	ColliderRadius float64 `yaml:"colliderRadius"`
	SpawnHeight    float64 `yaml:"spawnHeight"`
}

// EnemyConfig 敌人参数
type EnemyConfig struct {
	Count         int     `yaml:"count"`
	ContactRadius float64 `yaml:"contactRadius"`

	// ContactDamage 接触期间每帧造成的伤害
	ContactDamage int `yaml:"contactDamage"`

	// WanderSpeed 游荡位移速率（单位/秒）
	WanderSpeed float64 `yaml:"wanderSpeed"`

	// WanderFrequency 游荡方向的角频率（弧度/秒）
	WanderFrequency float64 `yaml:"wanderFrequency"`

	Height float64 `yaml:"height"`
}

// CombatConfig 攻击判定
type CombatConfig struct {
	StrikeRadius float64 `yaml:"strikeRadius"`
	ScorePerKill int     `yaml:"scorePerKill"`
}

// ObstacleConfig 静态障碍物
type ObstacleConfig struct {
	// Radius 所有障碍物统一的近似碰撞半径
	Radius float64 `yaml:"radius"`
}

// CameraConfig 跟随镜头
type CameraConfig struct {
	Distance float64 `yaml:"distance"`
	Height   float64 `yaml:"height"`

	// FOV 垂直视场角（度）
	FOV float64 `yaml:"fov"`
}

// AnimationConfig 动画过渡
type AnimationConfig struct {
	// FadeDuration 交叉淡入淡出时长（秒）
	FadeDuration float64 `yaml:"fadeDuration"`
}

// ModelConfig 角色模型资源与动画片段绑定
type ModelConfig struct {
	// Resource 模型清单路径（如 "data/models/human.yaml"）
	Resource string `yaml:"resource"`

	// ClipBindings 逻辑动画名 -> 模型内动画片段序号
	ClipBindings map[string]int `yaml:"clipBindings"`
}

// DefaultArenaConfig 返回与 data/arena.yaml 一致的默认配置
func DefaultArenaConfig() *ArenaConfig {
	return &ArenaConfig{
		Window: WindowConfig{
			Width:        800,
			Height:       600,
			Title:        "Arena",
			MaxDeltaTime: 0.1,
		},
		Arena: ArenaLayout{
			HalfExtent:    25,
			SpawnExtent:   20,
			PropCount:     10,
			PropClearance: 4,
		},
		Player: PlayerConfig{
			MaxHealth:          100,
			MoveSpeed:          12, // 0.2 单位/帧 @ 60Hz
			TurnFraction:       0.3,
			ReferenceFrameRate: 60,
			ColliderRadius:     1,
			SpawnHeight:        1,
		},
		Enemies: EnemyConfig{
			Count:           5,
			ContactRadius:   1.5,
			ContactDamage:   1,
			WanderSpeed:     1.2, // 0.02 单位/帧 @ 60Hz
			WanderFrequency: 1,
			Height:          1,
		},
		Combat: CombatConfig{
			StrikeRadius: 3,
			ScorePerKill: 10,
		},
		Obstacles: ObstacleConfig{
			Radius: 1,
		},
		Camera: CameraConfig{
			Distance: 20,
			Height:   10,
			FOV:      75,
		},
		Animation: AnimationConfig{
			FadeDuration: 0.3,
		},
		Model: ModelConfig{
			Resource: "data/models/human.yaml",
			ClipBindings: map[string]int{
				"Idle":   2,
				"Walk":   6,
				"Run":    5,
				"Attack": 4,
			},
		},
	}
}

// LoadArenaConfig 从磁盘加载竞技场配置
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *ArenaConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败
func LoadArenaConfig(path string) (*ArenaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read arena config: %w", err)
	}
	return ParseArenaConfig(data)
}

// ParseArenaConfig 解析 YAML 内容
// 文件中缺省的字段沿用默认值
func ParseArenaConfig(data []byte) (*ArenaConfig, error) {
	cfg := DefaultArenaConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse arena config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid arena config: %w", err)
	}

	return cfg, nil
}

// RequiredClips 控制器会请求的动画片段
var RequiredClips = []string{"Idle", "Walk", "Attack"}

// Validate 验证配置有效性
func (c *ArenaConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.MaxDeltaTime <= 0 {
		return fmt.Errorf("window.maxDeltaTime must be positive")
	}

	if c.Arena.HalfExtent <= 0 {
		return fmt.Errorf("arena.halfExtent must be positive")
	}
	if c.Arena.SpawnExtent <= 0 || c.Arena.SpawnExtent >= c.Arena.HalfExtent {
		return fmt.Errorf("arena.spawnExtent(%.1f) must be in (0, halfExtent=%.1f)",
			c.Arena.SpawnExtent, c.Arena.HalfExtent)
	}
	if c.Arena.PropCount < 0 {
		return fmt.Errorf("arena.propCount cannot be negative")
	}
	if c.Arena.PropClearance < 0 {
		return fmt.Errorf("arena.propClearance cannot be negative")
	}

	if c.Player.MaxHealth <= 0 {
		return fmt.Errorf("player.maxHealth must be positive")
	}
	if c.Player.MoveSpeed <= 0 {
		return fmt.Errorf("player.moveSpeed must be positive")
	}
	if c.Player.TurnFraction <= 0 || c.Player.TurnFraction > 1 {
		return fmt.Errorf("player.turnFraction(%.2f) must be in (0, 1]", c.Player.TurnFraction)
	}
	if c.Player.ReferenceFrameRate <= 0 {
		return fmt.Errorf("player.referenceFrameRate must be positive")
	}
	if c.Player.ColliderRadius <= 0 {
		return fmt.Errorf("player.colliderRadius must be positive")
	}

	if c.Enemies.Count < 0 {
		return fmt.Errorf("enemies.count cannot be negative")
	}
	if c.Enemies.ContactRadius <= 0 {
		return fmt.Errorf("enemies.contactRadius must be positive")
	}
	if c.Enemies.ContactDamage < 0 {
		return fmt.Errorf("enemies.contactDamage cannot be negative")
	}

	if c.Combat.StrikeRadius <= 0 {
		return fmt.Errorf("combat.strikeRadius must be positive")
	}
	if c.Combat.ScorePerKill < 0 {
		return fmt.Errorf("combat.scorePerKill cannot be negative")
	}

	if c.Obstacles.Radius <= 0 {
		return fmt.Errorf("obstacles.radius must be positive")
	}

	// 出生点周围不能有障碍物或敌人：角色不能生成在障碍物内，也不能开局即接触
	if minClear := c.Player.ColliderRadius + c.Obstacles.Radius; c.Arena.PropClearance < minClear {
		return fmt.Errorf("arena.propClearance(%.1f) must be at least player.colliderRadius + obstacles.radius (%.1f)",
			c.Arena.PropClearance, minClear)
	}
	if c.Arena.PropClearance < c.Enemies.ContactRadius {
		return fmt.Errorf("arena.propClearance(%.1f) must be at least enemies.contactRadius (%.1f)",
			c.Arena.PropClearance, c.Enemies.ContactRadius)
	}

	if c.Camera.Distance <= 0 || c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera distance must be positive and fov in (0, 180)")
	}

	if c.Animation.FadeDuration < 0 {
		return fmt.Errorf("animation.fadeDuration cannot be negative")
	}

	if c.Model.Resource == "" {
		return fmt.Errorf("model.resource is required")
	}
	for _, name := range RequiredClips {
		idx, ok := c.Model.ClipBindings[name]
		if !ok {
			return fmt.Errorf("model.clipBindings missing %q", name)
		}
		if idx < 0 {
			return fmt.Errorf("model.clipBindings[%q] cannot be negative", name)
		}
	}

	return nil
}
