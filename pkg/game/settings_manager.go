package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// KeyBindings 按键绑定，按键名使用 ebiten.Key.String() 的写法（如 "W"、"ArrowUp"、"Space"）
//
// ebiten 的按键按物理位置命名，默认的 W/A/S/D 在 AZERTY 键盘上就是 Z/Q/S/D。
type KeyBindings struct {
	Forward []string `yaml:"forward"`
	Back    []string `yaml:"back"`
	Left    []string `yaml:"left"`
	Right   []string `yaml:"right"`
	Attack  []string `yaml:"attack"`
	Restart []string `yaml:"restart"`
}

// GameSettings 玩家偏好设置
// 只保存偏好，不保存任何对局状态
type GameSettings struct {
	Bindings KeyBindings `yaml:"bindings"`

	// LookSensitivity 视角输入倍率，1.0 表示指针横跨整个窗口对应 [-1, 1]
	LookSensitivity float64 `yaml:"lookSensitivity"`

	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		Bindings: KeyBindings{
			Forward: []string{"W", "ArrowUp"},
			Back:    []string{"S", "ArrowDown"},
			Left:    []string{"A", "ArrowLeft"},
			Right:   []string{"D", "ArrowRight"},
			Attack:  []string{"Space"},
			Restart: []string{"Enter"},
		},
		LookSensitivity: 1.0,
		Fullscreen:      false,
	}
}

// SettingsManager 设置管理器
// 负责偏好设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "preferences"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 加载失败不是致命错误，使用默认设置
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或设置不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，文件里缺失的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded.LookSensitivity <= 0 {
		loaded.LookSensitivity = 1.0
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetLookSensitivity 设置视角倍率，限制在 [0.1, 5]
// 仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetLookSensitivity(v float64) {
	if v < 0.1 {
		v = 0.1
	} else if v > 5 {
		v = 5
	}
	sm.settings.LookSensitivity = v
}

// SetFullscreen 设置全屏模式
// 仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}
