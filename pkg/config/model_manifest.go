package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ModelManifest 角色模型清单
//
// 描述一个带骨骼动画的模型：网格外观 + 按序号排列的动画片段。
// 清单只携带渲染和动画系统需要的元数据，不包含骨骼数据本身。
//
// 示例（data/models/human.yaml）:
//
//	mesh:
//	  name: human
//	  height: 2
//	  radius: 0.5
//	clips:
//	  - name: Death
//	    duration: 1.2
type ModelManifest struct {
	Mesh  MeshDef   `yaml:"mesh"`
	Clips []ClipDef `yaml:"clips"`
}

// MeshDef 网格外观
type MeshDef struct {
	Name   string  `yaml:"name"`
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`

	// Color 十六进制颜色，如 "#3a7bd5"
	Color string `yaml:"color"`
}

// ClipDef 动画片段定义，数组下标即片段序号
type ClipDef struct {
	Name     string  `yaml:"name"`
	Duration float64 `yaml:"duration"`
}

// ParseModelManifest 解析并验证模型清单
func ParseModelManifest(data []byte) (*ModelManifest, error) {
	var manifest ModelManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse model manifest: %w", err)
	}

	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model manifest: %w", err)
	}

	return &manifest, nil
}

// Validate 验证清单
func (m *ModelManifest) Validate() error {
	if m.Mesh.Name == "" {
		return fmt.Errorf("mesh.name is required")
	}
	if m.Mesh.Height <= 0 || m.Mesh.Radius <= 0 {
		return fmt.Errorf("mesh %q must have positive height and radius", m.Mesh.Name)
	}
	if len(m.Clips) == 0 {
		return fmt.Errorf("mesh %q has no animation clips", m.Mesh.Name)
	}
	for i, clip := range m.Clips {
		if clip.Duration <= 0 {
			return fmt.Errorf("clip #%d (%s) must have positive duration", i, clip.Name)
		}
	}
	return nil
}
