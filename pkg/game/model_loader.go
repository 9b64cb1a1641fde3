package game

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/gonewx/arena/pkg/config"
)

// Mesh 模型外观（对渲染器而言是不透明数据）
type Mesh struct {
	Name   string
	Height float64
	Radius float64
	Color  color.RGBA
}

// AnimationClip 模型中的一个动画片段
type AnimationClip struct {
	Index    int
	Name     string
	Duration float64
}

// Model 加载完成的角色模型：网格 + 按序号排列的动画片段
type Model struct {
	ID    string
	Mesh  Mesh
	Clips []AnimationClip
}

// BindClips 按配置把逻辑动画名绑定到模型片段
//
// 参数:
//   - bindings: 逻辑名 -> 片段序号（如 Idle -> 2）
//
// 返回:
//   - map[string]float64: 逻辑名 -> 片段时长
//   - error: 序号超出范围时返回 ErrClipIndexOutOfRange
func (m *Model) BindClips(bindings map[string]int) (map[string]float64, error) {
	clips := make(map[string]float64, len(bindings))
	for name, idx := range bindings {
		if idx < 0 || idx >= len(m.Clips) {
			return nil, fmt.Errorf("model %s: binding %q -> #%d (%d clips): %w",
				m.ID, name, idx, len(m.Clips), ErrClipIndexOutOfRange)
		}
		clips[name] = m.Clips[idx].Duration
	}
	return clips, nil
}

// ModelLoader 模型加载器
// 加载失败必须返回错误，不能返回半初始化的模型
type ModelLoader interface {
	Load(ctx context.Context, id string) (*Model, error)
}

// ManifestModelLoader 从文件系统读取 YAML 模型清单
type ManifestModelLoader struct {
	fsys fs.FS
}

// NewManifestModelLoader 创建清单加载器
// fsys 通常是内嵌资源（embedded.FS()）或 os.DirFS(".")
func NewManifestModelLoader(fsys fs.FS) *ManifestModelLoader {
	return &ManifestModelLoader{fsys: fsys}
}

// Load 读取并解析模型清单
func (l *ManifestModelLoader) Load(ctx context.Context, id string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := strings.TrimPrefix(path.Clean(id), "./")
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load model %s: %w", id, ErrModelNotFound)
		}
		return nil, fmt.Errorf("load model %s: %w", id, err)
	}

	manifest, err := config.ParseModelManifest(data)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", id, err)
	}

	meshColor, err := parseHexColor(manifest.Mesh.Color)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", id, err)
	}

	model := &Model{
		ID: id,
		Mesh: Mesh{
			Name:   manifest.Mesh.Name,
			Height: manifest.Mesh.Height,
			Radius: manifest.Mesh.Radius,
			Color:  meshColor,
		},
		Clips: make([]AnimationClip, len(manifest.Clips)),
	}
	for i, clip := range manifest.Clips {
		model.Clips[i] = AnimationClip{Index: i, Name: clip.Name, Duration: clip.Duration}
	}

	log.Printf("[ModelLoader] 加载模型 %s: mesh=%s, %d 个动画片段", id, model.Mesh.Name, len(model.Clips))
	return model, nil
}

// parseHexColor 解析 "#rrggbb"，空字符串返回白色
func parseHexColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}, nil
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// ModelLoadResult 异步加载结果，Model 和 Err 有且只有一个非空
type ModelLoadResult struct {
	Model *Model
	Err   error
}

// LoadModelAsync 在后台 goroutine 中加载模型
//
// 返回的通道恰好收到一个结果后关闭。调用方在帧循环里用非阻塞 select 轮询，
// 加载完成前的帧不做任何角色更新。
func LoadModelAsync(ctx context.Context, loader ModelLoader, id string) <-chan ModelLoadResult {
	ch := make(chan ModelLoadResult, 1)
	go func() {
		defer close(ch)
		model, err := loader.Load(ctx, id)
		if err == nil && model == nil {
			err = fmt.Errorf("load model %s: loader returned no model", id)
		}
		if err != nil {
			ch <- ModelLoadResult{Err: err}
			return
		}
		ch <- ModelLoadResult{Model: model}
	}()
	return ch
}
