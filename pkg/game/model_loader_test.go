package game

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"
)

const testManifest = `
mesh:
  name: human
  height: 2
  radius: 0.5
  color: "#102030"
clips:
  - {name: Death, duration: 1}
  - {name: Idle, duration: 2}
  - {name: Walk, duration: 1.5}
`

func testModelFS() fstest.MapFS {
	return fstest.MapFS{
		"data/models/human.yaml": &fstest.MapFile{Data: []byte(testManifest)},
		"data/models/bad.yaml":   &fstest.MapFile{Data: []byte("mesh: {name: x}\n")},
	}
}

func TestManifestModelLoaderLoad(t *testing.T) {
	loader := NewManifestModelLoader(testModelFS())

	model, err := loader.Load(context.Background(), "data/models/human.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if model.Mesh.Name != "human" || len(model.Clips) != 3 {
		t.Fatalf("unexpected model: %+v", model)
	}
	if model.Mesh.Color.R != 0x10 || model.Mesh.Color.G != 0x20 || model.Mesh.Color.B != 0x30 {
		t.Errorf("unexpected mesh color: %+v", model.Mesh.Color)
	}
	if model.Clips[2].Index != 2 || model.Clips[2].Name != "Walk" {
		t.Errorf("clip index mismatch: %+v", model.Clips[2])
	}
}

func TestManifestModelLoaderErrors(t *testing.T) {
	loader := NewManifestModelLoader(testModelFS())

	_, err := loader.Load(context.Background(), "data/models/missing.yaml")
	if !errors.Is(err, ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}

	if _, err := loader.Load(context.Background(), "data/models/bad.yaml"); err == nil {
		t.Error("invalid manifest should fail to load")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := loader.Load(ctx, "data/models/human.yaml"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestModelBindClips(t *testing.T) {
	model, err := NewManifestModelLoader(testModelFS()).Load(context.Background(), "data/models/human.yaml")
	if err != nil {
		t.Fatal(err)
	}

	clips, err := model.BindClips(map[string]int{"Idle": 1, "Walk": 2})
	if err != nil {
		t.Fatalf("BindClips failed: %v", err)
	}
	if clips["Idle"] != 2 || clips["Walk"] != 1.5 {
		t.Errorf("unexpected durations: %v", clips)
	}

	_, err = model.BindClips(map[string]int{"Attack": 4})
	if !errors.Is(err, ErrClipIndexOutOfRange) {
		t.Errorf("expected ErrClipIndexOutOfRange, got %v", err)
	}
}

func TestLoadModelAsync(t *testing.T) {
	loader := NewManifestModelLoader(testModelFS())

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"success", "data/models/human.yaml", false},
		{"failure", "data/models/missing.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := LoadModelAsync(context.Background(), loader, tt.id)

			select {
			case res := <-ch:
				if tt.wantErr && res.Err == nil {
					t.Error("expected error result")
				}
				if !tt.wantErr && (res.Err != nil || res.Model == nil) {
					t.Errorf("expected model, got err=%v", res.Err)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("async load timed out")
			}

			// 通道只投递一个结果然后关闭
			if _, ok := <-ch; ok {
				t.Error("channel should be closed after the result")
			}
		})
	}
}
