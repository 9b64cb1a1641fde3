package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/arena.yaml":        &fstest.MapFile{Data: []byte("window: {}\n")},
		"data/models/human.yaml": &fstest.MapFile{Data: []byte("mesh: {}\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	// 重置状态以避免影响其他测试
	initialized = false
}

// TestNotInitialized 未初始化时所有访问都返回错误
func TestNotInitialized(t *testing.T) {
	initialized = false

	if _, err := ReadFile("data/arena.yaml"); err == nil {
		t.Error("Expected error when calling ReadFile() before Init()")
	}
	if _, err := FS(); err == nil {
		t.Error("Expected error when calling FS() before Init()")
	}
	if Exists("data/arena.yaml") {
		t.Error("Exists() should be false before Init()")
	}
}

// TestReadFile 测试路径标准化和前缀检查
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer func() { initialized = false }()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"plain", "data/arena.yaml", false},
		{"dot prefix", "./data/arena.yaml", false},
		{"nested", "data/models/human.yaml", false},
		{"missing", "data/nope.yaml", true},
		{"wrong prefix", "assets/images/x.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

// TestGlob 测试文件匹配
func TestGlob(t *testing.T) {
	Init(testFS())
	defer func() { initialized = false }()

	matches, err := Glob("data/models/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 1 || matches[0] != "data/models/human.yaml" {
		t.Errorf("unexpected matches: %v", matches)
	}
	if !Exists("data/models/human.yaml") {
		t.Error("Exists should find the model manifest")
	}
}
