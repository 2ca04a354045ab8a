package embedded

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func resetForTest(t *testing.T) {
	t.Helper()
	prevAssets, prevData, prevInit := assetsFS, dataFS, initialized
	t.Cleanup(func() {
		assetsFS, dataFS, initialized = prevAssets, prevData, prevInit
	})
	assetsFS, dataFS, initialized = nil, nil, false
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	resetForTest(t)

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	Init(fstest.MapFS{}, fstest.MapFS{})
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestReadFileNotInitialized 嵌入路径在未初始化时返回错误
func TestReadFileNotInitialized(t *testing.T) {
	resetForTest(t)

	_, err := ReadFile("data/levels.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err != errNotInitialized {
		t.Errorf("Unexpected error: %v", err)
	}
}

// TestReadFileRouting 按前缀选择文件系统
func TestReadFileRouting(t *testing.T) {
	resetForTest(t)

	Init(
		fstest.MapFS{"assets/sprites/ranger.png": {Data: []byte("png")}},
		fstest.MapFS{"data/levels.yaml": {Data: []byte("levels: []")}},
	)

	tests := []struct {
		path string
		want string
	}{
		{path: "data/levels.yaml", want: "levels: []"},
		{path: "./data/levels.yaml", want: "levels: []"},
		{path: "assets/sprites/ranger.png", want: "png"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if err != nil {
				t.Fatalf("ReadFile(%q) failed: %v", tt.path, err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}

	if Exists("data/missing.yaml") {
		t.Error("missing file should not exist")
	}
}

// TestReadFileFallsBackToOS 非资源前缀的路径读取操作系统文件
func TestReadFileFallsBackToOS(t *testing.T) {
	resetForTest(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("ok"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != "ok" {
		t.Errorf("got %q", got)
	}

	matches, err := Glob(filepath.Join(dir, "*.yaml"))
	if err != nil || len(matches) != 1 {
		t.Errorf("Glob = %v, %v", matches, err)
	}
}
