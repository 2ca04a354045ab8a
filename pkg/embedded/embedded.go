// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// 以 "assets/" 或 "data/" 开头的路径从嵌入文件系统读取；
// 其他路径（绝对路径、测试用临时文件）直接读取操作系统文件。
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	assetsFS    fs.FS
	dataFS      fs.FS
	initialized bool
)

// errNotInitialized 嵌入路径在 Init 之前被访问
var errNotInitialized = fmt.Errorf("embedded package not initialized, call Init() first")

// Init 初始化资源文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(assets, data fs.FS) {
	assetsFS = assets
	dataFS = data
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// resolve 标准化路径并选择文件系统
// 返回 nil FS 表示应当使用操作系统文件
func resolve(path string) (fs.FS, string, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(path), "./")

	var target fs.FS
	switch {
	case strings.HasPrefix(clean, "assets/"):
		target = assetsFS
	case strings.HasPrefix(clean, "data/"):
		target = dataFS
	default:
		return nil, path, nil
	}
	if !initialized {
		return nil, "", errNotInitialized
	}
	return target, clean, nil
}

// Open 打开资源文件
func Open(path string) (fs.File, error) {
	fsys, name, err := resolve(path)
	if err != nil {
		return nil, err
	}
	if fsys == nil {
		return os.Open(name)
	}
	return fsys.Open(name)
}

// ReadFile 读取资源文件内容
func ReadFile(path string) ([]byte, error) {
	fsys, name, err := resolve(path)
	if err != nil {
		return nil, err
	}
	if fsys == nil {
		return os.ReadFile(name)
	}
	return fs.ReadFile(fsys, name)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配资源文件
func Glob(pattern string) ([]string, error) {
	fsys, name, err := resolve(pattern)
	if err != nil {
		return nil, err
	}
	if fsys == nil {
		return filepath.Glob(name)
	}
	return fs.Glob(fsys, name)
}

// ReadDir 读取目录内容
func ReadDir(path string) ([]fs.DirEntry, error) {
	fsys, name, err := resolve(path)
	if err != nil {
		return nil, err
	}
	if fsys == nil {
		return os.ReadDir(name)
	}
	return fs.ReadDir(fsys, name)
}
