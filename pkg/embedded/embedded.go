// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的 data/ 配置。
//
// 使用前必须调用 Init() 初始化；未初始化时配置加载器回退到文件系统。
package embedded

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu          sync.RWMutex
	dataFS      fs.FS
	initialized bool
)

// Init 注册嵌入的 data/ 文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	mu.Lock()
	defer mu.Unlock()
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	mu.RLock()
	defer mu.RUnlock()
	return initialized
}

// normalize 标准化路径并检查前缀
func normalize(path string) (fs.FS, string, error) {
	mu.RLock()
	defer mu.RUnlock()
	if !initialized {
		return nil, "", fmt.Errorf("embedded package not initialized, call Init() first")
	}

	// embed.FS 使用正斜杠
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "data/") {
		return nil, "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return dataFS, path, nil
}

// Open 打开嵌入文件，路径必须以 "data/" 开头
func Open(path string) (fs.File, error) {
	fsys, p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fsys.Open(p)
}

// ReadFile 读取嵌入文件内容，路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	fsys, p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, p)
}

// Exists 检查文件是否存在于嵌入资源中
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 在嵌入资源中匹配文件
func Glob(pattern string) ([]string, error) {
	fsys, p, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(fsys, p)
}
