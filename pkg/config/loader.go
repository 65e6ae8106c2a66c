package config

import (
	"os"

	"github.com/gonewx/fireworks/pkg/embedded"
)

// readConfigFile 读取配置文件
//
// 优先从嵌入资源读取（发布版本中 data/ 已编译进二进制），
// 嵌入资源未初始化或不存在该文件时回退到文件系统，
// 便于命令行工具和测试直接加载任意路径。
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
