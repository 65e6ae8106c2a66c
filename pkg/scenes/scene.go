package scenes

import (
	"github.com/gonewx/fireworks/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 场景名称，供 SceneManager.Load 使用
const (
	SceneCountdown = "countdown"
	SceneShow      = "show"
)
