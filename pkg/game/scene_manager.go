package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 按名称创建场景，避免 game 与 scenes 包循环依赖
type SceneFactory func(name string) Scene

// SceneManager controls which scene is active.
// Only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentName  string
	sceneFactory SceneFactory

	width, height int
	scale         float64
}

// NewSceneManager creates a manager with no active scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{scale: 1}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene. The previous scene is unmounted first,
// and the new one receives the current layout size.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if u, ok := sm.currentScene.(Unmountable); ok {
		u.Unmount()
	}
	sm.currentScene = scene
	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.Resize(sm.width, sm.height, sm.scale)
	}
}

// GetCurrentScene 返回当前活动的场景，没有则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回通过 Load 切换的场景名
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Load 通过工厂创建并切换到指定名称的场景
func (sm *SceneManager) Load(name string) {
	log.Printf("[SceneManager] 切换场景: %s", name)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}

	newScene := sm.sceneFactory(name)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景: %s", name)
		return
	}
	sm.SwitchTo(newScene)
	sm.currentName = name
}

// Resize 记录逻辑屏幕尺寸；尺寸变化时通知当前场景
func (sm *SceneManager) Resize(width, height int, scale float64) {
	if width == sm.width && height == sm.height && scale == sm.scale {
		return
	}
	sm.width, sm.height, sm.scale = width, height, scale
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height, scale)
	}
}

// Unmount 卸载当前场景（程序退出时调用）
func (sm *SceneManager) Unmount() {
	if u, ok := sm.currentScene.(Unmountable); ok {
		u.Unmount()
	}
	sm.currentScene = nil
	sm.currentName = ""
}

// Update updates the currently active scene, if any.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene, if any.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
