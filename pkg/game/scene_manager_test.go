package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
	unmounted    int
	size         [2]int
	scale        float64
}

func (m *MockScene) Unmount() {
	m.unmounted++
}

func (m *MockScene) Resize(width, height int, scale float64) {
	m.size = [2]int{width, height}
	m.scale = scale
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.currentScene != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerSwitchTo verifies that SwitchTo correctly changes the active scene.
func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}

	sm.SwitchTo(mockScene)

	if sm.currentScene != mockScene {
		t.Error("SwitchTo did not set the current scene correctly")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016 // ~60 FPS
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerUpdateNoScene verifies that Update handles nil scene gracefully.
func TestSceneManagerUpdateNoScene(t *testing.T) {
	sm := NewSceneManager()
	// Don't set any scene, currentScene should be nil
	sm.Update(0.016) // Should not panic
}

// TestSceneManagerDraw verifies that Draw calls the current scene's Draw method.
func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	// Create a dummy screen image
	screen := ebiten.NewImage(800, 600)
	sm.Draw(screen)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerDrawNoScene verifies that Draw handles nil scene gracefully.
func TestSceneManagerDrawNoScene(t *testing.T) {
	sm := NewSceneManager()
	screen := ebiten.NewImage(800, 600)
	// Don't set any scene, currentScene should be nil
	sm.Draw(screen) // Should not panic
}

// TestSceneManagerSwitchBetweenScenes verifies switching between multiple scenes.
func TestSceneManagerSwitchBetweenScenes(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	// Switch to scene1
	sm.SwitchTo(scene1)
	sm.Update(0.016)

	if !scene1.updateCalled {
		t.Error("Scene1's Update was not called")
	}
	if scene2.updateCalled {
		t.Error("Scene2's Update should not have been called yet")
	}

	// Switch to scene2
	sm.SwitchTo(scene2)
	sm.Update(0.016)

	if !scene2.updateCalled {
		t.Error("Scene2's Update was not called after switching")
	}
}

// TestSceneManagerUnmountsPreviousScene 切换场景时卸载旧场景
func TestSceneManagerUnmountsPreviousScene(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	sm.SwitchTo(scene1)
	sm.SwitchTo(scene1)
	if scene1.unmounted != 0 {
		t.Error("switching to the active scene should not unmount it")
	}

	sm.SwitchTo(scene2)
	if scene1.unmounted != 1 {
		t.Errorf("Expected scene1 unmounted once, got %d", scene1.unmounted)
	}

	sm.Unmount()
	if scene2.unmounted != 1 {
		t.Errorf("Expected scene2 unmounted once, got %d", scene2.unmounted)
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no active scene after Unmount")
	}
}

// TestSceneManagerResize 尺寸变化传递给当前场景和新场景
func TestSceneManagerResize(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	sm.SwitchTo(scene1)

	sm.Resize(1280, 720, 2)
	if scene1.size != [2]int{1280, 720} || scene1.scale != 2 {
		t.Errorf("scene1 got size %v scale %v", scene1.size, scene1.scale)
	}

	scene2 := &MockScene{}
	sm.SwitchTo(scene2)
	if scene2.size != [2]int{1280, 720} {
		t.Errorf("new scene should receive the current size, got %v", scene2.size)
	}
}

// TestSceneManagerLoad 通过工厂按名称切换场景
func TestSceneManagerLoad(t *testing.T) {
	sm := NewSceneManager()
	sm.Load("show") // 未设置工厂，不应 panic

	created := map[string]*MockScene{}
	sm.SetSceneFactory(func(name string) Scene {
		if name == "missing" {
			return nil
		}
		s := &MockScene{}
		created[name] = s
		return s
	})

	sm.Load("countdown")
	if sm.GetCurrentScene() != created["countdown"] || sm.CurrentName() != "countdown" {
		t.Fatal("Load did not switch to the countdown scene")
	}

	sm.Load("missing")
	if sm.CurrentName() != "countdown" {
		t.Error("a failed Load should keep the current scene")
	}

	sm.Load("show")
	if created["countdown"].unmounted != 1 {
		t.Error("countdown scene should be unmounted when the show loads")
	}
}
