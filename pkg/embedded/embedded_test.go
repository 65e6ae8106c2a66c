package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/shells.yaml":  {Data: []byte("shells: []\n")},
		"data/show.yaml":    {Data: []byte("name: test\n")},
		"data/physics.yaml": {Data: []byte("fadeAlpha: 0.15\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	Init(nil)

	_, err := ReadFile("data/show.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"data/show.yaml", "name: test\n", false},
		{"./data/shells.yaml", "shells: []\n", false},
		{"data/missing.yaml", "", true},
		{"assets/logo.png", "", true},
	}
	for _, tt := range tests {
		got, err := ReadFile(tt.path)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ReadFile(%q) expected error", tt.path)
			}
			continue
		}
		if err != nil {
			t.Errorf("ReadFile(%q) unexpected error: %v", tt.path, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestExistsAndGlob(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	if !Exists("data/physics.yaml") {
		t.Error("Expected data/physics.yaml to exist")
	}
	if Exists("data/nope.yaml") {
		t.Error("Expected data/nope.yaml to be missing")
	}

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 3 {
		t.Errorf("Glob matched %d files, want 3: %v", len(matches), matches)
	}
}
