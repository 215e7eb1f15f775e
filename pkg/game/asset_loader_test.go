package game

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var modelPath = filepath.Join("..", "..", "assets", "objects", "logo.glb")

func waitResult(t *testing.T, ch <-chan LoadResult) LoadResult {
	t.Helper()
	select {
	case result, ok := <-ch:
		if !ok {
			t.Fatal("Result channel closed without a result")
		}
		// 结果之后通道关闭
		if _, open := <-ch; open {
			t.Error("Result channel should be closed after the result")
		}
		return result
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for load result")
	}
	return LoadResult{}
}

func TestLoadLogoAsync(t *testing.T) {
	ch := LoadLogoAsync(context.Background(), os.ReadFile, modelPath, "Cube")
	result := waitResult(t, ch)

	if result.Err != nil {
		t.Fatalf("Unexpected load error: %v", result.Err)
	}
	if len(result.Nodes) != 16 {
		t.Errorf("Expected 16 fragments, got %d", len(result.Nodes))
	}
	if result.Path != modelPath {
		t.Errorf("Result path = %q, want %q", result.Path, modelPath)
	}
}

func TestLoadLogoAsyncReadFailure(t *testing.T) {
	readErr := errors.New("network down")
	read := func(string) ([]byte, error) { return nil, readErr }

	result := waitResult(t, LoadLogoAsync(context.Background(), read, "assets/objects/logo.glb", "Cube"))
	if !errors.Is(result.Err, readErr) {
		t.Errorf("Expected wrapped read error, got %v", result.Err)
	}
	if len(result.Nodes) != 0 {
		t.Errorf("Failed load should have no nodes, got %d", len(result.Nodes))
	}
}

func TestLoadLogoAsyncDecodeFailure(t *testing.T) {
	read := func(string) ([]byte, error) { return []byte("garbage"), nil }

	result := waitResult(t, LoadLogoAsync(context.Background(), read, "assets/objects/logo.glb", "Cube"))
	if result.Err == nil {
		t.Error("Expected decode error")
	}
}

func TestLoadLogoCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	read := func(string) ([]byte, error) {
		called = true
		return nil, nil
	}

	_, err := LoadLogo(ctx, read, "assets/objects/logo.glb", "Cube")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if called {
		t.Error("Canceled load should not read the asset")
	}
}

// TestLoadLogoAsyncAbandoned 调用方不读取结果时 goroutine 也能退出（由 goleak 检查）
func TestLoadLogoAsyncAbandoned(t *testing.T) {
	release := make(chan struct{})
	read := func(string) ([]byte, error) {
		<-release
		return nil, errors.New("abandoned")
	}

	_ = LoadLogoAsync(context.Background(), read, "assets/objects/logo.glb", "Cube")
	close(release)
}
