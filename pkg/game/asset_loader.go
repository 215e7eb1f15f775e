package game

import (
	"context"
	"fmt"
	"log"

	"github.com/gonewx/explode/internal/logo"
)

// AssetReader 按路径读取资源内容
// 桌面端使用 embedded.ReadFileOrDisk，测试中可替换
type AssetReader func(path string) ([]byte, error)

// LoadResult 异步加载结果
// Err 非空时 Nodes 为空
type LoadResult struct {
	Path  string
	Nodes []logo.Node
	Err   error
}

// LoadLogo 同步加载 Logo 模型并筛选碎片节点
//
// 参数:
//   - ctx: 取消后不再解析，直接返回 ctx.Err()
//   - read: 资源读取函数
//   - path: 模型路径，如 "assets/objects/logo.glb"
//   - filter: 碎片节点名子串，如 "Cube"
func LoadLogo(ctx context.Context, read AssetReader, path, filter string) ([]logo.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := logo.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode model %s: %w", path, err)
	}

	nodes, err := logo.ExtractFragments(doc, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to extract fragments from %s: %w", path, err)
	}

	log.Printf("[AssetLoader] %s: %d 个节点, %d 个碎片 (filter=%q)", path, len(doc.Nodes), len(nodes), filter)
	return nodes, nil
}

// LoadLogoAsync 在后台 goroutine 中加载模型，不阻塞帧循环
//
// 返回的通道恰好收到一个结果后关闭（容量为 1，发送永不阻塞，
// 调用方即使不再读取也不会泄漏 goroutine）。
// 调用方每帧非阻塞地轮询：
//
//	select {
//	case result := <-ch:
//	    ...
//	default:
//	}
func LoadLogoAsync(ctx context.Context, read AssetReader, path, filter string) <-chan LoadResult {
	ch := make(chan LoadResult, 1)

	go func() {
		defer close(ch)

		nodes, err := LoadLogo(ctx, read, path, filter)
		ch <- LoadResult{Path: path, Nodes: nodes, Err: err}
	}()

	return ch
}
