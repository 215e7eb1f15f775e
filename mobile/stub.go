//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 普通构建只提供空的 Dummy 函数，
// ebitenmobile 绑定代码在 mobile.go 和 embed.go 中。
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
