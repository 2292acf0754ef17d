//go:build !debug

package mempool

func assertf(bool, string, ...any) {}
