//go:build linux || darwin || freebsd

package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMmapProviderDoubleRelease(t *testing.T) {
	var pr MmapProvider
	b, err := pr.Alloc(8192)
	require.NoError(t, err)

	require.NoError(t, pr.Release(b))
	require.NoError(t, pr.Release(b), "unknown mappings are ignored")
	require.NoError(t, pr.Release(nil))
}
