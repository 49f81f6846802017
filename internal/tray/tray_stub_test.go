//go:build stub

package tray

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStubStartReturnsController(t *testing.T) {
	ctrl, err := Start(context.Background(), Options{
		Tooltip: "test",
		OnShow:  func() {},
		OnQuit:  func() {},
	})
	require.NoError(t, err)
	require.NotNil(t, ctrl)

	// Stop is idempotent.
	ctrl.Stop()
	ctrl.Stop()
}
