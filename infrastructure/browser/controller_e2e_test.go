package browser

import (
	"bytes"
	"context"
	"os"
	"testing"

	"pos_snapshots/domain/entities"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Needs the POS app on POS_BASE_URL (default http://localhost:3000) and installed browsers
func TestPlaywrightAgainstRunningApp(t *testing.T) {
	if os.Getenv("POS_E2E") != "1" {
		t.Skip("set POS_E2E=1 to run against a live POS app")
	}

	baseURL := os.Getenv("POS_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	logger, _ := test.NewNullLogger()
	launcher, err := NewLauncher(DriverPlaywright, logger)
	require.NoError(t, err)

	ctx := context.Background()
	b, err := launcher.Launch(ctx, entities.SessionOptions{
		Viewport:   entities.MobileViewport,
		Headless:   true,
		Engine:     EngineChromium,
		SettleMode: entities.SettleAnimations,
	})
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.Navigate(ctx, baseURL))
	require.NoError(t, b.WaitHidden(ctx, entities.ByText("Iniciando Sistema...")))
	require.NoError(t, b.WaitVisible(ctx, entities.ByText("Todos")))
	require.NoError(t, b.Click(ctx, entities.ByAriaLabel("button", "Open menu"), nil))
	require.NoError(t, b.Settle(ctx, entities.DefaultSettlePause))

	data, err := b.Screenshot(ctx)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}
