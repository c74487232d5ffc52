package service

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/utils/deeplink"
)

func TestQrService_ShareCode(t *testing.T) {
	env := newTestEnv(t)
	event := env.createEvent(t, "Indoor Nationals", testNow.Add(72*time.Hour), 0)

	data, err := env.qr.ShareCode(env.ctx, deeplink.KindEvent, event.ID)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())

	_, err = env.qr.ShareCode(env.ctx, deeplink.KindTeam, "missing")
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	_, err = env.qr.ShareCode(env.ctx, deeplink.Kind("clubs"), event.ID)
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)
}
