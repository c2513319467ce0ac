package obs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestTimeLogsRequestIDAndError(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	ctx := context.WithValue(context.Background(), RequestIDKey, "abc")

	err := errors.New("boom")
	Time(ctx, "rooms.snapshot")(&err)

	out := buf.String()
	assert.Contains(t, out, `"req_id":"abc"`)
	assert.Contains(t, out, `"op":"rooms.snapshot"`)
	assert.Contains(t, out, `"error":"boom"`)

	buf.Reset()
	var ok error
	Time(ctx, "rooms.reset")(&ok)
	assert.Contains(t, buf.String(), `"message":"operation done"`)
}

func TestRequestIDMissing(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
}
