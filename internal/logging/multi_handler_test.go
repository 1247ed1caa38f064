package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	level   slog.Level
	err     error
	handled int
}

func (r *recordingSink) Enabled(_ context.Context, level slog.Level) bool {
	return level >= r.level
}

func (r *recordingSink) Handle(_ context.Context, _ slog.Record) error {
	r.handled++
	return r.err
}

func (r *recordingSink) WithAttrs(_ []slog.Attr) slog.Handler { return r }
func (r *recordingSink) WithGroup(_ string) slog.Handler      { return r }

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	stdout := &recordingSink{level: slog.LevelInfo}
	pg := &recordingSink{level: slog.LevelError}
	m := NewMultiHandler(stdout, pg)

	ctx := context.Background()
	assert.NoError(t, m.Handle(ctx, slog.NewRecord(time.Time{}, slog.LevelInfo, "x", 0)))
	assert.NoError(t, m.Handle(ctx, slog.NewRecord(time.Time{}, slog.LevelError, "y", 0)))

	assert.Equal(t, 2, stdout.handled)
	assert.Equal(t, 1, pg.handled)
}

func TestMultiHandler_FailingSinkDoesNotStopOthers(t *testing.T) {
	broken := &recordingSink{level: slog.LevelInfo, err: errors.New("db down")}
	stdout := &recordingSink{level: slog.LevelInfo}
	m := NewMultiHandler(broken, stdout)

	err := m.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "x", 0))
	assert.Error(t, err)
	assert.Equal(t, 1, stdout.handled)
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, slog.LevelDebug, levelFromEnv())

	t.Setenv("LOG_LEVEL", "ERROR")
	assert.Equal(t, slog.LevelError, levelFromEnv())

	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, slog.LevelInfo, levelFromEnv())
}
