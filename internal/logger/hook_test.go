package logger

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestAsyncHook_WritesAllEntriesOnClose(t *testing.T) {
	out := &syncBuffer{}
	hook := NewAsyncHookWithWriters([]io.Writer{out}, 16)

	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.AddHook(hook)

	log.Info("first")
	log.WithField("k", "v").Warn("second")
	require.NoError(t, hook.Close())

	s := out.String()
	assert.Contains(t, s, "first")
	assert.Contains(t, s, "second")
	assert.Contains(t, s, "k=v")

	// Sau khi đóng vẫn ghi trực tiếp, không panic
	log.Info("after close")
	assert.Contains(t, out.String(), "after close")
	assert.NoError(t, hook.Close())
}

type blockingWriter struct {
	release chan struct{}
}

func (w *blockingWriter) Write(p []byte) (int, error) {
	<-w.release
	return len(p), nil
}

func TestAsyncHook_DropsWhenBufferFull(t *testing.T) {
	w := &blockingWriter{release: make(chan struct{})}
	hook := NewAsyncHookWithWriters([]io.Writer{w}, 1)

	log := logrus.New()
	log.SetOutput(io.Discard)
	log.AddHook(hook)

	// writer đang chặn: nhiều nhất 1 entry đang ghi + 1 entry trong buffer
	for i := 0; i < 5; i++ {
		log.Info("entry")
	}
	assert.GreaterOrEqual(t, hook.Dropped(), uint64(3))

	close(w.release)
	require.NoError(t, hook.Close())
}

func TestDefaultConfig_EnvironmentDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "both", cfg.Output)

	t.Setenv("GO_ENV", "development")
	t.Setenv("LOG_LEVEL", "WARN")
	cfg = DefaultConfig()
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "text", cfg.Format)
}
