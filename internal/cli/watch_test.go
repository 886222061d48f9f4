package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/orderly/internal/event"
)

// syncBuffer is a bytes.Buffer safe for one writer and concurrent readers.
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

func TestWatchPrintsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries:\n  - {key: a, value: \"1\"}\n"), 0o644))

	out := &syncBuffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"watch", path, "--debounce", "10ms"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "+ a=1")
	}, 5*time.Second, 10*time.Millisecond)
	assert.True(t, strings.HasPrefix(out.String(), "added=1@0\n+ a=1\n"))

	update := []byte("entries:\n  - {key: a, value: \"1\"}\n  - {key: b, value: \"2\"}\n")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, update, 0o644)
		return strings.Contains(out.String(), "+ b=2")
	}, 5*time.Second, 50*time.Millisecond)
	assert.Contains(t, out.String(), "cleared=1 added=2@0\n+ a=1\n+ b=2\n")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchMissingFile(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"watch", filepath.Join(t.TempDir(), "absent.yaml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSessionReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[entries]]
key = "10"
value = "x"

[[entries]]
key = "9"
value = "y"
`), 0o644))

	out := &bytes.Buffer{}
	opts := &RootOptions{Format: "text"}
	cmd := newRootCommand(opts)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	require.NoError(t, opts.setupLogger(cmd))

	m, d, err := loadMap(cmd, opts, path)
	require.NoError(t, err)
	s := &session{cmd: cmd, opts: opts, path: path, order: d.Settings, m: m, keeper: event.NewKeeper()}
	m.Subscribe(s.keeper, s.print)
	out.Reset()

	require.NoError(t, os.WriteFile(path, []byte(`
[settings]
numeric = true

[[entries]]
key = "10"
value = "x"

[[entries]]
key = "9"
value = "y"
`), 0o644))
	require.NoError(t, s.reload())
	assert.True(t, s.order.Numeric)
	assert.Equal(t, "cleared=2 added=2@0\n+ 9=y\n+ 10=x\n", out.String())

	var keys []string
	for k := range m.Keys().All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"9", "10"}, keys)

	out.Reset()
	require.NoError(t, s.reload())
	assert.Equal(t, "cleared=2 added=2@0\n+ 9=y\n+ 10=x\n", out.String())

	out.Reset()
	require.NoError(t, os.WriteFile(path, []byte("entries = 3"), 0o644))
	require.Error(t, s.reload())
	assert.Equal(t, 2, m.Len())
	assert.Empty(t, out.String())
}
