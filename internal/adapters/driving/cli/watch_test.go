package cli

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the watch goroutines to share.
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

func TestWatchCmd_Long(t *testing.T) {
	assert.Contains(t, watchCmd.Long, "one query per line")
	assert.Contains(t, watchCmd.Long, "reloads the corpus")
}

func TestWatchCmd_ResolvesEachLine(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	reloadService = &mockReloadService{}

	out, err := execute(t, "panadol\n\n   \nxyzzy\n", "watch")

	require.NoError(t, err)
	assert.Equal(t, []string{"panadol", "xyzzy"}, ts.resolver.queries)
	assert.Contains(t, out, "Watching /data")
	assert.Contains(t, out, "Brand Name:   Panadol")
	assert.Contains(t, out, `No match found for "Xyzzy"`)
}

func TestWatchCmd_ReportsReload(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	reloaded := make(chan struct{})
	reloadService = &mockReloadService{corpus: testCorpus(), reloaded: reloaded}

	stdin, stdinW := io.Pipe()
	out := &syncBuffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs([]string{"watch"})

	done := make(chan error, 1)
	go func() { done <- rootCmd.Execute() }()

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("reload was not reported")
	}
	_, err := io.WriteString(stdinW, "panadol\n")
	require.NoError(t, err)
	require.NoError(t, stdinW.Close())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not finish at end of input")
	}
	assert.Contains(t, out.String(), "Corpus reloaded: 2 medicines, 1 documents")
	assert.Contains(t, out.String(), "Panadol")
}

func TestWatchCmd_WatchError(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	reloadService = &mockReloadService{err: assert.AnError}

	_, err := execute(t, "panadol\n", "watch")

	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "watching /data")
}

func TestResolveLines_StopsOnCancel(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	buf := new(bytes.Buffer)
	watchCmd.SetOut(buf)
	defer watchCmd.SetOut(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lines := make(chan string)

	err := resolveLines(ctx, watchCmd, lines)

	assert.NoError(t, err)
	assert.Empty(t, ts.resolver.queries)
}

func TestResolveLines_ResolverError(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.resolver.err = assert.AnError
	buf := new(bytes.Buffer)
	watchCmd.SetOut(buf)
	defer watchCmd.SetOut(nil)

	lines := make(chan string, 1)
	lines <- "panadol"
	close(lines)

	err := resolveLines(context.Background(), watchCmd, lines)

	assert.ErrorIs(t, err, assert.AnError)
}
