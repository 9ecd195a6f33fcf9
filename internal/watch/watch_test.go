package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreEvent(t *testing.T) {
	for _, p := range []string{"/a/.hidden.md", "/a/post.md~", "/a/.post.md.swp", "/a/#post.md#", "/a/.DS_Store", "/a/Thumbs.db"} {
		require.True(t, shouldIgnoreEvent(p), p)
	}
	for _, p := range []string{"/a/post.md", "/a/dir", "/a/#tag.md"} {
		require.False(t, shouldIgnoreEvent(p), p)
	}
}

func TestInIgnoredDir(t *testing.T) {
	w := New(nil, nil, WithIgnoreDir("/site/build"))
	require.True(t, w.inIgnoredDir("/site/build"))
	require.True(t, w.inIgnoredDir("/site/build/a.md"))
	require.False(t, w.inIgnoredDir("/site/builder/a.md"))
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	req, trigger, stop := newDebouncer(20 * time.Millisecond)
	defer stop()

	for range 10 {
		trigger()
	}

	select {
	case <-req:
	case <-time.After(time.Second):
		t.Fatal("debounced request never fired")
	}

	select {
	case <-req:
		t.Fatal("burst produced more than one request")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRunRebuilds_OneRunningOneQueued(t *testing.T) {
	var runs atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{}, 10)

	w := New(nil, func(context.Context) error {
		runs.Add(1)
		started <- struct{}{}
		<-release
		return nil
	})

	req := make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.runRebuilds(ctx, req)
		close(done)
	}()

	req <- struct{}{}
	<-started

	// While the first rebuild runs, further requests collapse into one.
	for range 5 {
		select {
		case req <- struct{}{}:
		default:
		}
	}
	release <- struct{}{}
	<-started
	release <- struct{}{}

	require.Never(t, func() bool { return runs.Load() > 2 }, 100*time.Millisecond, 10*time.Millisecond)
	cancel()
	<-done
	require.Equal(t, int32(2), runs.Load())
}

func TestRun_RebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "build")
	require.NoError(t, os.MkdirAll(out, 0o755))

	var runs atomic.Int32
	w := New([]string{root, filepath.Join(root, "missing")}, func(context.Context) error {
		runs.Add(1)
		return nil
	}, WithDebounce(20*time.Millisecond), WithIgnoreDir(out))

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	// Give the watcher time to register the tree.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(out, "ignored.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "post.md"), []byte("# hi\n"), 0o644))

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-errc)
}
