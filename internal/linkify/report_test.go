package linkify

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitelinks/internal/foundation/errors"
)

func TestParseSeverity(t *testing.T) {
	for _, s := range []string{"ignore", "log", "warn", "throw", " WARN "} {
		_, err := ParseSeverity(s)
		require.NoError(t, err, s)
	}

	_, err := ParseSeverity("explode")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestCollector_GroupsByFileKeepingDocumentOrder(t *testing.T) {
	c := NewCollector()
	h := c.Handler()
	require.NoError(t, h(BrokenLink{FilePath: "/b.md", Link: "x.md", Line: 1}))
	require.NoError(t, h(BrokenLink{FilePath: "/a.md", Link: "second.md", Line: 9}))
	require.NoError(t, h(BrokenLink{FilePath: "/a.md", Link: "first.md", Line: 3}))

	links := c.Links()
	require.Len(t, links, 3)
	require.Equal(t, "second.md", links[0].Link)
	require.Equal(t, "first.md", links[1].Link)
	require.Equal(t, "/b.md", links[2].FilePath)
}

func TestCollector_ConcurrentHandlers(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := c.Handler()
			for range 50 {
				_ = h(BrokenLink{Line: i})
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 400, c.Len())
}

func TestCollector_Err(t *testing.T) {
	c := NewCollector()
	require.NoError(t, c.Err(SeverityThrow))

	_ = c.Handler()(BrokenLink{FilePath: "/site/blog/post.md", Link: "./postNotExist2.mdx", Line: 7})
	require.NoError(t, c.Err(SeverityWarn))
	require.NoError(t, c.Err(SeverityIgnore))

	err := c.Err(SeverityThrow)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryLinks))
	require.Contains(t, err.Error(), "1 broken markdown link(s)")
	require.Contains(t, err.Error(), "/site/blog/post.md:7: ./postNotExist2.mdx")
}

func TestReportingHandler_LogsAtSeverityLevel(t *testing.T) {
	cases := []struct {
		sev  Severity
		want string
	}{
		{SeverityIgnore, "level=DEBUG"},
		{SeverityLog, "level=INFO"},
		{SeverityWarn, "level=WARN"},
		{SeverityThrow, "level=ERROR"},
	}
	for _, tc := range cases {
		t.Run(string(tc.sev), func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			c := NewCollector()

			err := ReportingHandler(tc.sev, logger, c)(BrokenLink{FilePath: "/p.md", Link: "gone.md", Line: 2})
			require.NoError(t, err)
			require.Equal(t, 1, c.Len())
			require.Contains(t, buf.String(), tc.want)
			require.Contains(t, buf.String(), "link=gone.md")
			require.Contains(t, buf.String(), "policy="+string(tc.sev))
		})
	}
}
