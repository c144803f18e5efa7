package utils

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferredWriter_HoldsLoggerOutput(t *testing.T) {
	d := &DeferredWriter{}
	logger := zerolog.New(d)

	logger.Info().Str("row", "7").Msg("row committed")
	logger.Warn().Msg("update failed")

	var out bytes.Buffer
	require.NoError(t, d.Flush(&out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"level":"info","row":"7","message":"row committed"}`, lines[0])
	assert.JSONEq(t, `{"level":"warn","message":"update failed"}`, lines[1])

	out.Reset()
	require.NoError(t, d.Flush(&out))
	assert.Empty(t, out.String(), "flush empties the buffer")
}

func TestDeferredWriter_PartialLines(t *testing.T) {
	d := &DeferredWriter{}

	n, err := d.Write([]byte("fetch "))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	_, _ = d.Write([]byte("done\ntrailing"))

	var out bytes.Buffer
	require.NoError(t, d.Flush(&out))
	assert.Equal(t, "fetch done\ntrailing", out.String())
}

func TestDeferredWriter_MaxLines(t *testing.T) {
	tests := []struct {
		name    string
		max     int
		writes  []string
		want    string
		dropped int
	}{
		{name: "unbounded", max: 0, writes: []string{"a\nb\nc\n"}, want: "a\nb\nc\n"},
		{name: "within limit", max: 3, writes: []string{"a\n", "b\n"}, want: "a\nb\n"},
		{name: "keeps newest", max: 2, writes: []string{"one\ntwo\nthr", "ee\nfour"}, want: "two\nthree\nfour", dropped: 1},
		{name: "many writes", max: 1, writes: []string{"a\n", "b\n", "c\n", "d\n"}, want: "d\n", dropped: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &DeferredWriter{MaxLines: tt.max}
			for _, w := range tt.writes {
				_, _ = d.Write([]byte(w))
			}

			var out bytes.Buffer
			require.NoError(t, d.Flush(&out))
			assert.Equal(t, tt.want, out.String())
			assert.Equal(t, tt.dropped, d.Dropped())
		})
	}
}

func TestDeferredWriter_ConcurrentLoggers(t *testing.T) {
	d := &DeferredWriter{}
	logger := zerolog.New(d)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Debug().Msg("sweep")
		}()
	}
	wg.Wait()

	var out bytes.Buffer
	require.NoError(t, d.Flush(&out))
	assert.Equal(t, 50, strings.Count(out.String(), "\n"))
}
