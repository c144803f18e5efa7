package commands

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/docgrid/internal/mockapi"
)

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := mockapi.New(mockapi.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, ln, srv.Handler()) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ru/data/v3/testmethods/docs/userdocs/get")
	require.NoError(t, err)
	_ = resp.Body.Close()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestSampleRecords(t *testing.T) {
	recs := sampleRecords(4)
	require.Len(t, recs, 4)

	seen := map[string]bool{}
	for _, r := range recs {
		assert.Empty(t, r.ID, "ids are assigned by the server")
		assert.NotEmpty(t, r.DocumentName)
		assert.False(t, seen[r.DocumentName])
		seen[r.DocumentName] = true
	}

	assert.Empty(t, sampleRecords(0))
}
