package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/emiliopalmerini/herdstats/internal/domain"
	"github.com/emiliopalmerini/herdstats/internal/report"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := report.NewService(&report.MockProductionRepository{}, testLookups(), report.Options{UnknownBreedID: domain.DefaultUnknownBreedID})
	s := NewServer(svc, fakePinger{}, Options{ShutdownTimeout: time.Second})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_StartBadAddress(t *testing.T) {
	s := NewServer(nil, nil, Options{Addr: "256.0.0.1:99999"})
	err := s.Start(context.Background())
	assert.ErrorContains(t, err, "listen")
}

func TestServer_ServeErrorReleasesShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	s := NewServer(nil, nil, Options{ShutdownTimeout: time.Second})
	err = s.Serve(context.Background(), ln)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, http.ErrServerClosed)
}
