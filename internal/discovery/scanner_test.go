package discovery

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func scannerFor(t *testing.T, server *httptest.Server) (*Scanner, string) {
	t.Helper()
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return NewScanner(port, time.Second, quietLogger()), u.Hostname()
}

func TestIdentifyPixooDevice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Divoom Pixoo64 ready"))
	}))
	defer server.Close()

	s, host := scannerFor(t, server)
	assert.True(t, s.identify(context.Background(), host))
}

func TestIdentifyRejectsOtherDevices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>router admin</html>"))
	}))
	defer server.Close()

	s, host := scannerFor(t, server)
	assert.False(t, s.identify(context.Background(), host))
}

func TestProbeFindsDevice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("divoom"))
	}))
	defer server.Close()

	s, host := scannerFor(t, server)

	results := make(chan Device, 1)
	s.probe(context.Background(), host, results)

	d := <-results
	require.NotEmpty(t, d.IP)
	assert.Equal(t, host, d.IP)
	assert.Equal(t, "Pixoo-"+host, d.Name)
}

func TestProbeUnreachableHost(t *testing.T) {
	s := NewScanner(1, 100*time.Millisecond, quietLogger())

	results := make(chan Device, 1)
	s.probe(context.Background(), "127.0.0.1", results)

	d := <-results
	assert.Empty(t, d.IP)
}

func TestScannerDefaults(t *testing.T) {
	s := NewScanner(0, 0, nil)
	assert.Equal(t, 80, s.port)
	assert.Equal(t, 2*time.Second, s.timeout)
	assert.NotNil(t, s.logger)
}
