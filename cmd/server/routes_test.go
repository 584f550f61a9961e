package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/mmynk/dividizky/internal/metrics"
	"github.com/mmynk/dividizky/internal/middleware"
	"github.com/mmynk/dividizky/internal/service"
	"github.com/mmynk/dividizky/internal/share"
	"github.com/mmynk/dividizky/pkg/api"
	"github.com/mmynk/dividizky/pkg/api/apiconnect"
)

func setupRouter(t *testing.T, staticDir string) (*httptest.Server, *metrics.Metrics) {
	t.Helper()

	links, err := share.NewManager("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)
	m := metrics.New(prometheus.NewRegistry())
	svc := service.NewSettlementService(links, m, language.English)

	server := httptest.NewServer(newRouter(svc, m, staticDir, []string{"*"}))
	t.Cleanup(server.Close)
	return server, m
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRouter_Healthz(t *testing.T) {
	server, _ := setupRouter(t, "")

	status, body := get(t, server.URL+"/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok\n", body)
}

func TestRouter_RPCWithInterceptors(t *testing.T) {
	server, m := setupRouter(t, "")
	client := apiconnect.NewSettlementServiceClient(http.DefaultClient, server.URL)

	resp, err := client.Calculate(context.Background(), connect.NewRequest(&api.CalculateRequest{
		People: []api.Person{{Name: "Ana", Expense: 10}, {Name: "Beto", Expense: 30}},
	}))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
	require.Len(t, resp.Msg.Result.Payments, 1)
	assert.Equal(t, "Ana", resp.Msg.Result.Payments[0].From)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(apiconnect.SettlementServiceCalculateProcedure, "ok")))
}

func TestRouter_RejectsOversizedRequests(t *testing.T) {
	server, _ := setupRouter(t, "")
	client := apiconnect.NewSettlementServiceClient(http.DefaultClient, server.URL)

	_, err := client.Calculate(context.Background(), connect.NewRequest(&api.CalculateRequest{
		People: []api.Person{
			{Name: strings.Repeat("a", maxRequestBytes), Expense: 10},
			{Name: "Beto", Expense: 30},
		},
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeResourceExhausted, connect.CodeOf(err))
}

func TestRouter_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>dividizky</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))

	server, _ := setupRouter(t, dir)

	status, body := get(t, server.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "<h1>dividizky</h1>", body)

	status, body = get(t, server.URL+"/app.js")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "console.log(1)", body)

	status, body = get(t, server.URL+"/shared/some-token")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "<h1>dividizky</h1>", body, "unknown paths serve the client")

	status, _ = get(t, server.URL+"/dividizky.v1.OtherService/Method")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_NoStaticDir(t *testing.T) {
	server, _ := setupRouter(t, "")

	status, _ := get(t, server.URL+"/")
	assert.Equal(t, http.StatusNotFound, status)
}
