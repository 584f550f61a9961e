package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/dividizky/internal/metrics"
	"github.com/mmynk/dividizky/pkg/api"
)

const echoProcedure = "/test.v1.EchoService/Echo"

// setupEchoServer serves a single unary procedure that fails when asked to.
func setupEchoServer(t *testing.T, opts ...connect.HandlerOption) *connect.Client[api.GetSharedSettlementRequest, api.GetSharedSettlementResponse] {
	t.Helper()

	opts = append(opts, connect.WithCodec(api.Codec{}))
	handler := connect.NewUnaryHandler(echoProcedure,
		func(ctx context.Context, req *connect.Request[api.GetSharedSettlementRequest]) (*connect.Response[api.GetSharedSettlementResponse], error) {
			if req.Msg.Token == "fail" {
				return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bad token"))
			}
			// expose the request ID to the test through the response
			return connect.NewResponse(&api.GetSharedSettlementResponse{
				People: []api.Person{{Name: GetRequestID(ctx)}},
			}), nil
		},
		opts...,
	)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return connect.NewClient[api.GetSharedSettlementRequest, api.GetSharedSettlementResponse](
		server.Client(), server.URL+echoProcedure, connect.WithCodec(api.Codec{}),
	)
}

func TestLoggingInterceptor_RequestID(t *testing.T) {
	client := setupEchoServer(t, connect.WithInterceptors(LoggingInterceptor()))

	t.Run("generated", func(t *testing.T) {
		resp, err := client.CallUnary(context.Background(), connect.NewRequest(&api.GetSharedSettlementRequest{}))
		require.NoError(t, err)

		id := resp.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, resp.Msg.People[0].Name)
	})

	t.Run("propagated", func(t *testing.T) {
		req := connect.NewRequest(&api.GetSharedSettlementRequest{})
		req.Header().Set(RequestIDHeader, "req-123")

		resp, err := client.CallUnary(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "req-123", resp.Header().Get(RequestIDHeader))
		assert.Equal(t, "req-123", resp.Msg.People[0].Name)
	})

	t.Run("error", func(t *testing.T) {
		req := connect.NewRequest(&api.GetSharedSettlementRequest{Token: "fail"})
		req.Header().Set(RequestIDHeader, "req-456")

		_, err := client.CallUnary(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

		var connectErr *connect.Error
		require.ErrorAs(t, err, &connectErr)
		assert.Equal(t, "req-456", connectErr.Meta().Get(RequestIDHeader))
	})
}

func TestMetricsInterceptor(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	client := setupEchoServer(t, connect.WithInterceptors(MetricsInterceptor(m)))

	_, err := client.CallUnary(context.Background(), connect.NewRequest(&api.GetSharedSettlementRequest{}))
	require.NoError(t, err)
	_, err = client.CallUnary(context.Background(), connect.NewRequest(&api.GetSharedSettlementRequest{Token: "fail"}))
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(echoProcedure, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(echoProcedure, "invalid_argument")))
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantOrigin string
		wantStatus int
	}{
		{"wildcard", []string{"*"}, "https://example.com", http.MethodPost, "*", http.StatusTeapot},
		{"listed origin", []string{"https://dividizky.app"}, "https://dividizky.app", http.MethodPost, "https://dividizky.app", http.StatusTeapot},
		{"unlisted origin", []string{"https://dividizky.app"}, "https://evil.example", http.MethodPost, "", http.StatusTeapot},
		{"preflight", []string{"*"}, "https://example.com", http.MethodOptions, "*", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			CORS(tt.allowed)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), RequestIDHeader)
		})
	}
}
