// Package apiconnect wires the dividizky.v1 settlement API to Connect
// handlers and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/dividizky/pkg/api"
)

// SettlementServiceName is the fully-qualified name of the SettlementService.
const SettlementServiceName = "dividizky.v1.SettlementService"

// Procedure paths, used both for routing and in interceptors
// (connect.Spec.Procedure).
const (
	SettlementServiceCalculateProcedure           = "/dividizky.v1.SettlementService/Calculate"
	SettlementServiceSummarizeProcedure           = "/dividizky.v1.SettlementService/Summarize"
	SettlementServiceCreateShareLinkProcedure     = "/dividizky.v1.SettlementService/CreateShareLink"
	SettlementServiceGetSharedSettlementProcedure = "/dividizky.v1.SettlementService/GetSharedSettlement"
)

// SettlementServiceHandler is implemented by the server.
type SettlementServiceHandler interface {
	Calculate(context.Context, *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error)
	Summarize(context.Context, *connect.Request[api.SummarizeRequest]) (*connect.Response[api.SummarizeResponse], error)
	CreateShareLink(context.Context, *connect.Request[api.CreateShareLinkRequest]) (*connect.Response[api.CreateShareLinkResponse], error)
	GetSharedSettlement(context.Context, *connect.Request[api.GetSharedSettlementRequest]) (*connect.Response[api.GetSharedSettlementResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler for svc and returns the
// path prefix to mount it on.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)

	calculate := connect.NewUnaryHandler(SettlementServiceCalculateProcedure, svc.Calculate, opts...)
	summarize := connect.NewUnaryHandler(SettlementServiceSummarizeProcedure, svc.Summarize, opts...)
	createShareLink := connect.NewUnaryHandler(SettlementServiceCreateShareLinkProcedure, svc.CreateShareLink, opts...)
	getSharedSettlement := connect.NewUnaryHandler(SettlementServiceGetSharedSettlementProcedure, svc.GetSharedSettlement, opts...)

	return "/" + SettlementServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SettlementServiceCalculateProcedure:
			calculate.ServeHTTP(w, r)
		case SettlementServiceSummarizeProcedure:
			summarize.ServeHTTP(w, r)
		case SettlementServiceCreateShareLinkProcedure:
			createShareLink.ServeHTTP(w, r)
		case SettlementServiceGetSharedSettlementProcedure:
			getSharedSettlement.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// SettlementServiceClient calls a remote SettlementService.
type SettlementServiceClient interface {
	Calculate(context.Context, *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error)
	Summarize(context.Context, *connect.Request[api.SummarizeRequest]) (*connect.Response[api.SummarizeResponse], error)
	CreateShareLink(context.Context, *connect.Request[api.CreateShareLinkRequest]) (*connect.Response[api.CreateShareLinkResponse], error)
	GetSharedSettlement(context.Context, *connect.Request[api.GetSharedSettlementRequest]) (*connect.Response[api.GetSharedSettlementResponse], error)
}

// NewSettlementServiceClient returns a client for the service at baseURL
// (e.g. "http://localhost:8080").
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)

	return &settlementServiceClient{
		calculate: connect.NewClient[api.CalculateRequest, api.CalculateResponse](
			httpClient, baseURL+SettlementServiceCalculateProcedure, opts...),
		summarize: connect.NewClient[api.SummarizeRequest, api.SummarizeResponse](
			httpClient, baseURL+SettlementServiceSummarizeProcedure, opts...),
		createShareLink: connect.NewClient[api.CreateShareLinkRequest, api.CreateShareLinkResponse](
			httpClient, baseURL+SettlementServiceCreateShareLinkProcedure, opts...),
		getSharedSettlement: connect.NewClient[api.GetSharedSettlementRequest, api.GetSharedSettlementResponse](
			httpClient, baseURL+SettlementServiceGetSharedSettlementProcedure, opts...),
	}
}

type settlementServiceClient struct {
	calculate           *connect.Client[api.CalculateRequest, api.CalculateResponse]
	summarize           *connect.Client[api.SummarizeRequest, api.SummarizeResponse]
	createShareLink     *connect.Client[api.CreateShareLinkRequest, api.CreateShareLinkResponse]
	getSharedSettlement *connect.Client[api.GetSharedSettlementRequest, api.GetSharedSettlementResponse]
}

func (c *settlementServiceClient) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

func (c *settlementServiceClient) Summarize(ctx context.Context, req *connect.Request[api.SummarizeRequest]) (*connect.Response[api.SummarizeResponse], error) {
	return c.summarize.CallUnary(ctx, req)
}

func (c *settlementServiceClient) CreateShareLink(ctx context.Context, req *connect.Request[api.CreateShareLinkRequest]) (*connect.Response[api.CreateShareLinkResponse], error) {
	return c.createShareLink.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetSharedSettlement(ctx context.Context, req *connect.Request[api.GetSharedSettlementRequest]) (*connect.Response[api.GetSharedSettlementResponse], error) {
	return c.getSharedSettlement.CallUnary(ctx, req)
}

// UnimplementedSettlementServiceHandler returns CodeUnimplemented from all
// methods. Embed it to stay compatible with new methods.
type UnimplementedSettlementServiceHandler struct{}

func (UnimplementedSettlementServiceHandler) Calculate(context.Context, *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dividizky.v1.SettlementService.Calculate is not implemented"))
}

func (UnimplementedSettlementServiceHandler) Summarize(context.Context, *connect.Request[api.SummarizeRequest]) (*connect.Response[api.SummarizeResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dividizky.v1.SettlementService.Summarize is not implemented"))
}

func (UnimplementedSettlementServiceHandler) CreateShareLink(context.Context, *connect.Request[api.CreateShareLinkRequest]) (*connect.Response[api.CreateShareLinkResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dividizky.v1.SettlementService.CreateShareLink is not implemented"))
}

func (UnimplementedSettlementServiceHandler) GetSharedSettlement(context.Context, *connect.Request[api.GetSharedSettlementRequest]) (*connect.Response[api.GetSharedSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dividizky.v1.SettlementService.GetSharedSettlement is not implemented"))
}
