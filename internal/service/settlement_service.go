package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/text/language"

	"github.com/mmynk/dividizky/internal/calculator"
	"github.com/mmynk/dividizky/internal/metrics"
	"github.com/mmynk/dividizky/internal/models"
	"github.com/mmynk/dividizky/internal/share"
	"github.com/mmynk/dividizky/internal/summary"
	"github.com/mmynk/dividizky/internal/validation"
	"github.com/mmynk/dividizky/pkg/api"
	"github.com/mmynk/dividizky/pkg/api/apiconnect"
)

// SettlementService implements the Connect SettlementService
type SettlementService struct {
	apiconnect.UnimplementedSettlementServiceHandler
	links         *share.Manager
	metrics       *metrics.Metrics
	defaultLocale language.Tag
	now           func() time.Time
}

// NewSettlementService creates a SettlementService. links signs share links;
// m may be nil. defaultLocale is used when a Summarize request carries no
// locale and no Accept-Language header.
func NewSettlementService(links *share.Manager, m *metrics.Metrics, defaultLocale language.Tag) *SettlementService {
	return &SettlementService{
		links:         links,
		metrics:       m,
		defaultLocale: summary.Locale(defaultLocale),
		now:           time.Now,
	}
}

// Calculate splits the expense and returns balances and payments.
func (s *SettlementService) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	result, err := s.settle(metrics.SourceCalculate, req.Msg.People, req.Msg.AdditionalPeople)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.CalculateResponse{
		Result: api.FromResult(result),
	}), nil
}

// Summarize calculates and renders the shareable message.
func (s *SettlementService) Summarize(ctx context.Context, req *connect.Request[api.SummarizeRequest]) (*connect.Response[api.SummarizeResponse], error) {
	result, err := s.settle(metrics.SourceSummarize, req.Msg.People, req.Msg.AdditionalPeople)
	if err != nil {
		return nil, err
	}

	tag := s.locale(req.Msg.Locale, req.Header().Get("Accept-Language"))
	msg := summary.Message(result, summary.Options{Locale: tag, Date: s.now()})
	slog.Debug("Summary rendered", "locale", tag.String(), "length", len(msg))

	return connect.NewResponse(&api.SummarizeResponse{
		Result:   api.FromResult(result),
		Message:  msg,
		ShareUrl: summary.ShareURL(msg),
		Locale:   tag.String(),
	}), nil
}

// CreateShareLink validates the input and signs it into a share token.
func (s *SettlementService) CreateShareLink(ctx context.Context, req *connect.Request[api.CreateShareLinkRequest]) (*connect.Response[api.CreateShareLinkResponse], error) {
	people := api.Participants(req.Msg.People)
	additional := int(req.Msg.AdditionalPeople)
	if err := s.validate(metrics.SourceShareLink, people, additional); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.links.Issue(share.NewRequest(people, additional))
	if err != nil {
		slog.Error("CreateShareLink failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Share link created", "people", len(people), "additional", additional, "expires_at", expiresAt)
	return connect.NewResponse(&api.CreateShareLinkResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}), nil
}

// GetSharedSettlement verifies a share token and recomputes the settlement
// it describes.
func (s *SettlementService) GetSharedSettlement(ctx context.Context, req *connect.Request[api.GetSharedSettlementRequest]) (*connect.Response[api.GetSharedSettlementResponse], error) {
	shared, err := s.links.Parse(req.Msg.Token)
	if err != nil {
		slog.Warn("GetSharedSettlement rejected token", "error", err)
		if errors.Is(err, share.ErrInvalidToken) {
			return nil, connect.NewError(connect.CodeInvalidArgument, share.ErrInvalidToken)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	people := api.FromParticipants(shared.Participants())
	additional := int32(shared.Additional)
	result, err := s.settle(metrics.SourceShareLink, people, additional)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetSharedSettlementResponse{
		People:           people,
		AdditionalPeople: additional,
		Result:           api.FromResult(result),
	}), nil
}

// settle validates the input and runs the settlement engine.
func (s *SettlementService) settle(source string, people []api.Person, additional int32) (models.ExpenseResult, error) {
	participants := api.Participants(people)
	if err := s.validate(source, participants, int(additional)); err != nil {
		return models.ExpenseResult{}, err
	}

	result := calculator.CalculateExpenses(participants, int(additional))
	s.metrics.ObserveSettlement(source, result.NumberOfPeople, len(result.Payments))

	slog.Debug("Settlement computed",
		"source", source,
		"total", result.TotalExpense,
		"people", result.NumberOfPeople,
		"per_person", result.PerPersonExpense,
		"payments", len(result.Payments),
	)
	return result, nil
}

func (s *SettlementService) validate(source string, people []models.Participant, additional int) error {
	if err := validation.Validate(people, additional); err != nil {
		s.metrics.ObserveValidationFailure(source)
		slog.Warn("Invalid settlement input", "source", source, "error", err)
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

// locale picks the first non-empty of the request's locale and its
// Accept-Language header, falling back to the server default.
func (s *SettlementService) locale(candidates ...string) language.Tag {
	for _, c := range candidates {
		if c != "" {
			return summary.ParseLocale(c)
		}
	}
	return s.defaultLocale
}
