package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"currency-service/internal/application"
	"currency-service/internal/domain"
	"currency-service/internal/infrastructure/http/openapi"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 4 << 10

// ReadyCheck reports whether the cache backend is reachable.
type ReadyCheck func(ctx context.Context) error

type Server struct {
	svc      *application.ExchangeRateService
	ping     ReadyCheck
	validate *validator.Validate
	now      func() time.Time
}

var _ openapi.ServerInterface = (*Server)(nil)

func NewServer(svc *application.ExchangeRateService, ready ReadyCheck) *Server {
	return &Server{
		svc:      svc,
		ping:     ready,
		validate: newValidator(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Server) SetReadyCheck(fn ReadyCheck) { s.ping = fn }

type convertInput struct {
	Amount float64 `validate:"gt=0,lte=1e15"`
	From   string  `validate:"currency"`
	To     string  `validate:"currency"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return domain.IsSupported(fl.Field().String())
	})
	return v
}

func (s *Server) GetExchangeRate(w http.ResponseWriter, r *http.Request, from string, to string) {
	from, to = domain.NormalizeCode(from), domain.NormalizeCode(to)
	if err := s.checkCodes(from, to); err != nil {
		badRequest(w, err.Error())
		return
	}
	out := s.svc.Resolve(r.Context(), from, to)
	writeJSON(w, http.StatusOK, openapi.RateResponse{
		From:      from,
		To:        to,
		Rate:      out.Rate,
		Timestamp: s.now(),
	})
}

func (s *Server) ConvertCurrency(w http.ResponseWriter, r *http.Request) {
	var body openapi.ConversionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		badRequest(w, "invalid JSON body")
		return
	}
	in := convertInput{
		Amount: body.Amount,
		From:   domain.NormalizeCode(body.From),
		To:     domain.NormalizeCode(body.To),
	}
	if err := s.validate.Struct(in); err != nil {
		badRequest(w, describe(err).Error())
		return
	}

	c := s.svc.ConvertCurrency(r.Context(), in.Amount, in.From, in.To)
	writeJSON(w, http.StatusOK, openapi.ConversionResponse{
		OriginalAmount:    c.OriginalAmount,
		OriginalCurrency:  c.OriginalCurrency,
		ConvertedAmount:   c.ConvertedAmount,
		ConvertedCurrency: c.ConvertedCurrency,
		ExchangeRate:      c.ExchangeRate,
		Provider:          c.Provider,
		Source:            string(c.Source),
		Timestamp:         c.Timestamp,
	})
}

func (s *Server) GetSupportedCurrencies(w http.ResponseWriter, _ *http.Request) {
	codes := s.svc.GetSupportedCurrencies()
	writeJSON(w, http.StatusOK, openapi.SupportedCurrenciesResponse{Currencies: codes, Count: len(codes)})
}

func (s *Server) GetCurrencyHealth(w http.ResponseWriter, _ *http.Request) {
	h := s.svc.HealthCheck()
	writeJSON(w, http.StatusOK, openapi.HealthResponse{
		Service:   "currency",
		Status:    h.Status,
		Provider:  h.Provider,
		ApiKey:    h.APIKey,
		Timestamp: s.now(),
	})
}

func (s *Server) checkCodes(codes ...string) error {
	for _, c := range codes {
		if err := s.validate.Var(c, "currency"); err != nil {
			return fmt.Errorf("%w %q", domain.ErrUnsupportedCurrency, c)
		}
	}
	return nil
}

// describe maps the first validator failure onto a domain error.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return application.ErrBadRequest
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Amount":
		if fe.Tag() == "lte" {
			return domain.ErrAmountTooLarge
		}
		return domain.ErrInvalidAmount
	case "From", "To":
		return fmt.Errorf("%w %q", domain.ErrUnsupportedCurrency, fe.Value())
	}
	return application.ErrBadRequest
}

// writeJSON encodes before writing the status so encode failures still get an envelope.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(openapi.ErrorResponse{Code: status, Message: "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, openapi.ErrorResponse{Code: status, Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, msg)
}
