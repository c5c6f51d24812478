// Package openapi holds the wire types and chi bindings for api/openapi.yaml.
package openapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ConversionRequest defines model for ConversionRequest.
type ConversionRequest struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

// RateResponse defines model for RateResponse.
type RateResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Rate      float64   `json:"rate"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversionResponse defines model for ConversionResponse.
type ConversionResponse struct {
	OriginalAmount    float64   `json:"originalAmount"`
	OriginalCurrency  string    `json:"originalCurrency"`
	ConvertedAmount   float64   `json:"convertedAmount"`
	ConvertedCurrency string    `json:"convertedCurrency"`
	ExchangeRate      float64   `json:"exchangeRate"`
	Provider          string    `json:"provider"`
	Source            string    `json:"source"`
	Timestamp         time.Time `json:"timestamp"`
}

// SupportedCurrenciesResponse defines model for SupportedCurrenciesResponse.
type SupportedCurrenciesResponse struct {
	Currencies []string `json:"currencies"`
	Count      int      `json:"count"`
}

// HealthResponse defines model for HealthResponse.
type HealthResponse struct {
	Service   string    `json:"service"`
	Status    string    `json:"status"`
	Provider  string    `json:"provider"`
	ApiKey    bool      `json:"apiKey"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /currency/rates/{from}/{to})
	GetExchangeRate(w http.ResponseWriter, r *http.Request, from string, to string)
	// (POST /currency/convert)
	ConvertCurrency(w http.ResponseWriter, r *http.Request)
	// (GET /currency/supported)
	GetSupportedCurrencies(w http.ResponseWriter, r *http.Request)
	// (GET /currency/health)
	GetCurrencyHealth(w http.ResponseWriter, r *http.Request)
}

type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper converts chi contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

func (siw *ServerInterfaceWrapper) GetExchangeRate(w http.ResponseWriter, r *http.Request) {
	var from, to string
	opts := runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true}

	if err := runtime.BindStyledParameterWithOptions("simple", "from", chi.URLParam(r, "from"), &from, opts); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "from", Err: err})
		return
	}
	if err := runtime.BindStyledParameterWithOptions("simple", "to", chi.URLParam(r, "to"), &to, opts); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "to", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetExchangeRate(w, r, from, to)
	})
}

func (siw *ServerInterfaceWrapper) ConvertCurrency(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.ConvertCurrency)
}

func (siw *ServerInterfaceWrapper) GetSupportedCurrencies(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.GetSupportedCurrencies)
}

func (siw *ServerInterfaceWrapper) GetCurrencyHealth(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.GetCurrencyHealth)
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	var handler http.Handler = fn
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions creates http.Handler with additional options
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/currency/rates/{from}/{to}", wrapper.GetExchangeRate)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/currency/convert", wrapper.ConvertCurrency)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/currency/supported", wrapper.GetSupportedCurrencies)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/currency/health", wrapper.GetCurrencyHealth)
	})
	return r
}
