// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package verification

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grotaveiculos/gateway/internal/platform/apperr"
	requestutil "github.com/grotaveiculos/gateway/internal/platform/request"
	"github.com/grotaveiculos/gateway/internal/platform/respond"
	"github.com/grotaveiculos/gateway/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the HTTP surface of the confirmation flow.
//
// # Scope
//
// The flow is unauthenticated by design — it is reachable only from a link
// carrying the kind and email, independent of the route gate.
type Handler struct {
	flow *Flow
}

// NewHandler constructs a new [Handler] with its flow dependency.
func NewHandler(flow *Flow) *Handler {
	return &Handler{flow: flow}
}

// Routes returns a [chi.Router] configured with the confirmation endpoints.
//
// # Endpoints
//   - GET  / : Describes the flow for a link (kind + email echo).
//   - POST / : Exchanges a token and reports the outcome.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.describe)
	router.Post("/", handler.exchange)

	return router
}

// # Request Payloads

type exchangeRequest struct {
	Tipo  string `json:"tipo"`
	Email string `json:"email"`
	Token string `json:"token"`
}

/*
describe reports which flow a verification link opens.

GET /confirmacao?tipo=redefinicao-senha&email=user@example.com

Description: Applies the explicit default-kind policy (absent or unrecognized
"tipo" means email verification) and echoes the resolved kind and email so
the page can render the right form.

Response:
  - 200: {tipo, kind, email}
*/
func (handler *Handler) describe(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	kind := KindFromQuery(query.Get("tipo"))

	respond.OK(writer, map[string]string{
		"tipo":  kind.QueryValue(),
		"kind":  string(kind),
		"email": query.Get("email"),
	})
}

/*
exchange redeems a verification token.

POST /confirmacao

Description: Validates the payload, resolves the explicit kind tag, and
delegates to [Flow.Exchange]. Token problems are outcomes in a 200 body, not
errors — the user can always request a fresh token.

Request:
  - Body: exchangeRequest (Tipo, Email, Token)

Response:
  - 200: {result}: accepted | expired | mismatched-email | invalid
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 503: UPSTREAM_UNAVAILABLE: Token store unreachable
*/
func (handler *Handler) exchange(writer http.ResponseWriter, request *http.Request) {
	var input exchangeRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("email", input.Email).
		Email("email", input.Email).
		Required("token", input.Token)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	kind := KindFromQuery(input.Tipo)

	outcome, err := handler.flow.Exchange(request.Context(), kind, input.Email, input.Token)
	if err != nil {
		respond.Error(writer, request, apperr.UpstreamUnavailable(err))
		return
	}

	respond.OK(writer, map[string]string{"result": string(outcome)})
}
