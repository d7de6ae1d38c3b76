// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grotaveiculos/gateway/internal/platform/apperr"
	"github.com/grotaveiculos/gateway/internal/platform/ctxutil"
	"github.com/grotaveiculos/gateway/internal/platform/validate"
	"github.com/grotaveiculos/gateway/internal/session"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Description: Strict decode — unknown fields are rejected so the boundary
either produces a well-formed typed value or an explicit decode error,
never a permissive best-effort guess.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Claims extracts the verified session claims from the request context.

Returns nil if the request carries no verified session.
*/
func Claims(request *http.Request) *session.Claims {
	return ctxutil.GetClaims(request.Context())
}

/*
RequiredClaims ensures the request carries a verified session and returns it.

Returns:
  - *session.Claims: The verified session claims
  - error: apperr.NotAuthenticated if no session was verified
*/
func RequiredClaims(request *http.Request) (*session.Claims, error) {
	claims := ctxutil.GetClaims(request.Context())
	if claims == nil {
		return nil, apperr.NotAuthenticated()
	}
	return claims, nil
}
