package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stayvista_service/authorization"
	"stayvista_service/errors"
)

type AuthHandler struct {
	tokens     *authorization.TokenManager
	production bool
	tracer     trace.Tracer
}

func NewAuthHandler(tokens *authorization.TokenManager, production bool, tracer trace.Tracer) *AuthHandler {
	return &AuthHandler{
		tokens:     tokens,
		production: production,
		tracer:     tracer,
	}
}

func (handler *AuthHandler) Init(public *mux.Router) {
	public.HandleFunc("/jwt", handler.CreateToken).Methods("POST")
	public.HandleFunc("/logout", handler.Logout).Methods("GET")
}

type tokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (handler *AuthHandler) CreateToken(writer http.ResponseWriter, req *http.Request) {
	_, span := handler.tracer.Start(req.Context(), "AuthHandler.CreateToken")
	defer span.End()

	var request tokenRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		jsonError(writer, http.StatusBadRequest, errors.InvalidRequestFormatError)
		return
	}
	if err := validate.Struct(&request); err != nil {
		jsonError(writer, http.StatusBadRequest, err.Error())
		return
	}

	token, expires, err := handler.tokens.Issue(request.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		jsonError(writer, http.StatusInternalServerError, err.Error())
		return
	}

	authorization.SetSessionCookie(writer, token, expires, handler.production)
	jsonResponse(map[string]bool{"success": true}, writer)
}

func (handler *AuthHandler) Logout(writer http.ResponseWriter, req *http.Request) {
	_, span := handler.tracer.Start(req.Context(), "AuthHandler.Logout")
	defer span.End()

	authorization.ClearSessionCookie(writer, handler.production)
	jsonResponse(map[string]bool{"success": true}, writer)
}
