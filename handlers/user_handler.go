package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stayvista_service/domain"
	"stayvista_service/errors"
	application "stayvista_service/service"
)

type UserHandler struct {
	service *application.UserService
	tracer  trace.Tracer
}

func NewUserHandler(service *application.UserService, tracer trace.Tracer) *UserHandler {
	return &UserHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *UserHandler) Init(public, gated *mux.Router) {
	public.HandleFunc("/user", handler.Upsert).Methods("PUT")
	public.HandleFunc("/user/{email}", handler.Get).Methods("GET")

	gated.HandleFunc("/users", handler.GetAll).Methods("GET")
	gated.HandleFunc("/user/update/role/{email}", handler.UpdateRole).Methods("PATCH")
}

func (handler *UserHandler) Upsert(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Upsert")
	defer span.End()

	var user domain.User
	if err := json.NewDecoder(req.Body).Decode(&user); err != nil {
		jsonError(writer, http.StatusBadRequest, errors.InvalidRequestFormatError)
		return
	}
	if err := validate.Struct(&user); err != nil {
		jsonError(writer, http.StatusBadRequest, err.Error())
		return
	}

	if err := handler.service.Upsert(ctx, &user); err != nil {
		span.SetStatus(codes.Error, err.Error())
		jsonError(writer, http.StatusInternalServerError, errors.DatabaseError)
		return
	}

	jsonResponse(map[string]bool{"success": true}, writer)
}

func (handler *UserHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Get")
	defer span.End()

	email := mux.Vars(req)["email"]
	user, err := handler.service.Get(ctx, email)
	if err != nil {
		jsonError(writer, http.StatusNotFound, errors.UserNotFoundError)
		return
	}

	jsonResponse(user, writer)
}

func (handler *UserHandler) GetAll(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.GetAll")
	defer span.End()

	users, err := handler.service.GetAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		jsonError(writer, http.StatusInternalServerError, errors.DatabaseError)
		return
	}

	jsonResponse(users, writer)
}

func (handler *UserHandler) UpdateRole(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.UpdateRole")
	defer span.End()

	email := mux.Vars(req)["email"]

	var change domain.RoleChange
	if err := json.NewDecoder(req.Body).Decode(&change); err != nil {
		jsonError(writer, http.StatusBadRequest, errors.InvalidRequestFormatError)
		return
	}
	if err := validate.Struct(&change); err != nil {
		jsonError(writer, http.StatusBadRequest, err.Error())
		return
	}

	if err := handler.service.UpdateRole(ctx, email, &change); err != nil {
		span.SetStatus(codes.Error, err.Error())
		jsonError(writer, http.StatusInternalServerError, errors.DatabaseError)
		return
	}

	jsonResponse(map[string]bool{"success": true}, writer)
}
