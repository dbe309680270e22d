package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stayvista_service/authorization"
	"stayvista_service/errors"
	application "stayvista_service/service"
)

type StatsHandler struct {
	service *application.StatsService
	tracer  trace.Tracer
}

func NewStatsHandler(service *application.StatsService, tracer trace.Tracer) *StatsHandler {
	return &StatsHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *StatsHandler) Init(gated *mux.Router) {
	gated.HandleFunc("/admin-stats", handler.AdminStats).Methods("GET")
	gated.HandleFunc("/host-stats", handler.HostStats).Methods("GET")
	gated.HandleFunc("/guest-stats", handler.GuestStats).Methods("GET")
}

func (handler *StatsHandler) AdminStats(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "StatsHandler.AdminStats")
	defer span.End()

	stats, err := handler.service.AdminStats(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		jsonError(writer, http.StatusInternalServerError, errors.DatabaseError)
		return
	}

	jsonResponse(stats, writer)
}

func (handler *StatsHandler) HostStats(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "StatsHandler.HostStats")
	defer span.End()

	claims, ok := authorization.ClaimsFromContext(ctx)
	if !ok {
		jsonError(writer, http.StatusUnauthorized, errors.UnauthorizedError)
		return
	}

	stats, err := handler.service.HostStats(ctx, claims.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		jsonError(writer, http.StatusInternalServerError, errors.DatabaseError)
		return
	}

	jsonResponse(stats, writer)
}

func (handler *StatsHandler) GuestStats(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "StatsHandler.GuestStats")
	defer span.End()

	claims, ok := authorization.ClaimsFromContext(ctx)
	if !ok {
		jsonError(writer, http.StatusUnauthorized, errors.UnauthorizedError)
		return
	}

	stats, err := handler.service.GuestStats(ctx, claims.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		jsonError(writer, http.StatusInternalServerError, errors.DatabaseError)
		return
	}

	jsonResponse(stats, writer)
}
