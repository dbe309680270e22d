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

type RoomHandler struct {
	service *application.RoomService
	tracer  trace.Tracer
}

func NewRoomHandler(service *application.RoomService, tracer trace.Tracer) *RoomHandler {
	return &RoomHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *RoomHandler) Init(public, authed, gated *mux.Router) {
	public.HandleFunc("/rooms", handler.GetAll).Methods("GET")
	public.HandleFunc("/room/{id}", handler.Get).Methods("GET")

	authed.HandleFunc("/room/status/{id}", handler.SetStatus).Methods("PATCH")

	gated.HandleFunc("/my-listings/{email}", handler.GetByHost).Methods("GET")
	gated.HandleFunc("/room", handler.Create).Methods("POST")
	gated.HandleFunc("/room/{id}", handler.Update).Methods("PATCH")
	gated.HandleFunc("/room/{id}", handler.Delete).Methods("DELETE")
}

func (handler *RoomHandler) GetAll(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.GetAll")
	defer span.End()

	category := req.URL.Query().Get("category")
	// the frontend sends the literal string "null" for no filter
	if category == "null" {
		category = ""
	}

	rooms, err := handler.service.GetAll(ctx, category)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		jsonError(writer, http.StatusInternalServerError, errors.DatabaseError)
		return
	}

	jsonResponse(rooms, writer)
}

func (handler *RoomHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.Get")
	defer span.End()

	id := mux.Vars(req)["id"]
	room, err := handler.service.Get(ctx, id)
	if err != nil {
		jsonError(writer, statusForError(err), err.Error())
		return
	}

	jsonResponse(room, writer)
}

func (handler *RoomHandler) GetByHost(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.GetByHost")
	defer span.End()

	email := mux.Vars(req)["email"]
	rooms, err := handler.service.GetByHost(ctx, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		jsonError(writer, http.StatusInternalServerError, errors.DatabaseError)
		return
	}

	jsonResponse(rooms, writer)
}

func (handler *RoomHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.Create")
	defer span.End()

	var room domain.Room
	if err := room.FromJSON(req.Body); err != nil {
		jsonError(writer, http.StatusBadRequest, errors.InvalidRequestFormatError)
		return
	}
	if err := validate.Struct(&room); err != nil {
		jsonError(writer, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := handler.service.Create(ctx, &room)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		jsonError(writer, http.StatusInternalServerError, errors.DatabaseError)
		return
	}

	jsonResponse(saved, writer)
}

func (handler *RoomHandler) Update(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.Update")
	defer span.End()

	id := mux.Vars(req)["id"]

	var room domain.Room
	if err := room.FromJSON(req.Body); err != nil {
		jsonError(writer, http.StatusBadRequest, errors.InvalidRequestFormatError)
		return
	}

	if err := handler.service.Update(ctx, id, &room); err != nil {
		jsonError(writer, statusForError(err), err.Error())
		return
	}

	jsonResponse(map[string]bool{"success": true}, writer)
}

func (handler *RoomHandler) SetStatus(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.SetStatus")
	defer span.End()

	id := mux.Vars(req)["id"]

	var change domain.RoomStatusChange
	if err := json.NewDecoder(req.Body).Decode(&change); err != nil {
		jsonError(writer, http.StatusBadRequest, errors.InvalidRequestFormatError)
		return
	}

	if err := handler.service.SetBooked(ctx, id, change.Status); err != nil {
		jsonError(writer, statusForError(err), err.Error())
		return
	}

	jsonResponse(map[string]bool{"success": true}, writer)
}

func (handler *RoomHandler) Delete(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RoomHandler.Delete")
	defer span.End()

	id := mux.Vars(req)["id"]
	if err := handler.service.Delete(ctx, id); err != nil {
		jsonError(writer, statusForError(err), err.Error())
		return
	}

	jsonResponse(map[string]bool{"success": true}, writer)
}
