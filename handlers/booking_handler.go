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

type BookingHandler struct {
	bookings *application.BookingService
	payments *application.PaymentService
	tracer   trace.Tracer
}

func NewBookingHandler(bookings *application.BookingService, payments *application.PaymentService, tracer trace.Tracer) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		payments: payments,
		tracer:   tracer,
	}
}

func (handler *BookingHandler) Init(authed, gated *mux.Router) {
	authed.HandleFunc("/booking", handler.Create).Methods("POST")
	authed.HandleFunc("/booking/{id}", handler.Delete).Methods("DELETE")
	authed.HandleFunc("/my-bookings/{email}", handler.MyBookings).Methods("GET")
	authed.HandleFunc("/create-payment-intent", handler.CreatePaymentIntent).Methods("POST")

	gated.HandleFunc("/manage-bookings/{email}", handler.ManageBookings).Methods("GET")
}

func (handler *BookingHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Create")
	defer span.End()

	var booking domain.Booking
	if err := booking.FromJSON(req.Body); err != nil {
		jsonError(writer, http.StatusBadRequest, errors.InvalidRequestFormatError)
		return
	}
	if err := validate.Struct(&booking); err != nil {
		jsonError(writer, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := handler.bookings.Create(ctx, &booking)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		jsonError(writer, statusForError(err), err.Error())
		return
	}

	jsonResponse(saved, writer)
}

func (handler *BookingHandler) Delete(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Delete")
	defer span.End()

	id := mux.Vars(req)["id"]
	if err := handler.bookings.Cancel(ctx, id); err != nil {
		jsonError(writer, statusForError(err), err.Error())
		return
	}

	jsonResponse(map[string]bool{"success": true}, writer)
}

func (handler *BookingHandler) MyBookings(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.MyBookings")
	defer span.End()

	email := mux.Vars(req)["email"]
	bookings, err := handler.bookings.GetByGuest(ctx, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		jsonError(writer, http.StatusInternalServerError, errors.DatabaseError)
		return
	}

	jsonResponse(bookings, writer)
}

func (handler *BookingHandler) ManageBookings(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.ManageBookings")
	defer span.End()

	email := mux.Vars(req)["email"]
	bookings, err := handler.bookings.GetByHost(ctx, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		jsonError(writer, http.StatusInternalServerError, errors.DatabaseError)
		return
	}

	jsonResponse(bookings, writer)
}

func (handler *BookingHandler) CreatePaymentIntent(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.CreatePaymentIntent")
	defer span.End()

	var request domain.PaymentIntentRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		jsonError(writer, http.StatusBadRequest, errors.InvalidRequestFormatError)
		return
	}

	clientSecret, err := handler.payments.CreatePaymentIntent(ctx, request.Price)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		jsonError(writer, statusForError(err), err.Error())
		return
	}

	jsonResponse(domain.PaymentIntentResponse{ClientSecret: clientSecret}, writer)
}
