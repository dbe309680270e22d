package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"stayvista_service/errors"
)

var validate = validator.New()

func jsonResponse(value interface{}, writer http.ResponseWriter) {
	writer.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(writer).Encode(value)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
	}
}

func jsonError(writer http.ResponseWriter, status int, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]string{"message": message})
}

func statusForError(err error) int {
	switch err.Error() {
	case errors.UserNotFoundError, errors.RoomNotFoundError:
		return http.StatusNotFound
	case errors.InvalidRoomIdError, errors.InvalidBookingIdError,
		errors.InvalidPaymentAmountError, errors.InvalidRequestFormatError:
		return http.StatusBadRequest
	case errors.PaymentGatewayError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
