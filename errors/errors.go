package errors

const (
	UnauthorizedError         = "Unauthorized Access"
	ForbiddenError            = "Forbidden Access"
	InvalidTokenError         = "Token is invalid or expired"
	InvalidRequestFormatError = "Invalid request format"
	UserNotFoundError         = "User not found"
	RoomNotFoundError         = "Room not found"
	InvalidRoomIdError        = "Invalid room id"
	InvalidBookingIdError     = "Invalid booking id"
	InvalidPaymentAmountError = "Invalid payment amount"
	PaymentGatewayError       = "Payment service unavailable"
	DatabaseError             = "Database error"
)
