package domain

import (
	"encoding/json"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleGuest UserRole = "guest"
	RoleHost  UserRole = "host"
	RoleAdmin UserRole = "admin"
)

type UserStatus string

const (
	StatusNone      UserStatus = ""
	StatusRequested UserStatus = "requested"
	StatusVerified  UserStatus = "verified"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Role      UserRole           `bson:"role,omitempty" json:"role,omitempty"`
	Status    UserStatus         `bson:"status,omitempty" json:"status,omitempty"`
	Timestamp int64              `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
}

// Party identifies one side of a booking. Hosts carry only an email,
// guests additionally carry a display name.
type Party struct {
	Email string `bson:"email" json:"email" validate:"required,email"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

type Room struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title,omitempty" json:"title,omitempty" validate:"required"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty" validate:"required"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Price       float64            `bson:"price,omitempty" json:"price,omitempty" validate:"required,gt=0"`
	TotalGuest  int                `bson:"total_guest,omitempty" json:"total_guest,omitempty"`
	Bedrooms    int                `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms   int                `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	From        string             `bson:"from,omitempty" json:"from,omitempty"`
	To          string             `bson:"to,omitempty" json:"to,omitempty"`
	Booked      bool               `bson:"booked" json:"booked"`
	Host        Party              `bson:"host" json:"host"`
}

type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RoomID        string             `bson:"roomId" json:"roomId" validate:"required"`
	Title         string             `bson:"title,omitempty" json:"title,omitempty"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Guest         Party              `bson:"guest" json:"guest" validate:"required"`
	Host          Party              `bson:"host" json:"host"`
	Date          time.Time          `bson:"date" json:"date" validate:"required"`
	Price         float64            `bson:"price" json:"price" validate:"required,gt=0"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
}

// Claims is the payload of the session credential. The role is looked up
// from the user store on every request, never trusted from the token.
type Claims struct {
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type RoleChange struct {
	Role   UserRole   `json:"role" validate:"required,oneof=guest host admin"`
	Status UserStatus `json:"status,omitempty"`
}

type RoomStatusChange struct {
	Status bool `json:"status"`
}

type PaymentIntentRequest struct {
	Price float64 `json:"price"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// ChartRow is one [label, value] aggregation bucket for client-side charts.
type ChartRow []interface{}

type AdminStats struct {
	TotalSales    float64    `json:"totalSales"`
	TotalBookings int        `json:"totalBookings"`
	TotalUsers    int64      `json:"totalUsers"`
	TotalRooms    int64      `json:"totalRooms"`
	ChartData     []ChartRow `json:"chartData"`
}

type HostStats struct {
	TotalSales    float64    `json:"totalSales"`
	TotalBookings int        `json:"totalBookings"`
	TotalRooms    int64      `json:"totalRooms"`
	HostSince     int64      `json:"hostSince"`
	ChartData     []ChartRow `json:"chartData"`
}

type GuestStats struct {
	TotalSpent    float64    `json:"totalSpent"`
	TotalBookings int        `json:"totalBookings"`
	GuestSince    int64      `json:"guestSince"`
	ChartData     []ChartRow `json:"chartData"`
}

type BookingCreatedEvent struct {
	BookingID  string    `json:"bookingId"`
	RoomID     string    `json:"roomId"`
	RoomTitle  string    `json:"roomTitle"`
	GuestEmail string    `json:"guestEmail"`
	GuestName  string    `json:"guestName"`
	HostEmail  string    `json:"hostEmail"`
	Date       time.Time `json:"date"`
	Price      float64   `json:"price"`
}

func (b *Booking) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(b)
}

func (o *Room) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *Room) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(o)
}
