package api

import (
	"math"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
)

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}

type hotelResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	Description   string  `json:"description"`
	Amenities     string  `json:"amenities"`
	ImageURL      string  `json:"image_url"`
	PricePerNight float64 `json:"price_per_night"`
	Rating        int     `json:"rating"`
	TotalRooms    int     `json:"total_rooms"`
	Featured      bool    `json:"featured"`
}

func toHotelResponse(h domain.Hotel) hotelResponse {
	return hotelResponse{
		ID:            h.ID,
		Name:          h.Name,
		Location:      h.Location,
		Description:   h.Description,
		Amenities:     h.Amenities,
		ImageURL:      h.ImageURL,
		PricePerNight: fromCents(h.PriceCents),
		Rating:        h.Rating,
		TotalRooms:    h.TotalRooms,
		Featured:      h.Featured,
	}
}

func toHotelResponses(hotels []domain.Hotel) []hotelResponse {
	out := make([]hotelResponse, 0, len(hotels))
	for _, h := range hotels {
		out = append(out, toHotelResponse(h))
	}
	return out
}

type bookingResponse struct {
	ID            int64   `json:"id"`
	HotelID       int64   `json:"hotel_id"`
	UserID        int64   `json:"user_id"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Nights        int     `json:"nights"`
	Guests        int     `json:"guests"`
	TotalPrice    float64 `json:"total_price"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	BookingDate   string  `json:"booking_date"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		HotelID:       b.HotelID,
		UserID:        b.UserID,
		CheckIn:       b.CheckIn.Format(domain.DateLayout),
		CheckOut:      b.CheckOut.Format(domain.DateLayout),
		Nights:        b.Nights(),
		Guests:        b.Guests,
		TotalPrice:    fromCents(b.TotalPriceCents),
		Status:        string(b.Status),
		PaymentMethod: b.PaymentMethod,
		BookingDate:   b.BookingDate.Format(domain.DateLayout),
	}
}

func toBookingResponses(bookings []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

type paymentResponse struct {
	ID            int64     `json:"id"`
	BookingID     int64     `json:"booking_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func toPaymentResponse(p *domain.Payment) *paymentResponse {
	if p == nil {
		return nil
	}
	return &paymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		Amount:        fromCents(p.AmountCents),
		Method:        p.Method,
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
	}
}

type availabilityResponse struct {
	HotelID     int64  `json:"hotel_id"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	Available   bool   `json:"available"`
	ActiveCount int    `json:"active_count"`
	TotalRooms  int    `json:"total_rooms"`
}

func toAvailabilityResponse(a *domain.Availability) availabilityResponse {
	return availabilityResponse{
		HotelID:     a.HotelID,
		CheckIn:     a.CheckIn.Format(domain.DateLayout),
		CheckOut:    a.CheckOut.Format(domain.DateLayout),
		Available:   a.Available,
		ActiveCount: a.ActiveCount,
		TotalRooms:  a.TotalRooms,
	}
}
