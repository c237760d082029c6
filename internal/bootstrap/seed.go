package bootstrap

import (
	"context"
	"fmt"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/service/auth"
	"github.com/Domenick1991/hotelbooking/internal/service/hotels"
	"github.com/sirupsen/logrus"
)

type seedUser struct {
	input auth.RegisterInput
	role  domain.Role
}

var seedUsers = []seedUser{
	{auth.RegisterInput{Username: "admin", Email: "admin@hotelbooking.local", Password: "admin123", FullName: "Administrator"}, domain.RoleAdmin},
	{auth.RegisterInput{Username: "user", Email: "user@hotelbooking.local", Password: "user123", FullName: "Demo User"}, domain.RoleUser},
}

var seedHotels = []domain.Hotel{
	{
		Name:        "Grand Plaza Hotel",
		Location:    "New York",
		Description: "Landmark hotel steps from Central Park.",
		Amenities:   "WiFi, Pool, Spa, Gym, Restaurant",
		PriceCents:  24999,
		Rating:      5,
		TotalRooms:  4,
		Featured:    true,
	},
	{
		Name:        "Luxury Suites Central",
		Location:    "New York",
		Description: "Spacious suites in Midtown Manhattan.",
		Amenities:   "WiFi, Room Service, Bar, Concierge",
		PriceCents:  34999,
		Rating:      5,
		TotalRooms:  5,
		Featured:    true,
	},
	{
		Name:        "Riverside Inn",
		Location:    "Chicago",
		Description: "Quiet rooms along the Chicago River.",
		Amenities:   "WiFi, Breakfast, Parking",
		PriceCents:  19999,
		Rating:      4,
		TotalRooms:  4,
	},
}

// Seed creates the default accounts if they are missing and the sample
// hotels when the catalog is empty. It is safe to run on every start.
func Seed(ctx context.Context, users auth.AuthUseCase, catalog hotels.HotelUseCase, logger logrus.FieldLogger) error {
	for _, u := range seedUsers {
		if _, err := users.EnsureUser(ctx, u.input, u.role); err != nil {
			return fmt.Errorf("seed user %s: %w", u.input.Username, err)
		}
	}

	count, err := catalog.Count(ctx)
	if err != nil {
		return fmt.Errorf("count hotels: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, h := range seedHotels {
		if _, err := catalog.Create(ctx, h); err != nil {
			return fmt.Errorf("seed hotel %s: %w", h.Name, err)
		}
	}
	logger.WithField("hotels", len(seedHotels)).Info("seeded sample hotels")
	return nil
}
