package repository

import (
	"context"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HotelRepository interface {
	List(ctx context.Context) ([]domain.Hotel, error)
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	Search(ctx context.Context, location, name string) ([]domain.Hotel, error)
	Featured(ctx context.Context) ([]domain.Hotel, error)
	Destinations(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, hotel *domain.Hotel) error
	Update(ctx context.Context, hotel *domain.Hotel) error
	Delete(ctx context.Context, id int64) error
}

type PGHotelRepository struct {
	db querier
}

func NewHotelRepository(db *pgxpool.Pool) HotelRepository {
	return &PGHotelRepository{db: db}
}

const hotelColumns = `id, name, location, description, amenities, image_url, price_cents, rating, total_rooms, featured, created_at, updated_at`

func scanHotel(row pgx.Row) (*domain.Hotel, error) {
	var h domain.Hotel
	if err := row.Scan(&h.ID, &h.Name, &h.Location, &h.Description, &h.Amenities, &h.ImageURL, &h.PriceCents, &h.Rating, &h.TotalRooms, &h.Featured, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *PGHotelRepository) queryHotels(ctx context.Context, op, sql string, args ...any) ([]domain.Hotel, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	hotels := make([]domain.Hotel, 0)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		hotels = append(hotels, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return hotels, nil
}

func (r *PGHotelRepository) List(ctx context.Context) ([]domain.Hotel, error) {
	return r.queryHotels(ctx, "list hotels", `SELECT `+hotelColumns+` FROM hotels ORDER BY id`)
}

func (r *PGHotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRow(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id=$1`, id))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrHotelNotFound, "get hotel")
	}
	return h, nil
}

func (r *PGHotelRepository) Search(ctx context.Context, location, name string) ([]domain.Hotel, error) {
	return r.queryHotels(ctx, "search hotels", `SELECT `+hotelColumns+` FROM hotels
		WHERE ($1 = '' OR location ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY rating DESC, id`, location, name)
}

func (r *PGHotelRepository) Featured(ctx context.Context) ([]domain.Hotel, error) {
	return r.queryHotels(ctx, "featured hotels", `SELECT `+hotelColumns+` FROM hotels WHERE featured ORDER BY id`)
}

func (r *PGHotelRepository) Destinations(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT location FROM hotels ORDER BY location`)
	if err != nil {
		return nil, storageErr("list destinations", err)
	}
	defer rows.Close()

	destinations := make([]string, 0)
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, storageErr("list destinations", err)
		}
		destinations = append(destinations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list destinations", err)
	}
	return destinations, nil
}

func (r *PGHotelRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM hotels`).Scan(&n); err != nil {
		return 0, storageErr("count hotels", err)
	}
	return n, nil
}

func (r *PGHotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	err := r.db.QueryRow(ctx, `INSERT INTO hotels (name, location, description, amenities, image_url, price_cents, rating, total_rooms, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		h.Name, h.Location, h.Description, h.Amenities, h.ImageURL, h.PriceCents, h.Rating, h.TotalRooms, h.Featured).
		Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return storageErr("create hotel", err)
	}
	return nil
}

func (r *PGHotelRepository) Update(ctx context.Context, h *domain.Hotel) error {
	err := r.db.QueryRow(ctx, `UPDATE hotels SET name=$1, location=$2, description=$3, amenities=$4, image_url=$5,
		price_cents=$6, rating=$7, total_rooms=$8, featured=$9, updated_at=now()
		WHERE id=$10 RETURNING created_at, updated_at`,
		h.Name, h.Location, h.Description, h.Amenities, h.ImageURL, h.PriceCents, h.Rating, h.TotalRooms, h.Featured, h.ID).
		Scan(&h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return notFoundOr(err, domain.ErrHotelNotFound, "update hotel")
	}
	return nil
}

func (r *PGHotelRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM hotels WHERE id=$1`, id)
	if err != nil {
		return storageErr("delete hotel", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrHotelNotFound
	}
	return nil
}

var _ HotelRepository = (*PGHotelRepository)(nil)
