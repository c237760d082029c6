package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
)

// MemoryStore keeps every table in process memory. It backs local runs with
// `database.driver: memory` and the service tests. Writers for one hotel are
// serialised with a per-hotel mutex, mirroring the row lock PGUnitOfWork takes.
type MemoryStore struct {
	mu       sync.RWMutex
	hotels   map[int64]domain.Hotel
	bookings map[int64]domain.Booking
	users    map[int64]domain.User
	payments []domain.Payment
	events   []domain.BookingEvent

	nextHotel, nextBooking, nextUser, nextPayment int64

	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		hotels:   make(map[int64]domain.Hotel),
		bookings: make(map[int64]domain.Booking),
		users:    make(map[int64]domain.User),
		locks:    make(map[int64]*sync.Mutex),
	}
}

func (s *MemoryStore) Hotels() HotelRepository     { return memoryHotels{s} }
func (s *MemoryStore) Bookings() BookingRepository { return memoryBookings{s} }
func (s *MemoryStore) Users() UserRepository       { return memoryUsers{s} }
func (s *MemoryStore) Payments() PaymentRepository { return memoryPayments{s} }
func (s *MemoryStore) Events() EventRepository     { return memoryEvents{s} }

func (s *MemoryStore) hotelLock(hotelID int64) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[hotelID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[hotelID] = l
	}
	return l
}

func (s *MemoryStore) WithinHotel(ctx context.Context, hotelID int64, fn func(ctx context.Context, scope HotelScope) error) error {
	l := s.hotelLock(hotelID)
	l.Lock()
	defer l.Unlock()

	s.mu.RLock()
	_, ok := s.hotels[hotelID]
	s.mu.RUnlock()
	if !ok {
		return domain.ErrHotelNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, HotelScope{Hotels: s.Hotels(), Bookings: s.Bookings()})
}

type memoryHotels struct{ s *MemoryStore }

func (m memoryHotels) filter(keep func(domain.Hotel) bool) []domain.Hotel {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := make([]domain.Hotel, 0, len(m.s.hotels))
	for _, h := range m.s.hotels {
		if keep(h) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m memoryHotels) List(ctx context.Context) ([]domain.Hotel, error) {
	return m.filter(func(domain.Hotel) bool { return true }), nil
}

func (m memoryHotels) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	h, ok := m.s.hotels[id]
	if !ok {
		return nil, domain.ErrHotelNotFound
	}
	return &h, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (m memoryHotels) Search(ctx context.Context, location, name string) ([]domain.Hotel, error) {
	out := m.filter(func(h domain.Hotel) bool {
		return (location == "" || containsFold(h.Location, location)) && (name == "" || containsFold(h.Name, name))
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out, nil
}

func (m memoryHotels) Featured(ctx context.Context) ([]domain.Hotel, error) {
	return m.filter(func(h domain.Hotel) bool { return h.Featured }), nil
}

func (m memoryHotels) Destinations(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, h := range m.filter(func(domain.Hotel) bool { return true }) {
		if _, ok := seen[h.Location]; !ok {
			seen[h.Location] = struct{}{}
			out = append(out, h.Location)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m memoryHotels) Count(ctx context.Context) (int64, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return int64(len(m.s.hotels)), nil
}

func (m memoryHotels) Create(ctx context.Context, h *domain.Hotel) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.nextHotel++
	now := time.Now().UTC()
	h.ID, h.CreatedAt, h.UpdatedAt = m.s.nextHotel, now, now
	m.s.hotels[h.ID] = *h
	return nil
}

func (m memoryHotels) Update(ctx context.Context, h *domain.Hotel) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	existing, ok := m.s.hotels[h.ID]
	if !ok {
		return domain.ErrHotelNotFound
	}
	h.CreatedAt, h.UpdatedAt = existing.CreatedAt, time.Now().UTC()
	m.s.hotels[h.ID] = *h
	return nil
}

func (m memoryHotels) Delete(ctx context.Context, id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.hotels[id]; !ok {
		return domain.ErrHotelNotFound
	}
	delete(m.s.hotels, id)
	for bid, b := range m.s.bookings {
		if b.HotelID == id {
			delete(m.s.bookings, bid)
		}
	}
	return nil
}

type memoryBookings struct{ s *MemoryStore }

func (m memoryBookings) filter(keep func(domain.Booking) bool) []domain.Booking {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := make([]domain.Booking, 0)
	for _, b := range m.s.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func newestFirst(bookings []domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].BookingDate.Equal(bookings[j].BookingDate) {
			return bookings[i].BookingDate.After(bookings[j].BookingDate)
		}
		return bookings[i].ID > bookings[j].ID
	})
}

func (m memoryBookings) Insert(ctx context.Context, b *domain.Booking) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.hotels[b.HotelID]; !ok {
		return domain.ErrHotelNotFound
	}
	m.s.nextBooking++
	now := time.Now().UTC()
	b.ID, b.CreatedAt, b.UpdatedAt = m.s.nextBooking, now, now
	m.s.bookings[b.ID] = *b
	return nil
}

func (m memoryBookings) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	b, ok := m.s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &b, nil
}

func (m memoryBookings) FindOverlapping(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) ([]domain.Booking, error) {
	out := m.filter(func(b domain.Booking) bool {
		return b.HotelID == hotelID && b.Status.Active() && b.Overlaps(checkIn, checkOut)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	return out, nil
}

func (m memoryBookings) Update(ctx context.Context, b *domain.Booking) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	existing, ok := m.s.bookings[b.ID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	existing.Status = b.Status
	existing.PaymentMethod = b.PaymentMethod
	existing.UpdatedAt = time.Now().UTC()
	m.s.bookings[b.ID] = existing
	b.UpdatedAt = existing.UpdatedAt
	return nil
}

func (m memoryBookings) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	out := m.filter(func(b domain.Booking) bool { return b.UserID == userID })
	newestFirst(out)
	return out, nil
}

func (m memoryBookings) ListAll(ctx context.Context) ([]domain.Booking, error) {
	out := m.filter(func(domain.Booking) bool { return true })
	newestFirst(out)
	return out, nil
}

func (m memoryBookings) Delete(ctx context.Context, id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.bookings[id]; !ok {
		return domain.ErrBookingNotFound
	}
	delete(m.s.bookings, id)
	return nil
}

func (m memoryBookings) Stats(ctx context.Context) (domain.BookingStats, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var st domain.BookingStats
	for _, b := range m.s.bookings {
		st.Total++
		switch b.Status {
		case domain.BookingStatusPending:
			st.Pending++
		case domain.BookingStatusConfirmed:
			st.Confirmed++
		case domain.BookingStatusCancelled:
			st.Cancelled++
		}
	}
	return st, nil
}

type memoryUsers struct{ s *MemoryStore }

func (m memoryUsers) Create(ctx context.Context, u *domain.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return domain.ErrConflict
		}
	}
	m.s.nextUser++
	u.ID, u.CreatedAt = m.s.nextUser, time.Now().UTC()
	m.s.users[u.ID] = *u
	return nil
}

func (m memoryUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	u, ok := m.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (m memoryUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, u := range m.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m memoryUsers) List(ctx context.Context) ([]domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := make([]domain.User, 0, len(m.s.users))
	for _, u := range m.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memoryUsers) Update(ctx context.Context, u *domain.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	existing, ok := m.s.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for id, other := range m.s.users {
		if id != u.ID && other.Email == u.Email {
			return domain.ErrConflict
		}
	}
	existing.Email, existing.FullName, existing.Role, existing.Enabled = u.Email, u.FullName, u.Role, u.Enabled
	m.s.users[u.ID] = existing
	return nil
}

type memoryPayments struct{ s *MemoryStore }

func (m memoryPayments) Create(ctx context.Context, p *domain.Payment) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.nextPayment++
	p.ID, p.CreatedAt = m.s.nextPayment, time.Now().UTC()
	m.s.payments = append(m.s.payments, *p)
	return nil
}

func (m memoryPayments) LatestByBooking(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for i := len(m.s.payments) - 1; i >= 0; i-- {
		if p := m.s.payments[i]; p.BookingID == bookingID {
			return &p, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

type memoryEvents struct{ s *MemoryStore }

func (m memoryEvents) Append(ctx context.Context, e domain.BookingEvent) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.events {
		if existing.ID == e.ID {
			return nil
		}
	}
	m.s.events = append(m.s.events, e)
	return nil
}

func (m memoryEvents) Recent(ctx context.Context, limit int) ([]domain.BookingEvent, error) {
	m.s.mu.RLock()
	out := append([]domain.BookingEvent(nil), m.s.events...)
	m.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var (
	_ UnitOfWork        = (*MemoryStore)(nil)
	_ HotelRepository   = memoryHotels{}
	_ BookingRepository = memoryBookings{}
	_ UserRepository    = memoryUsers{}
	_ PaymentRepository = memoryPayments{}
	_ EventRepository   = memoryEvents{}
)
