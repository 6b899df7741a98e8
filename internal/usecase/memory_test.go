package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// In-memory repository fakes. They are safe for concurrent use so the
// booking race tests exercise real interleavings.

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindOrCreateByEmail(_ context.Context, email, name, phone string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	now := time.Now()
	user := &entity.User{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:  name,
		Email: email,
		Phone: phone,
	}
	r.users[user.ID] = user
	return user, nil
}

type memShowRepo struct {
	mu    sync.Mutex
	shows map[uuid.UUID]*entity.Show
}

func newMemShowRepo() *memShowRepo {
	return &memShowRepo{shows: make(map[uuid.UUID]*entity.Show)}
}

func (r *memShowRepo) Create(_ context.Context, show *entity.Show) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *show
	r.shows[show.ID] = &copied
	return nil
}

func (r *memShowRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Show, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	show, ok := r.shows[id]
	if !ok {
		return nil, nil
	}
	copied := *show
	return &copied, nil
}

func (r *memShowRepo) FindAll(_ context.Context, movieID, theaterID *uuid.UUID) ([]*entity.Show, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Show
	for _, show := range r.shows {
		if movieID != nil && show.MovieID != *movieID {
			continue
		}
		if theaterID != nil && show.TheaterID != *theaterID {
			continue
		}
		copied := *show
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memShowRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.shows, id)
	return nil
}

func (r *memShowRepo) AdjustAvailability(_ context.Context, id uuid.UUID, delta int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	show, ok := r.shows[id]
	if !ok {
		return false, nil
	}
	next := show.AvailableSeats + delta
	if next < 0 || next > show.Capacity {
		return false, nil
	}
	show.AvailableSeats = next
	return true, nil
}

type memSeatRepo struct {
	mu    sync.Mutex
	seats map[uuid.UUID]*entity.Seat

	failSetBooked error
}

func newMemSeatRepo() *memSeatRepo {
	return &memSeatRepo{seats: make(map[uuid.UUID]*entity.Seat)}
}

func (r *memSeatRepo) CreateBatch(_ context.Context, seats []*entity.Seat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, seat := range seats {
		copied := *seat
		r.seats[seat.ID] = &copied
	}
	return nil
}

func (r *memSeatRepo) FindByShowID(_ context.Context, showID uuid.UUID) ([]*entity.Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Seat
	for _, seat := range r.seats {
		if seat.ShowID == showID {
			copied := *seat
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memSeatRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Seat
	for _, id := range ids {
		if seat, ok := r.seats[id]; ok {
			copied := *seat
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memSeatRepo) SetBooked(_ context.Context, ids []uuid.UUID, booked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSetBooked != nil {
		return r.failSetBooked
	}
	for _, id := range ids {
		seat, ok := r.seats[id]
		if !ok {
			return fmt.Errorf("seat %s does not exist", id)
		}
		seat.Booked = booked
	}
	return nil
}

func (r *memSeatRepo) bookedCount(showID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, seat := range r.seats {
		if seat.ShowID == showID && seat.Booked {
			count++
		}
	}
	return count
}

type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking

	failCreate       error
	failUpdateStatus error
	onCreate         func()
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (r *memBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	if r.onCreate != nil {
		r.onCreate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.failCreate != nil {
		return r.failCreate
	}
	copied := *booking
	copied.SeatIDs = append([]uuid.UUID(nil), booking.SeatIDs...)
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *memBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	copied.SeatIDs = append([]uuid.UUID(nil), booking.SeatIDs...)
	return &copied, nil
}

func (r *memBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			copied := *booking
			copied.SeatIDs = append([]uuid.UUID(nil), booking.SeatIDs...)
			out = append(out, &copied)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memBookingRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdateStatus != nil {
		return r.failUpdateStatus
	}
	booking, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s not found", id)
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	return nil
}

type memMovieRepo struct {
	mu     sync.Mutex
	movies map[uuid.UUID]*entity.Movie
}

func newMemMovieRepo() *memMovieRepo {
	return &memMovieRepo{movies: make(map[uuid.UUID]*entity.Movie)}
}

func (r *memMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *movie
	r.movies[movie.ID] = &copied
	return nil
}

func (r *memMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	movie, ok := r.movies[id]
	if !ok {
		return nil, nil
	}
	copied := *movie
	return &copied, nil
}

func (r *memMovieRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Movie
	for _, movie := range r.movies {
		copied := *movie
		out = append(out, &copied)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memMovieRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.movies)), nil
}

func (r *memMovieRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.movies, id)
	return nil
}

type memTheaterRepo struct {
	mu       sync.Mutex
	theaters map[uuid.UUID]*entity.Theater
}

func newMemTheaterRepo() *memTheaterRepo {
	return &memTheaterRepo{theaters: make(map[uuid.UUID]*entity.Theater)}
}

func (r *memTheaterRepo) Create(_ context.Context, theater *entity.Theater) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *theater
	r.theaters[theater.ID] = &copied
	return nil
}

func (r *memTheaterRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Theater, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	theater, ok := r.theaters[id]
	if !ok {
		return nil, nil
	}
	copied := *theater
	return &copied, nil
}

func (r *memTheaterRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Theater, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Theater
	for _, theater := range r.theaters {
		copied := *theater
		out = append(out, &copied)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memTheaterRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.theaters)), nil
}

func (r *memTheaterRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.theaters, id)
	return nil
}

// testEnv wires a booking service over in-memory repositories with one
// pre-seeded show.
type testEnv struct {
	repo *repository.Repository

	users    *memUserRepo
	movies   *memMovieRepo
	theaters *memTheaterRepo
	shows    *memShowRepo
	seats    *memSeatRepo
	bookings *memBookingRepo

	show    *entity.Show
	seatIDs []uuid.UUID

	booking BookingService
}

func newTestEnv(capacity int, basePrice float64) *testEnv {
	env := &testEnv{
		users:    newMemUserRepo(),
		movies:   newMemMovieRepo(),
		theaters: newMemTheaterRepo(),
		shows:    newMemShowRepo(),
		seats:    newMemSeatRepo(),
		bookings: newMemBookingRepo(),
	}

	env.repo = &repository.Repository{
		User:    env.users,
		Movie:   env.movies,
		Theater: env.theaters,
		Show:    env.shows,
		Seat:    env.seats,
		Booking: env.bookings,
	}

	now := time.Now()
	env.show = &entity.Show{
		Base:           entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		MovieID:        uuid.New(),
		TheaterID:      uuid.New(),
		StartsAt:       now.Add(24 * time.Hour),
		Capacity:       capacity,
		AvailableSeats: capacity,
		BasePrice:      decimal.NewFromFloat(basePrice),
	}
	env.shows.Create(context.Background(), env.show)

	grid := generateSeatGrid(env.show.ID, capacity, now)
	env.seats.CreateBatch(context.Background(), grid)
	for _, seat := range grid {
		env.seatIDs = append(env.seatIDs, seat.ID)
	}

	config := &utils.Config{
		Booking: utils.BookingConfig{LockRetries: 10, LockBackoffMS: 1},
	}
	env.booking = NewBookingService(env.repo, config, zap.NewNop(), nil, nil)

	return env
}

// assertInvariant checks available = capacity - booked for the seeded show.
func (env *testEnv) assertInvariant() (available, expected int) {
	show, _ := env.shows.FindByID(context.Background(), env.show.ID)
	return show.AvailableSeats, show.Capacity - env.seats.bookedCount(env.show.ID)
}

func seatIDStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
