package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omarhamdan/safra/internal/models"
)

// In-memory repositories for service tests. The booking fake enforces the
// same (trip_id, seat_num, confirmed) uniqueness the partial index does, so
// the race path through CreateBooking is exercisable without a database.

type fakeBookingRepo struct {
	bookings map[primitive.ObjectID]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[primitive.ObjectID]*models.Booking{}}
}

func (f *fakeBookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if booking.Status == models.BookingConfirmed {
		for _, b := range f.bookings {
			if b.TripID == booking.TripID && b.SeatNum == booking.SeatNum && b.Status == models.BookingConfirmed {
				return nil, models.ErrConflict
			}
		}
	}
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	cp := *booking
	f.bookings[booking.ID] = &cp
	return booking, nil
}

func (f *fakeBookingRepo) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) SeatTaken(ctx context.Context, tripID primitive.ObjectID, seatNum string) (bool, error) {
	for _, b := range f.bookings {
		if b.TripID == tripID && b.SeatNum == seatNum && b.Status == models.BookingConfirmed {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) SetBookingQRCode(ctx context.Context, id primitive.ObjectID, qr string) error {
	b, ok := f.bookings[id]
	if !ok {
		return models.ErrNotFound
	}
	b.QRCode = qr
	return nil
}

func (f *fakeBookingRepo) ListBookings(ctx context.Context, userID *primitive.ObjectID) ([]*models.BookingView, error) {
	var out []*models.BookingView
	for _, b := range f.bookings {
		if userID != nil && b.UserID != *userID {
			continue
		}
		out = append(out, &models.BookingView{Booking: *b})
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	b.Status = status
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) CountBookingsByTrip(ctx context.Context, tripID primitive.ObjectID, status models.BookingStatus) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.TripID != tripID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		n++
	}
	return n, nil
}

func (f *fakeBookingRepo) CountBookingsByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeTripRepo struct {
	trips map[primitive.ObjectID]*models.Trip
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: map[primitive.ObjectID]*models.Trip{}}
}

func (f *fakeTripRepo) CreateTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	if trip.ID.IsZero() {
		trip.ID = primitive.NewObjectID()
	}
	cp := *trip
	f.trips[trip.ID] = &cp
	return trip, nil
}

func (f *fakeTripRepo) GetTripByID(ctx context.Context, id primitive.ObjectID) (*models.TripView, error) {
	t, ok := f.trips[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &models.TripView{Trip: *t}, nil
}

func (f *fakeTripRepo) ListTrips(ctx context.Context, filter models.TripFilter) ([]*models.TripView, error) {
	var out []*models.TripView
	for _, t := range f.trips {
		if filter.DepartureCity != "" && t.DepartureCity != filter.DepartureCity {
			continue
		}
		if filter.ArrivalCity != "" && t.ArrivalCity != filter.ArrivalCity {
			continue
		}
		if filter.Date != nil {
			start := *filter.Date
			end := start.AddDate(0, 0, 1)
			if t.DepartureTime.Before(start) || !t.DepartureTime.Before(end) {
				continue
			}
		}
		out = append(out, &models.TripView{Trip: *t})
	}
	return out, nil
}

func (f *fakeTripRepo) UpdateTrip(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Trip, error) {
	t, ok := f.trips[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	for key, val := range fields {
		switch key {
		case "office_id":
			t.OfficeID = val.(primitive.ObjectID)
		case "bus_id":
			t.BusID = val.(primitive.ObjectID)
		case "departure_city":
			t.DepartureCity = val.(string)
		case "arrival_city":
			t.ArrivalCity = val.(string)
		case "departure_time":
			t.DepartureTime = val.(time.Time)
		case "arrival_time":
			t.ArrivalTime = val.(time.Time)
		case "total_price":
			t.TotalPrice = val.(float64)
		case "status":
			t.Status = val.(models.TripStatus)
		case "is_vip":
			t.IsVIP = val.(bool)
		case "vip_features":
			t.VIPFeatures = val.([]string)
		case "vip_price":
			t.VIPPrice = val.(float64)
		}
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTripRepo) DeleteTrip(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.trips[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.trips, id)
	return nil
}

func (f *fakeTripRepo) CountTripsByOffice(ctx context.Context, officeID primitive.ObjectID) (int64, error) {
	var n int64
	for _, t := range f.trips {
		if t.OfficeID == officeID {
			n++
		}
	}
	return n, nil
}

func (f *fakeTripRepo) CountTripsByBus(ctx context.Context, busID primitive.ObjectID) (int64, error) {
	var n int64
	for _, t := range f.trips {
		if t.BusID == busID {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Phone == user.Phone {
			return nil, models.ErrConflict
		}
		if user.Email != "" && u.Email == user.Email {
			return nil, models.ErrConflict
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	cp := *user
	f.users[user.ID] = &cp
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	for _, u := range f.users {
		if u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]*models.UserView, error) {
	var out []*models.UserView
	for _, u := range f.users {
		out = append(out, &models.UserView{User: *u})
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if name, ok := fields["full_name"].(string); ok {
		u.FullName = name
	}
	if hash, ok := fields["password_hash"].(string); ok {
		u.PasswordHash = hash
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) CountUsersByOffice(ctx context.Context, officeID primitive.ObjectID) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.OfficeID != nil && *u.OfficeID == officeID {
			n++
		}
	}
	return n, nil
}

type fakeOfficeRepo struct {
	offices map[primitive.ObjectID]*models.Office
}

func newFakeOfficeRepo() *fakeOfficeRepo {
	return &fakeOfficeRepo{offices: map[primitive.ObjectID]*models.Office{}}
}

func (f *fakeOfficeRepo) CreateOffice(ctx context.Context, office *models.Office) (*models.Office, error) {
	if office.ID.IsZero() {
		office.ID = primitive.NewObjectID()
	}
	cp := *office
	f.offices[office.ID] = &cp
	return office, nil
}

func (f *fakeOfficeRepo) GetOfficeByID(ctx context.Context, id primitive.ObjectID) (*models.Office, error) {
	o, ok := f.offices[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOfficeRepo) ListOffices(ctx context.Context) ([]*models.Office, error) {
	var out []*models.Office
	for _, o := range f.offices {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeOfficeRepo) UpdateOffice(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Office, error) {
	o, ok := f.offices[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if city, ok := fields["city"].(string); ok {
		o.City = city
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOfficeRepo) DeleteOffice(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.offices[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.offices, id)
	return nil
}

type fakeBusRepo struct {
	buses map[primitive.ObjectID]*models.Bus
}

func newFakeBusRepo() *fakeBusRepo {
	return &fakeBusRepo{buses: map[primitive.ObjectID]*models.Bus{}}
}

func (f *fakeBusRepo) CreateBus(ctx context.Context, bus *models.Bus) (*models.Bus, error) {
	if bus.ID.IsZero() {
		bus.ID = primitive.NewObjectID()
	}
	cp := *bus
	f.buses[bus.ID] = &cp
	return bus, nil
}

func (f *fakeBusRepo) GetBusByID(ctx context.Context, id primitive.ObjectID) (*models.Bus, error) {
	b, ok := f.buses[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBusRepo) ListBuses(ctx context.Context) ([]*models.BusView, error) {
	var out []*models.BusView
	for _, b := range f.buses {
		out = append(out, &models.BusView{Bus: *b})
	}
	return out, nil
}

func (f *fakeBusRepo) UpdateBus(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Bus, error) {
	b, ok := f.buses[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBusRepo) DeleteBus(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.buses[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.buses, id)
	return nil
}

func (f *fakeBusRepo) CountBusesByOffice(ctx context.Context, officeID primitive.ObjectID) (int64, error) {
	var n int64
	for _, b := range f.buses {
		if b.OfficeID == officeID {
			n++
		}
	}
	return n, nil
}

type fakeSeatRepo struct {
	seats map[primitive.ObjectID][]*models.Seat
}

func newFakeSeatRepo() *fakeSeatRepo {
	return &fakeSeatRepo{seats: map[primitive.ObjectID][]*models.Seat{}}
}

func (f *fakeSeatRepo) ListSeatsByBus(ctx context.Context, busID primitive.ObjectID) ([]*models.Seat, error) {
	return f.seats[busID], nil
}

func (f *fakeSeatRepo) ReplaceSeatsForBus(ctx context.Context, busID primitive.ObjectID, seats []*models.Seat) ([]*models.Seat, error) {
	f.seats[busID] = seats
	return seats, nil
}
