package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/omarhamdan/safra/internal/models"
)

const (
	tripCacheTTL    = 60 * time.Second
	tripCacheVerKey = "trips:ver"
)

type TripService struct {
	trips    models.TripRepo
	offices  models.OfficeRepo
	buses    models.BusRepo
	bookings models.BookingRepo
	cache    *redis.Client
	logger   *slog.Logger
}

func NewTripService(
	trips models.TripRepo,
	offices models.OfficeRepo,
	buses models.BusRepo,
	bookings models.BookingRepo,
	cache *redis.Client,
	logger *slog.Logger,
) *TripService {
	return &TripService{
		trips:    trips,
		offices:  offices,
		buses:    buses,
		bookings: bookings,
		cache:    cache,
		logger:   logger,
	}
}

type TripInput struct {
	OfficeID      string    `json:"office_id" validate:"required"`
	BusID         string    `json:"bus_id" validate:"required"`
	DepartureCity string    `json:"departure_city" validate:"required"`
	ArrivalCity   string    `json:"arrival_city" validate:"required"`
	DepartureTime time.Time `json:"departure_time" validate:"required"`
	ArrivalTime   time.Time `json:"arrival_time"`
	TotalPrice    float64   `json:"total_price" validate:"required,gt=0"`
	IsVIP         bool      `json:"is_vip"`
	VIPFeatures   []string  `json:"vip_features"`
	VIPPrice      float64   `json:"vip_price"`
}

func (ts *TripService) CreateTrip(ctx context.Context, in TripInput) (*models.Trip, error) {
	if err := models.Validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalid, err)
	}
	officeID, err := primitive.ObjectIDFromHex(in.OfficeID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid office_id", models.ErrInvalid)
	}
	busID, err := primitive.ObjectIDFromHex(in.BusID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid bus_id", models.ErrInvalid)
	}

	if _, err := ts.offices.GetOfficeByID(ctx, officeID); err == models.ErrNotFound {
		return nil, fmt.Errorf("%w: office not found", models.ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	if _, err := ts.buses.GetBusByID(ctx, busID); err == models.ErrNotFound {
		return nil, fmt.Errorf("%w: bus not found", models.ErrNotFound)
	} else if err != nil {
		return nil, err
	}

	trip := &models.Trip{
		OfficeID:      officeID,
		BusID:         busID,
		DepartureCity: strings.TrimSpace(in.DepartureCity),
		ArrivalCity:   strings.TrimSpace(in.ArrivalCity),
		DepartureTime: in.DepartureTime,
		ArrivalTime:   in.ArrivalTime,
		TotalPrice:    in.TotalPrice,
		Status:        models.TripActive,
		IsVIP:         in.IsVIP,
		VIPFeatures:   in.VIPFeatures,
		VIPPrice:      in.VIPPrice,
		CreatedAt:     time.Now().UTC(),
	}
	created, err := ts.trips.CreateTrip(ctx, trip)
	if err != nil {
		return nil, err
	}
	ts.invalidateCache(ctx)
	return created, nil
}

// ParseTripFilter turns raw query values into a TripFilter. The date is
// day-granular: "2024-11-15" selects departures in
// [2024-11-15T00:00:00Z, 2024-11-16T00:00:00Z).
func ParseTripFilter(departureCity, arrivalCity, date string) (models.TripFilter, error) {
	filter := models.TripFilter{
		DepartureCity: strings.TrimSpace(departureCity),
		ArrivalCity:   strings.TrimSpace(arrivalCity),
	}
	if date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
		if err != nil {
			return filter, fmt.Errorf("%w: date must be YYYY-MM-DD", models.ErrInvalid)
		}
		filter.Date = &day
	}
	return filter, nil
}

// ListTrips serves filtered listings through a short-lived Redis cache. The
// cache key embeds a version counter that every write bumps, so invalidation
// is one INCR instead of a keyspace scan. Cache failures fall through to the
// database.
func (ts *TripService) ListTrips(ctx context.Context, filter models.TripFilter) ([]*models.TripView, error) {
	key := ts.cacheKey(ctx, filter)
	if key != "" {
		if raw, err := ts.cache.Get(ctx, key).Result(); err == nil {
			var cached []*models.TripView
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	trips, err := ts.trips.ListTrips(ctx, filter)
	if err != nil {
		return nil, err
	}

	if key != "" && trips != nil {
		if raw, err := json.Marshal(trips); err == nil {
			if err := ts.cache.Set(ctx, key, raw, tripCacheTTL).Err(); err != nil {
				ts.logger.Warn("trip cache set failed", "error", err)
			}
		}
	}
	return trips, nil
}

func (ts *TripService) GetTripByID(ctx context.Context, id string) (*models.TripView, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid trip id", models.ErrInvalid)
	}
	trip, err := ts.trips.GetTripByID(ctx, oid)
	if err == models.ErrNotFound {
		return nil, fmt.Errorf("%w: trip not found", models.ErrNotFound)
	}
	return trip, err
}

// TripUpdateInput is a partial update; nil fields stay untouched. Updates are
// typed so departure and arrival times reach the database as BSON dates and
// keep the day-window filter working, and so status stays inside the closed
// enum.
type TripUpdateInput struct {
	OfficeID      *string            `json:"office_id"`
	BusID         *string            `json:"bus_id"`
	DepartureCity *string            `json:"departure_city"`
	ArrivalCity   *string            `json:"arrival_city"`
	DepartureTime *time.Time         `json:"departure_time"`
	ArrivalTime   *time.Time         `json:"arrival_time"`
	TotalPrice    *float64           `json:"total_price"`
	Status        *models.TripStatus `json:"status"`
	IsVIP         *bool              `json:"is_vip"`
	VIPFeatures   []string           `json:"vip_features"`
	VIPPrice      *float64           `json:"vip_price"`
}

func (ts *TripService) UpdateTrip(ctx context.Context, id string, in TripUpdateInput) (*models.Trip, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid trip id", models.ErrInvalid)
	}

	fields := map[string]interface{}{}
	if in.OfficeID != nil {
		officeID, err := primitive.ObjectIDFromHex(*in.OfficeID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid office_id", models.ErrInvalid)
		}
		if _, err := ts.offices.GetOfficeByID(ctx, officeID); err == models.ErrNotFound {
			return nil, fmt.Errorf("%w: office not found", models.ErrNotFound)
		} else if err != nil {
			return nil, err
		}
		fields["office_id"] = officeID
	}
	if in.BusID != nil {
		busID, err := primitive.ObjectIDFromHex(*in.BusID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid bus_id", models.ErrInvalid)
		}
		if _, err := ts.buses.GetBusByID(ctx, busID); err == models.ErrNotFound {
			return nil, fmt.Errorf("%w: bus not found", models.ErrNotFound)
		} else if err != nil {
			return nil, err
		}
		fields["bus_id"] = busID
	}
	if in.DepartureCity != nil {
		fields["departure_city"] = strings.TrimSpace(*in.DepartureCity)
	}
	if in.ArrivalCity != nil {
		fields["arrival_city"] = strings.TrimSpace(*in.ArrivalCity)
	}
	if in.DepartureTime != nil {
		fields["departure_time"] = *in.DepartureTime
	}
	if in.ArrivalTime != nil {
		fields["arrival_time"] = *in.ArrivalTime
	}
	if in.TotalPrice != nil {
		if *in.TotalPrice <= 0 {
			return nil, fmt.Errorf("%w: total_price must be positive", models.ErrInvalid)
		}
		fields["total_price"] = *in.TotalPrice
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown trip status %q", models.ErrInvalid, *in.Status)
		}
		fields["status"] = *in.Status
	}
	if in.IsVIP != nil {
		fields["is_vip"] = *in.IsVIP
	}
	if in.VIPFeatures != nil {
		fields["vip_features"] = in.VIPFeatures
	}
	if in.VIPPrice != nil {
		fields["vip_price"] = *in.VIPPrice
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrInvalid)
	}

	updated, err := ts.trips.UpdateTrip(ctx, oid, fields)
	if err == models.ErrNotFound {
		return nil, fmt.Errorf("%w: trip not found", models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	ts.invalidateCache(ctx)
	return updated, nil
}

// DeleteTrip removes a trip unless confirmed bookings still reference it;
// deleting under live references would orphan them.
func (ts *TripService) DeleteTrip(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid trip id", models.ErrInvalid)
	}

	n, err := ts.bookings.CountBookingsByTrip(ctx, oid, models.BookingConfirmed)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: trip has confirmed bookings", models.ErrConflict)
	}

	if err := ts.trips.DeleteTrip(ctx, oid); err == models.ErrNotFound {
		return fmt.Errorf("%w: trip not found", models.ErrNotFound)
	} else if err != nil {
		return err
	}
	ts.invalidateCache(ctx)
	return nil
}

func (ts *TripService) cacheKey(ctx context.Context, filter models.TripFilter) string {
	if ts.cache == nil {
		return ""
	}
	ver, err := ts.cache.Get(ctx, tripCacheVerKey).Result()
	if err != nil && err != redis.Nil {
		return ""
	}
	return tripCacheKey(ver, filter)
}

// tripCacheKey escapes the city components so a value containing the key
// separator cannot collide with a differently filtered listing.
func tripCacheKey(ver string, filter models.TripFilter) string {
	date := ""
	if filter.Date != nil {
		date = filter.Date.Format("2006-01-02")
	}
	return fmt.Sprintf("trips:v%s:%s:%s:%s",
		ver, url.QueryEscape(filter.DepartureCity), url.QueryEscape(filter.ArrivalCity), date)
}

func (ts *TripService) invalidateCache(ctx context.Context) {
	if ts.cache == nil {
		return
	}
	if err := ts.cache.Incr(ctx, tripCacheVerKey).Err(); err != nil {
		ts.logger.Warn("trip cache invalidation failed", "error", err)
	}
}
