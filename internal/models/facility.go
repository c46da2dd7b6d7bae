package models

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultOpeningTime = "08:00"
	DefaultClosingTime = "22:00"
)

// Facility is a bookable futsal court venue. OpeningTime and ClosingTime are
// facility-local times of day in 24h "HH:MM" form, no timezone attached.
type Facility struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name" validate:"required"`
	Description  string             `bson:"description" json:"description" validate:"required"`
	Location     string             `bson:"location" json:"location" validate:"required"`
	PricePerHour float64            `bson:"price_per_hour" json:"pricePerHour" validate:"required,gt=0"`
	Images       []string           `bson:"images" json:"images"`
	Facilities   []string           `bson:"facilities" json:"facilities"`
	Owner        primitive.ObjectID `bson:"owner" json:"owner"`
	OpeningTime  string             `bson:"opening_time" json:"openingTime"`
	ClosingTime  string             `bson:"closing_time" json:"closingTime"`
	Rating       float64            `bson:"rating" json:"rating"`
	TotalRatings int                `bson:"total_ratings" json:"totalRatings"`
	IsAvailable  bool               `bson:"is_available" json:"isAvailable"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// ParseClock splits an "HH:MM" time of day into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM: %w", s, ErrValidation)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q: %w", s, ErrValidation)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q: %w", s, ErrValidation)
	}
	return hour, minute, nil
}

// ValidateHours enforces opening < closing as a time-of-day comparison.
func (f *Facility) ValidateHours() error {
	oh, om, err := ParseClock(f.OpeningTime)
	if err != nil {
		return err
	}
	ch, cm, err := ParseClock(f.ClosingTime)
	if err != nil {
		return err
	}
	if oh*60+om >= ch*60+cm {
		return fmt.Errorf("opening time %s must be before closing time %s: %w", f.OpeningTime, f.ClosingTime, ErrValidation)
	}
	return nil
}

type FacilityRepo interface {
	CreateFacility(ctx context.Context, facility *Facility) (*Facility, error)
	GetFacilityByID(ctx context.Context, id primitive.ObjectID) (*Facility, error)
	ListFacilities(ctx context.Context) ([]*Facility, error)
	UpdateFacility(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*Facility, error)
	DeleteFacility(ctx context.Context, id primitive.ObjectID) error
}
