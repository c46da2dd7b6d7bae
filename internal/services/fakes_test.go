package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/joshua-takyi/futsalhub/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory stand-in for the Mongo-backed repos, good enough
// to exercise admission and lifecycle logic without a database.
type fakeStore struct {
	facilities  map[primitive.ObjectID]*models.Facility
	kits        map[primitive.ObjectID]*models.Kit
	bookings    map[primitive.ObjectID]*models.Booking
	kitBookings map[primitive.ObjectID]*models.KitBooking

	insertBookingErr error
	decrementErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		facilities:  make(map[primitive.ObjectID]*models.Facility),
		kits:        make(map[primitive.ObjectID]*models.Kit),
		bookings:    make(map[primitive.ObjectID]*models.Booking),
		kitBookings: make(map[primitive.ObjectID]*models.KitBooking),
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FacilityRepo

func (f *fakeStore) CreateFacility(ctx context.Context, facility *models.Facility) (*models.Facility, error) {
	if facility.ID.IsZero() {
		facility.ID = primitive.NewObjectID()
	}
	f.facilities[facility.ID] = facility
	return facility, nil
}

func (f *fakeStore) GetFacilityByID(ctx context.Context, id primitive.ObjectID) (*models.Facility, error) {
	facility, ok := f.facilities[id]
	if !ok {
		return nil, fmt.Errorf("facility %s: %w", id.Hex(), models.ErrNotFound)
	}
	return facility, nil
}

func (f *fakeStore) ListFacilities(ctx context.Context) ([]*models.Facility, error) {
	var out []*models.Facility
	for _, facility := range f.facilities {
		out = append(out, facility)
	}
	return out, nil
}

func (f *fakeStore) UpdateFacility(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.Facility, error) {
	facility, ok := f.facilities[id]
	if !ok {
		return nil, fmt.Errorf("facility %s: %w", id.Hex(), models.ErrNotFound)
	}
	return facility, nil
}

func (f *fakeStore) DeleteFacility(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.facilities[id]; !ok {
		return fmt.Errorf("facility %s: %w", id.Hex(), models.ErrNotFound)
	}
	delete(f.facilities, id)
	return nil
}

// KitRepo

func (f *fakeStore) CreateKit(ctx context.Context, kit *models.Kit) (*models.Kit, error) {
	if kit.ID.IsZero() {
		kit.ID = primitive.NewObjectID()
	}
	f.kits[kit.ID] = kit
	return kit, nil
}

func (f *fakeStore) GetKitByID(ctx context.Context, id primitive.ObjectID) (*models.Kit, error) {
	kit, ok := f.kits[id]
	if !ok {
		return nil, fmt.Errorf("kit %s: %w", id.Hex(), models.ErrNotFound)
	}
	return kit, nil
}

func (f *fakeStore) GetKitsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Kit, error) {
	var out []*models.Kit
	for _, id := range ids {
		if kit, ok := f.kits[id]; ok {
			out = append(out, kit)
		}
	}
	return out, nil
}

func (f *fakeStore) ListKits(ctx context.Context) ([]*models.Kit, error) {
	var out []*models.Kit
	for _, kit := range f.kits {
		out = append(out, kit)
	}
	return out, nil
}

func (f *fakeStore) ListKitsByFacility(ctx context.Context, facilityID primitive.ObjectID) ([]*models.Kit, error) {
	var out []*models.Kit
	for _, kit := range f.kits {
		if kit.Facility == facilityID {
			out = append(out, kit)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateKit(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.Kit, error) {
	kit, ok := f.kits[id]
	if !ok {
		return nil, fmt.Errorf("kit %s: %w", id.Hex(), models.ErrNotFound)
	}
	return kit, nil
}

func (f *fakeStore) DeleteKit(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.kits[id]; !ok {
		return fmt.Errorf("kit %s: %w", id.Hex(), models.ErrNotFound)
	}
	delete(f.kits, id)
	return nil
}

func (f *fakeStore) DecrementKitQuantity(ctx context.Context, id primitive.ObjectID, n int) error {
	if f.decrementErr != nil {
		return f.decrementErr
	}
	kit, ok := f.kits[id]
	if !ok || kit.Quantity < n {
		return fmt.Errorf("insufficient quantity for kit %s: %w", id.Hex(), models.ErrConflict)
	}
	kit.Quantity -= n
	return nil
}

func (f *fakeStore) RestoreKitQuantity(ctx context.Context, id primitive.ObjectID, n int) error {
	kit, ok := f.kits[id]
	if !ok {
		return fmt.Errorf("kit %s: %w", id.Hex(), models.ErrNotFound)
	}
	kit.Quantity += n
	return nil
}

// BookingRepo

func (f *fakeStore) InsertBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if f.insertBookingErr != nil {
		return nil, f.insertBookingErr
	}
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	booking.CreatedAt = time.Now()
	f.bookings[booking.ID] = booking
	return booking, nil
}

func (f *fakeStore) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id.Hex(), models.ErrNotFound)
	}
	copy := *booking
	return &copy, nil
}

func (f *fakeStore) FindActiveByFacilityDate(ctx context.Context, facilityID primitive.ObjectID, date time.Time) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.Facility == facilityID && b.Date.Equal(date) && b.Status.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) HasOverlap(ctx context.Context, facilityID primitive.ObjectID, date time.Time, startTime, endTime string) (bool, error) {
	for _, b := range f.bookings {
		if b.Facility != facilityID || !b.Date.Equal(date) || !b.Status.IsActive() {
			continue
		}
		if b.StartTime < endTime && b.EndTime > startTime {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListBookingsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.User == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) ListBookingsByFacility(ctx context.Context, facilityID primitive.ObjectID) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.Facility == facilityID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) SetBookingStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (*models.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id.Hex(), models.ErrNotFound)
	}
	booking.Status = status
	copy := *booking
	return &copy, nil
}

func (f *fakeStore) SetPaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (*models.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id.Hex(), models.ErrNotFound)
	}
	booking.PaymentStatus = status
	copy := *booking
	return &copy, nil
}

func (f *fakeStore) VoidBooking(ctx context.Context, id primitive.ObjectID) error {
	booking, ok := f.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id.Hex(), models.ErrNotFound)
	}
	booking.Status = models.BookingCancelled
	booking.KitRentals = nil
	return nil
}

func (f *fakeStore) FindStalePending(ctx context.Context, cutoff time.Time) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.Status == models.BookingPending && b.Date.Before(cutoff) {
			copy := *b
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (f *fakeStore) CancelIfPending(ctx context.Context, id primitive.ObjectID) (bool, error) {
	booking, ok := f.bookings[id]
	if !ok || booking.Status != models.BookingPending {
		return false, nil
	}
	booking.Status = models.BookingCancelled
	return true, nil
}

// KitBookingRepo

func (f *fakeStore) InsertKitBooking(ctx context.Context, kb *models.KitBooking) (*models.KitBooking, error) {
	if kb.ID.IsZero() {
		kb.ID = primitive.NewObjectID()
	}
	kb.RecomputeTotal()
	f.kitBookings[kb.ID] = kb
	return kb, nil
}

func (f *fakeStore) GetKitBookingByID(ctx context.Context, id primitive.ObjectID) (*models.KitBooking, error) {
	kb, ok := f.kitBookings[id]
	if !ok {
		return nil, fmt.Errorf("kit booking %s: %w", id.Hex(), models.ErrNotFound)
	}
	copy := *kb
	return &copy, nil
}

func (f *fakeStore) ListKitBookingsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.KitBooking, error) {
	var out []*models.KitBooking
	for _, kb := range f.kitBookings {
		if kb.User == userID {
			out = append(out, kb)
		}
	}
	return out, nil
}

func (f *fakeStore) ListKitBookingsByFacility(ctx context.Context, facilityID primitive.ObjectID) ([]*models.KitBooking, error) {
	var out []*models.KitBooking
	for _, kb := range f.kitBookings {
		if kb.Facility == facilityID {
			out = append(out, kb)
		}
	}
	return out, nil
}

func (f *fakeStore) ListKitBookingsByBookingIDs(ctx context.Context, bookingIDs []primitive.ObjectID) ([]*models.KitBooking, error) {
	wanted := make(map[primitive.ObjectID]bool, len(bookingIDs))
	for _, id := range bookingIDs {
		wanted[id] = true
	}
	var out []*models.KitBooking
	for _, kb := range f.kitBookings {
		if wanted[kb.Booking] {
			out = append(out, kb)
		}
	}
	return out, nil
}

func (f *fakeStore) SetKitBookingStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (*models.KitBooking, error) {
	kb, ok := f.kitBookings[id]
	if !ok {
		return nil, fmt.Errorf("kit booking %s: %w", id.Hex(), models.ErrNotFound)
	}
	kb.Status = status
	copy := *kb
	return &copy, nil
}
