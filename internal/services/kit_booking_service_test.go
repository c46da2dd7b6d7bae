package services

import (
	"context"
	"testing"
	"time"

	"github.com/joshua-takyi/futsalhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newKitBookingService(store *fakeStore) *KitBookingService {
	return NewKitBookingService(store, store, testLogger())
}

func TestCreateKitBooking_PricesUnitLinesAndDecrementsStock(t *testing.T) {
	store := newFakeStore()
	facility := seedFacility(store, primitive.NewObjectID(), 500)
	kit := seedKit(store, facility.ID, 150, 4)
	svc := newKitBookingService(store)

	kb, err := svc.CreateKitBooking(context.Background(), primitive.NewObjectID(), CreateKitBookingInput{
		Facility: facility.ID,
		Booking:  primitive.NewObjectID(),
		KitRentals: []KitRentalRequest{
			{Kit: kit.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, kb.KitRentals, 1)
	assert.Equal(t, 150.0, kb.KitRentals[0].Price)
	assert.Equal(t, 450.0, kb.TotalAmount)
	assert.Equal(t, models.BookingPending, kb.Status)
	assert.Equal(t, 1, store.kits[kit.ID].Quantity)
}

func TestCreateKitBooking_RejectsEmptyAndOverdrawnRequests(t *testing.T) {
	store := newFakeStore()
	facility := seedFacility(store, primitive.NewObjectID(), 500)
	kit := seedKit(store, facility.ID, 150, 2)
	svc := newKitBookingService(store)

	_, err := svc.CreateKitBooking(context.Background(), primitive.NewObjectID(), CreateKitBookingInput{
		Facility: facility.ID,
		Booking:  primitive.NewObjectID(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.CreateKitBooking(context.Background(), primitive.NewObjectID(), CreateKitBookingInput{
		Facility: facility.ID,
		Booking:  primitive.NewObjectID(),
		KitRentals: []KitRentalRequest{
			{Kit: kit.ID, Quantity: 5},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Equal(t, 2, store.kits[kit.ID].Quantity)
	assert.Empty(t, store.kitBookings)
}

func TestCreateKitBooking_UnavailableKitRejected(t *testing.T) {
	store := newFakeStore()
	facility := seedFacility(store, primitive.NewObjectID(), 500)
	kit := seedKit(store, facility.ID, 150, 4)
	kit.IsAvailable = false
	svc := newKitBookingService(store)

	_, err := svc.CreateKitBooking(context.Background(), primitive.NewObjectID(), CreateKitBookingInput{
		Facility: facility.ID,
		Booking:  primitive.NewObjectID(),
		KitRentals: []KitRentalRequest{
			{Kit: kit.ID, Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestUpdateKitBookingStatus_CancelRestoresExactlyOnce(t *testing.T) {
	store := newFakeStore()
	facility := seedFacility(store, primitive.NewObjectID(), 500)
	kit := seedKit(store, facility.ID, 150, 4)
	svc := newKitBookingService(store)

	kb, err := svc.CreateKitBooking(context.Background(), primitive.NewObjectID(), CreateKitBookingInput{
		Facility: facility.ID,
		Booking:  primitive.NewObjectID(),
		KitRentals: []KitRentalRequest{
			{Kit: kit.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, store.kits[kit.ID].Quantity)

	updated, err := svc.UpdateKitBookingStatus(context.Background(), kb.ID, models.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, updated.Status)
	assert.Equal(t, 4, store.kits[kit.ID].Quantity)

	// Cancelled is terminal, so the restore cannot fire a second time.
	_, err = svc.UpdateKitBookingStatus(context.Background(), kb.ID, models.BookingCancelled)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Equal(t, 4, store.kits[kit.ID].Quantity)
}

func TestMergeKitRentals_FoldsLinesIntoParentBookings(t *testing.T) {
	store := newFakeStore()
	facility := seedFacility(store, primitive.NewObjectID(), 500)
	kit := seedKit(store, facility.ID, 100, 10)
	svc := newKitBookingService(store)

	withRentals := &models.Booking{
		ID:         primitive.NewObjectID(),
		Facility:   facility.ID,
		Date:       date(2026, time.September, 5),
		TotalPrice: 1000,
		Status:     models.BookingConfirmed,
	}
	without := &models.Booking{
		ID:         primitive.NewObjectID(),
		Facility:   facility.ID,
		Date:       date(2026, time.September, 6),
		TotalPrice: 500,
		Status:     models.BookingConfirmed,
	}

	_, err := svc.CreateKitBooking(context.Background(), primitive.NewObjectID(), CreateKitBookingInput{
		Facility: facility.ID,
		Booking:  withRentals.ID,
		KitRentals: []KitRentalRequest{
			{Kit: kit.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	merged, err := svc.MergeKitRentals(context.Background(), []*models.Booking{withRentals, without})
	require.NoError(t, err)
	require.Len(t, merged, 2)

	require.Len(t, withRentals.KitRentals, 1)
	assert.Equal(t, 200.0, withRentals.KitRentals[0].Price)
	assert.Equal(t, 1200.0, withRentals.TotalPrice)

	assert.Empty(t, without.KitRentals)
	assert.Equal(t, 500.0, without.TotalPrice)
}
