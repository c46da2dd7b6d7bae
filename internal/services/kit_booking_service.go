package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshua-takyi/futsalhub/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateKitBookingInput attaches rental lines to an existing booking.
type CreateKitBookingInput struct {
	Facility   primitive.ObjectID
	Booking    primitive.ObjectID
	KitRentals []KitRentalRequest
}

// KitBookingService manages the secondary kit-rental records that some
// booking paths create alongside a Booking.
type KitBookingService struct {
	kitRepo        models.KitRepo
	kitBookingRepo models.KitBookingRepo
	logger         *slog.Logger
}

func NewKitBookingService(kitRepo models.KitRepo, kitBookingRepo models.KitBookingRepo, logger *slog.Logger) *KitBookingService {
	return &KitBookingService{
		kitRepo:        kitRepo,
		kitBookingRepo: kitBookingRepo,
		logger:         logger,
	}
}

// CreateKitBooking validates and prices the rental lines, persists the
// record and decrements stock. Lines store the unit price; the total is
// derived on save.
func (ks *KitBookingService) CreateKitBooking(ctx context.Context, userID primitive.ObjectID, in CreateKitBookingInput) (*models.KitBooking, error) {
	if len(in.KitRentals) == 0 {
		return nil, fmt.Errorf("kit rentals are required: %w", models.ErrValidation)
	}

	items := make([]models.KitRentalItem, 0, len(in.KitRentals))
	for _, r := range in.KitRentals {
		if r.Quantity <= 0 {
			return nil, fmt.Errorf("kit rental quantity must be positive: %w", models.ErrValidation)
		}

		kit, err := ks.kitRepo.GetKitByID(ctx, r.Kit)
		if err != nil {
			return nil, err
		}
		if !kit.IsAvailable {
			return nil, fmt.Errorf("kit %s is not available: %w", kit.Name, models.ErrConflict)
		}
		if r.Quantity > kit.Quantity {
			return nil, fmt.Errorf("insufficient quantity for kit %s: %w", kit.Name, models.ErrConflict)
		}

		items = append(items, models.KitRentalItem{
			Kit:      kit.ID,
			Quantity: r.Quantity,
			Price:    kit.Price,
		})
	}

	kb := &models.KitBooking{
		User:       userID,
		Facility:   in.Facility,
		Booking:    in.Booking,
		KitRentals: items,
		Status:     models.BookingPending,
	}

	created, err := ks.kitBookingRepo.InsertKitBooking(ctx, kb)
	if err != nil {
		return nil, err
	}

	for i, r := range in.KitRentals {
		if err := ks.kitRepo.DecrementKitQuantity(ctx, r.Kit, r.Quantity); err != nil {
			for _, done := range in.KitRentals[:i] {
				if restoreErr := ks.kitRepo.RestoreKitQuantity(ctx, done.Kit, done.Quantity); restoreErr != nil {
					ks.logger.Error("failed to restore kit quantity after aborted kit booking",
						"kit_id", done.Kit.Hex(),
						"error", restoreErr,
					)
				}
			}
			if _, cancelErr := ks.kitBookingRepo.SetKitBookingStatus(ctx, created.ID, models.BookingCancelled); cancelErr != nil {
				ks.logger.Error("failed to void kit booking after inventory conflict",
					"kit_booking_id", created.ID.Hex(),
					"error", cancelErr,
				)
			}
			return nil, err
		}
	}

	ks.logger.Info("kit booking created",
		"kit_booking_id", created.ID.Hex(),
		"booking_id", in.Booking.Hex(),
		"total_amount", created.TotalAmount,
	)
	return created, nil
}

func (ks *KitBookingService) ListUserKitBookings(ctx context.Context, userID primitive.ObjectID) ([]*models.KitBooking, error) {
	return ks.kitBookingRepo.ListKitBookingsByUser(ctx, userID)
}

func (ks *KitBookingService) ListFacilityKitBookings(ctx context.Context, facilityID primitive.ObjectID) ([]*models.KitBooking, error) {
	return ks.kitBookingRepo.ListKitBookingsByFacility(ctx, facilityID)
}

// UpdateKitBookingStatus changes a kit booking's status. On the transition
// into cancelled the rented quantities go back onto their kits, the
// compensating action for the decrement at creation. The transition table
// rejects cancelling twice, so the restore cannot double-fire.
func (ks *KitBookingService) UpdateKitBookingStatus(ctx context.Context, id primitive.ObjectID, newStatus models.BookingStatus) (*models.KitBooking, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("unknown status %q: %w", newStatus, models.ErrValidation)
	}

	kb, err := ks.kitBookingRepo.GetKitBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !kb.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("cannot transition kit booking from %s to %s: %w", kb.Status, newStatus, models.ErrValidation)
	}

	updated, err := ks.kitBookingRepo.SetKitBookingStatus(ctx, id, newStatus)
	if err != nil {
		return nil, err
	}

	if newStatus == models.BookingCancelled {
		for _, item := range kb.KitRentals {
			if err := ks.kitRepo.RestoreKitQuantity(ctx, item.Kit, item.Quantity); err != nil {
				ks.logger.Error("failed to restore kit quantity on kit booking cancellation",
					"kit_booking_id", id.Hex(),
					"kit_id", item.Kit.Hex(),
					"error", err,
				)
			}
		}
	}

	return updated, nil
}

// MergeKitRentals folds kit-booking lines into their parent bookings for the
// owner dashboard: rentals are attached, and each matched booking's total is
// raised by the kit subtotal.
func (ks *KitBookingService) MergeKitRentals(ctx context.Context, bookings []*models.Booking) ([]*models.Booking, error) {
	if len(bookings) == 0 {
		return bookings, nil
	}

	ids := make([]primitive.ObjectID, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}

	kitBookings, err := ks.kitBookingRepo.ListKitBookingsByBookingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byBooking := make(map[primitive.ObjectID]*models.KitBooking, len(kitBookings))
	for _, kb := range kitBookings {
		byBooking[kb.Booking] = kb
	}

	for _, b := range bookings {
		kb, ok := byBooking[b.ID]
		if !ok {
			continue
		}
		var kitTotal float64
		for _, item := range kb.KitRentals {
			b.KitRentals = append(b.KitRentals, models.KitRentalLine{
				Kit:      item.Kit,
				Quantity: item.Quantity,
				Price:    item.Price * float64(item.Quantity),
			})
			kitTotal += item.Price * float64(item.Quantity)
		}
		b.TotalPrice += kitTotal
	}

	return bookings, nil
}
