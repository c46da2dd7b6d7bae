package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/futsalhub/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KitRentalRequest is one requested rental line on a booking.
type KitRentalRequest struct {
	Kit      primitive.ObjectID `json:"kit"`
	Quantity int                `json:"quantity"`
}

// CreateBookingInput carries everything the admission flow needs besides the
// acting user.
type CreateBookingInput struct {
	Facility   primitive.ObjectID
	Date       time.Time
	StartTime  string
	EndTime    string
	KitRentals []KitRentalRequest
}

// BookingService owns slot availability, booking admission and the booking
// lifecycle.
type BookingService struct {
	facilityRepo models.FacilityRepo
	kitRepo      models.KitRepo
	bookingRepo  models.BookingRepo
	logger       *slog.Logger

	// Now is the clock used for slot calculation and the sweep cutoff.
	// Swappable in tests.
	Now func() time.Time
}

func NewBookingService(facilityRepo models.FacilityRepo, kitRepo models.KitRepo, bookingRepo models.BookingRepo, logger *slog.Logger) *BookingService {
	return &BookingService{
		facilityRepo: facilityRepo,
		kitRepo:      kitRepo,
		bookingRepo:  bookingRepo,
		logger:       logger,
		Now:          time.Now,
	}
}

// AvailableSlots computes the bookable hourly slots for a facility on a
// calendar day and marks the ones already taken by active bookings. When the
// calculator rolls a closing-soon request over to the next day, the full
// next-day window comes back untouched; today's bookings must not shadow
// tomorrow's slots.
func (bs *BookingService) AvailableSlots(ctx context.Context, facilityID primitive.ObjectID, date time.Time) ([]Slot, error) {
	facility, err := bs.facilityRepo.GetFacilityByID(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	slots, slotDay, err := ComputeSlots(facility.OpeningTime, facility.ClosingTime, date, bs.Now(), facility.PricePerHour)
	if err != nil {
		return nil, err
	}
	if !SameDay(slotDay, date) {
		return slots, nil
	}

	bookings, err := bs.bookingRepo.FindActiveByFacilityDate(ctx, facilityID, date)
	if err != nil {
		return nil, err
	}

	return MarkAvailability(slots, bookings), nil
}

// CreateBooking admits a new booking: facility must exist, the requested
// interval must not overlap any active booking, kit rentals must be in stock.
// Court time plus kit lines are priced together and kit stock is decremented
// through conditional writes, with compensating restores if admission aborts
// partway.
func (bs *BookingService) CreateBooking(ctx context.Context, userID primitive.ObjectID, in CreateBookingInput) (*models.Booking, error) {
	bs.logger.Info("booking admission started",
		"user_id", userID.Hex(),
		"facility_id", in.Facility.Hex(),
		"date", in.Date.Format("2006-01-02"),
		"start_time", in.StartTime,
		"end_time", in.EndTime,
	)

	booking, err := bs.admit(ctx, userID, in)
	if err != nil {
		bs.logger.Warn("booking admission failed",
			"user_id", userID.Hex(),
			"facility_id", in.Facility.Hex(),
			"error", err,
		)
		return nil, err
	}

	bs.logger.Info("booking admitted",
		"booking_id", booking.ID.Hex(),
		"user_id", userID.Hex(),
		"total_price", booking.TotalPrice,
	)
	return booking, nil
}

func (bs *BookingService) admit(ctx context.Context, userID primitive.ObjectID, in CreateBookingInput) (*models.Booking, error) {
	hours, err := DurationHours(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	facility, err := bs.facilityRepo.GetFacilityByID(ctx, in.Facility)
	if err != nil {
		return nil, err
	}

	overlap, err := bs.bookingRepo.HasOverlap(ctx, in.Facility, in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, fmt.Errorf("time slot already booked: %w", models.ErrConflict)
	}

	courtPrice := hours * facility.PricePerHour

	lines, kitSubtotal, err := bs.priceKitRentals(ctx, in.KitRentals)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		User:          userID,
		Facility:      in.Facility,
		Date:          in.Date,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		TotalPrice:    courtPrice + kitSubtotal,
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentPending,
		KitRentals:    lines,
	}

	created, err := bs.bookingRepo.InsertBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	if err := bs.commitDecrements(ctx, in.KitRentals); err != nil {
		// Stock moved between pricing and commit. Void the reservation so
		// the slot frees up again, then surface the conflict. Voiding strips
		// the rental lines; they were never decremented, so no cancellation
		// path may restore from them.
		if voidErr := bs.bookingRepo.VoidBooking(ctx, created.ID); voidErr != nil {
			bs.logger.Error("failed to void booking after inventory conflict",
				"booking_id", created.ID.Hex(),
				"error", voidErr,
			)
		}
		return nil, err
	}

	return created, nil
}

// priceKitRentals validates the requested lines against live inventory and
// returns priced snapshots plus the rental subtotal. Line price is the line
// total, frozen at booking time.
func (bs *BookingService) priceKitRentals(ctx context.Context, rentals []KitRentalRequest) ([]models.KitRentalLine, float64, error) {
	if len(rentals) == 0 {
		return nil, 0, nil
	}

	ids := make([]primitive.ObjectID, 0, len(rentals))
	for _, r := range rentals {
		if r.Quantity <= 0 {
			return nil, 0, fmt.Errorf("kit rental quantity must be positive: %w", models.ErrValidation)
		}
		ids = append(ids, r.Kit)
	}

	kits, err := bs.kitRepo.GetKitsByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	kitsByID := make(map[primitive.ObjectID]*models.Kit, len(kits))
	for _, k := range kits {
		kitsByID[k.ID] = k
	}

	lines := make([]models.KitRentalLine, 0, len(rentals))
	var subtotal float64
	for _, r := range rentals {
		kit, ok := kitsByID[r.Kit]
		if !ok {
			return nil, 0, fmt.Errorf("kit %s: %w", r.Kit.Hex(), models.ErrNotFound)
		}
		if !kit.IsAvailable {
			return nil, 0, fmt.Errorf("kit %s is not available: %w", kit.Name, models.ErrConflict)
		}
		if r.Quantity > kit.Quantity {
			return nil, 0, fmt.Errorf("insufficient quantity for kit %s: %w", kit.Name, models.ErrConflict)
		}

		linePrice := kit.Price * float64(r.Quantity)
		subtotal += linePrice
		lines = append(lines, models.KitRentalLine{
			Kit:      kit.ID,
			Quantity: r.Quantity,
			Price:    linePrice,
		})
	}

	return lines, subtotal, nil
}

// commitDecrements applies the conditional stock decrements. On a failed
// condition it restores the decrements already applied before returning.
func (bs *BookingService) commitDecrements(ctx context.Context, rentals []KitRentalRequest) error {
	for i, r := range rentals {
		if err := bs.kitRepo.DecrementKitQuantity(ctx, r.Kit, r.Quantity); err != nil {
			for _, done := range rentals[:i] {
				if restoreErr := bs.kitRepo.RestoreKitQuantity(ctx, done.Kit, done.Quantity); restoreErr != nil {
					bs.logger.Error("failed to restore kit quantity after aborted admission",
						"kit_id", done.Kit.Hex(),
						"quantity", done.Quantity,
						"error", restoreErr,
					)
				}
			}
			return err
		}
	}
	return nil
}

func (bs *BookingService) GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return bs.bookingRepo.GetBookingByID(ctx, id)
}

func (bs *BookingService) ListUserBookings(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error) {
	return bs.bookingRepo.ListBookingsByUser(ctx, userID)
}

func (bs *BookingService) ListFacilityBookings(ctx context.Context, facilityID primitive.ObjectID) ([]*models.Booking, error) {
	if _, err := bs.facilityRepo.GetFacilityByID(ctx, facilityID); err != nil {
		return nil, err
	}
	return bs.bookingRepo.ListBookingsByFacility(ctx, facilityID)
}

// UpdateBookingStatus moves a booking through the lifecycle. Only the owner
// of the booked facility may act, and the transition must be in the allowed
// table. Cancelling a booking with embedded kit rentals restores inventory;
// the transition guard makes the restore fire at most once, since cancelled
// is terminal.
func (bs *BookingService) UpdateBookingStatus(ctx context.Context, bookingID primitive.ObjectID, newStatus models.BookingStatus, actingUserID primitive.ObjectID) (*models.Booking, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("unknown booking status %q: %w", newStatus, models.ErrValidation)
	}

	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	facility, err := bs.facilityRepo.GetFacilityByID(ctx, booking.Facility)
	if err != nil {
		return nil, err
	}
	if facility.Owner != actingUserID {
		return nil, fmt.Errorf("only the facility owner may update booking status: %w", models.ErrForbidden)
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("cannot transition booking from %s to %s: %w", booking.Status, newStatus, models.ErrValidation)
	}

	updated, err := bs.bookingRepo.SetBookingStatus(ctx, bookingID, newStatus)
	if err != nil {
		return nil, err
	}

	if newStatus == models.BookingCancelled {
		for _, line := range booking.KitRentals {
			if err := bs.kitRepo.RestoreKitQuantity(ctx, line.Kit, line.Quantity); err != nil {
				bs.logger.Error("failed to restore kit quantity on cancellation",
					"booking_id", bookingID.Hex(),
					"kit_id", line.Kit.Hex(),
					"error", err,
				)
			}
		}
	}

	bs.logger.Info("booking status updated",
		"booking_id", bookingID.Hex(),
		"from", booking.Status,
		"to", newStatus,
	)
	return updated, nil
}

// UpdatePaymentStatus sets the payment flag. It is independent of the booking
// status state machine.
func (bs *BookingService) UpdatePaymentStatus(ctx context.Context, bookingID primitive.ObjectID, status models.PaymentStatus, actingUserID primitive.ObjectID) (*models.Booking, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown payment status %q: %w", status, models.ErrValidation)
	}

	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	facility, err := bs.facilityRepo.GetFacilityByID(ctx, booking.Facility)
	if err != nil {
		return nil, err
	}
	if facility.Owner != actingUserID {
		return nil, fmt.Errorf("only the facility owner may update payment status: %w", models.ErrForbidden)
	}

	return bs.bookingRepo.SetPaymentStatus(ctx, bookingID, status)
}

// CancelStalePending cancels pending bookings dated strictly before yesterday
// end-of-day, restoring each booking's kit rentals to stock. Invoked by the
// daily scheduler. The conditional per-booking cancel keeps a re-run, or a
// concurrent status change, from restoring the same lines twice.
func (bs *BookingService) CancelStalePending(ctx context.Context) (int64, error) {
	now := bs.Now()
	yesterday := now.AddDate(0, 0, -1)
	cutoff := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 23, 59, 59, int(999*time.Millisecond), now.Location())

	stale, err := bs.bookingRepo.FindStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	var count int64
	for _, booking := range stale {
		cancelled, err := bs.bookingRepo.CancelIfPending(ctx, booking.ID)
		if err != nil {
			bs.logger.Error("failed to cancel stale booking",
				"booking_id", booking.ID.Hex(),
				"error", err,
			)
			continue
		}
		if !cancelled {
			continue
		}
		count++

		for _, line := range booking.KitRentals {
			if err := bs.kitRepo.RestoreKitQuantity(ctx, line.Kit, line.Quantity); err != nil {
				bs.logger.Error("failed to restore kit quantity on sweep",
					"booking_id", booking.ID.Hex(),
					"kit_id", line.Kit.Hex(),
					"error", err,
				)
			}
		}
	}

	if count > 0 {
		bs.logger.Info("stale pending bookings cancelled", "count", count)
	}
	return count, nil
}
