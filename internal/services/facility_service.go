package services

import (
	"context"
	"fmt"

	"github.com/joshua-takyi/futsalhub/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FacilityService struct {
	facilityRepo models.FacilityRepo
}

func NewFacilityService(facilityRepo models.FacilityRepo) *FacilityService {
	return &FacilityService{
		facilityRepo: facilityRepo,
	}
}

func (fs *FacilityService) CreateFacility(ctx context.Context, facility *models.Facility, ownerID primitive.ObjectID) (*models.Facility, error) {
	if facility.OpeningTime == "" {
		facility.OpeningTime = models.DefaultOpeningTime
	}
	if facility.ClosingTime == "" {
		facility.ClosingTime = models.DefaultClosingTime
	}

	if err := models.Validate.Struct(facility); err != nil {
		return nil, fmt.Errorf("invalid facility data: %v: %w", err, models.ErrValidation)
	}
	if err := facility.ValidateHours(); err != nil {
		return nil, err
	}

	facility.Owner = ownerID
	facility.IsAvailable = true

	return fs.facilityRepo.CreateFacility(ctx, facility)
}

func (fs *FacilityService) GetFacility(ctx context.Context, id primitive.ObjectID) (*models.Facility, error) {
	return fs.facilityRepo.GetFacilityByID(ctx, id)
}

func (fs *FacilityService) ListFacilities(ctx context.Context) ([]*models.Facility, error) {
	return fs.facilityRepo.ListFacilities(ctx)
}

// UpdateFacility applies a partial update after checking ownership. Hours
// changes are re-validated against the opening < closing invariant.
func (fs *FacilityService) UpdateFacility(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID, update map[string]interface{}) (*models.Facility, error) {
	existing, err := fs.facilityRepo.GetFacilityByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Owner != ownerID {
		return nil, fmt.Errorf("you can only update your own facilities: %w", models.ErrForbidden)
	}

	opening := existing.OpeningTime
	closing := existing.ClosingTime
	if v, ok := update["opening_time"].(string); ok {
		opening = v
	}
	if v, ok := update["closing_time"].(string); ok {
		closing = v
	}
	check := models.Facility{OpeningTime: opening, ClosingTime: closing}
	if err := check.ValidateHours(); err != nil {
		return nil, err
	}

	return fs.facilityRepo.UpdateFacility(ctx, id, update)
}

func (fs *FacilityService) DeleteFacility(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) error {
	existing, err := fs.facilityRepo.GetFacilityByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Owner != ownerID {
		return fmt.Errorf("you can only delete your own facilities: %w", models.ErrForbidden)
	}

	return fs.facilityRepo.DeleteFacility(ctx, id)
}
