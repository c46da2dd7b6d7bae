package services

import (
	"context"
	"fmt"

	"github.com/joshua-takyi/futsalhub/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type KitService struct {
	kitRepo      models.KitRepo
	facilityRepo models.FacilityRepo
}

func NewKitService(kitRepo models.KitRepo, facilityRepo models.FacilityRepo) *KitService {
	return &KitService{
		kitRepo:      kitRepo,
		facilityRepo: facilityRepo,
	}
}

func (ks *KitService) CreateKit(ctx context.Context, kit *models.Kit, ownerID primitive.ObjectID) (*models.Kit, error) {
	if err := models.Validate.Struct(kit); err != nil {
		return nil, fmt.Errorf("invalid kit data: %v: %w", err, models.ErrValidation)
	}

	facility, err := ks.facilityRepo.GetFacilityByID(ctx, kit.Facility)
	if err != nil {
		return nil, err
	}
	if facility.Owner != ownerID {
		return nil, fmt.Errorf("you can only add kits to your own facilities: %w", models.ErrForbidden)
	}

	kit.IsAvailable = true
	return ks.kitRepo.CreateKit(ctx, kit)
}

func (ks *KitService) GetKit(ctx context.Context, id primitive.ObjectID) (*models.Kit, error) {
	return ks.kitRepo.GetKitByID(ctx, id)
}

func (ks *KitService) ListKits(ctx context.Context) ([]*models.Kit, error) {
	return ks.kitRepo.ListKits(ctx)
}

func (ks *KitService) ListKitsByFacility(ctx context.Context, facilityID primitive.ObjectID) ([]*models.Kit, error) {
	if _, err := ks.facilityRepo.GetFacilityByID(ctx, facilityID); err != nil {
		return nil, err
	}
	return ks.kitRepo.ListKitsByFacility(ctx, facilityID)
}

// UpdateKit applies a partial update after checking ownership through the
// kit's facility. Direct quantity writes may never push stock negative.
func (ks *KitService) UpdateKit(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID, update map[string]interface{}) (*models.Kit, error) {
	kit, err := ks.kitRepo.GetKitByID(ctx, id)
	if err != nil {
		return nil, err
	}

	facility, err := ks.facilityRepo.GetFacilityByID(ctx, kit.Facility)
	if err != nil {
		return nil, err
	}
	if facility.Owner != ownerID {
		return nil, fmt.Errorf("you can only update kits for your own facilities: %w", models.ErrForbidden)
	}

	if raw, ok := update["quantity"]; ok {
		qty, ok := toInt(raw)
		if !ok || qty < 0 {
			return nil, fmt.Errorf("kit quantity must be a non-negative integer: %w", models.ErrValidation)
		}
		update["quantity"] = qty
	}

	return ks.kitRepo.UpdateKit(ctx, id, update)
}

func (ks *KitService) DeleteKit(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) error {
	kit, err := ks.kitRepo.GetKitByID(ctx, id)
	if err != nil {
		return err
	}

	facility, err := ks.facilityRepo.GetFacilityByID(ctx, kit.Facility)
	if err != nil {
		return err
	}
	if facility.Owner != ownerID {
		return fmt.Errorf("you can only delete kits for your own facilities: %w", models.ErrForbidden)
	}

	return ks.kitRepo.DeleteKit(ctx, id)
}

// toInt accepts the numeric types JSON decoding may hand us for quantity.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
