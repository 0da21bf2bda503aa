package settlementrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormSettlementRepository implements ports.SettlementRepository.
type GormSettlementRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormSettlementRepository(db *gorm.DB, tracker aggregateTracker) *GormSettlementRepository {
	return &GormSettlementRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the settlement row and then its links in one savepoint. Links are inserted
// explicitly because association saves would swallow conflicts. An order already linked to
// another settlement violates the unique order index and is reported as ObjectAlreadyExists.
func (r *GormSettlementRepository) Add(ctx context.Context, aggregate *settlement.Settlement) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return errs.NewPersistenceError("encode settlement", err)
	}

	links := dto.Links
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if createErr := tx.Omit("Links").Create(&dto).Error; createErr != nil {
			return createErr
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsError("settlement link", aggregate.ID().String())
		}
		return errs.NewPersistenceError("add settlement", err)
	}

	r.track(aggregate)
	return nil
}

// UpdateStatus writes status and updated_at only.
func (r *GormSettlementRepository) UpdateStatus(ctx context.Context, aggregate *settlement.Settlement) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&SettlementDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"status":     aggregate.Status().String(),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return errs.NewPersistenceError("update settlement", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("settlement", aggregate.ID().String())
	}

	r.track(aggregate)
	return nil
}

func (r *GormSettlementRepository) Get(ctx context.Context, id kernel.UUID) (*settlement.Settlement, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormSettlementRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*settlement.Settlement, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// List returns settlements newest first.
func (r *GormSettlementRepository) List(ctx context.Context, filter ports.SettlementFilter) ([]*settlement.Settlement, error) {
	query := r.db.WithContext(ctx).
		Preload("Links", byPosition).
		Order("created_at DESC, id")
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var dtos []SettlementDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, errs.NewPersistenceError("list settlements", err)
	}

	result := make([]*settlement.Settlement, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

func (r *GormSettlementRepository) get(db *gorm.DB, id kernel.UUID) (*settlement.Settlement, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SettlementDTO
	if err := db.Preload("Links", byPosition).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("settlement", id.String())
		}
		return nil, errs.NewPersistenceError("get settlement", err)
	}

	return toDomain(dto)
}

func (r *GormSettlementRepository) track(aggregate *settlement.Settlement) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

// GormPrinterActionRepository implements ports.PrinterActionRepository. Rows are only ever inserted.
type GormPrinterActionRepository struct {
	db *gorm.DB
}

func NewGormPrinterActionRepository(db *gorm.DB) *GormPrinterActionRepository {
	return &GormPrinterActionRepository{db: db}
}

func (r *GormPrinterActionRepository) Append(ctx context.Context, action settlement.PrinterAction) error {
	if err := action.ID().Validate(); err != nil {
		return err
	}

	dto := actionFromDomain(action)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("append printer action", err)
	}
	return nil
}

// ListBySettlement returns the audit trail oldest first.
func (r *GormPrinterActionRepository) ListBySettlement(ctx context.Context, settlementID kernel.UUID) ([]settlement.PrinterAction, error) {
	if err := settlementID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PrinterActionDTO
	err := r.db.WithContext(ctx).
		Where("settlement_id = ?", settlementID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("list printer actions", err)
	}

	actions := make([]settlement.PrinterAction, 0, len(dtos))
	for _, dto := range dtos {
		a, mapErr := actionToDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		actions = append(actions, a)
	}
	return actions, nil
}
