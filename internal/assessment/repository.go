package assessment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssessmentRun is one persisted engine invocation for a product. The engine
// outputs are stored wholesale as JSON; a new run replaces the prior one.
type AssessmentRun struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"product_id"`
	ProductName   string         `json:"product_name"`
	ReferenceYear int            `gorm:"not null" json:"reference_year"`
	StudyRegion   string         `json:"study_region"`
	Impacts       datatypes.JSON `json:"impacts"` // AggregatedImpacts
	Quality       datatypes.JSON `json:"quality"` // AggregateDataQuality
	Statement     string         `gorm:"type:text" json:"statement"`
	MaterialCount int            `json:"material_count"`
	FacilityCount int            `json:"facility_count"`
	IsStale       bool           `gorm:"default:false;index" json:"is_stale"`
	ComputedAt    time.Time      `json:"computed_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Repository defines the interface for assessment run persistence
type Repository interface {
	Replace(ctx context.Context, run *AssessmentRun) error
	GetLatest(ctx context.Context, productID uuid.UUID) (*AssessmentRun, error)
	MarkStale(ctx context.Context, productID uuid.UUID) error
	GetStale(ctx context.Context, limit int) ([]AssessmentRun, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new assessment run repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Replace stores a run, replacing any prior run for the same product. The
// delete-and-insert runs in one transaction so readers never see a gap.
func (r *repository) Replace(ctx context.Context, run *AssessmentRun) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", run.ProductID).Delete(&AssessmentRun{}).Error; err != nil {
			return err
		}
		return tx.Create(run).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace assessment run: %w", err)
	}
	return nil
}

func (r *repository) GetLatest(ctx context.Context, productID uuid.UUID) (*AssessmentRun, error) {
	var run AssessmentRun
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("computed_at DESC").
		First(&run).Error; err != nil {
		return nil, fmt.Errorf("no assessment run found for product %s: %w", productID, err)
	}
	return &run, nil
}

func (r *repository) MarkStale(ctx context.Context, productID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Model(&AssessmentRun{}).
		Where("product_id = ?", productID).
		Update("is_stale", true).Error; err != nil {
		return fmt.Errorf("failed to mark assessment run stale: %w", err)
	}
	return nil
}

func (r *repository) GetStale(ctx context.Context, limit int) ([]AssessmentRun, error) {
	var runs []AssessmentRun
	query := r.db.WithContext(ctx).
		Where("is_stale = ?", true).
		Order("updated_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list stale assessment runs: %w", err)
	}
	return runs, nil
}
