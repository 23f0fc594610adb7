package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"green-ledger/esg-platform/esg-platform-backend/internal/assessment"
)

// Invalidator marks a product's assessment results stale after catalog writes.
type Invalidator interface {
	MarkStale(ctx context.Context, productID uuid.UUID) error
}

// Service handles catalog business logic and boundary validation
type Service struct {
	repo        Repository
	invalidator Invalidator
	logger      *zap.Logger
}

// NewService creates a new catalog service
func NewService(repo Repository, invalidator Invalidator, logger *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger,
	}
}

// MaterialInput is the request payload for creating a material record.
type MaterialInput struct {
	Name               string                         `json:"name" binding:"required"`
	Quantity           float64                        `json:"quantity"`
	Unit               string                         `json:"unit"`
	Impacts            assessment.ImpactValues        `json:"impacts"`
	TransportImpact    float64                        `json:"transport_impact"`
	EndOfLifeImpact    float64                        `json:"end_of_life_impact"`
	DataSourceTier     string                         `json:"data_source_tier" binding:"required"`
	QualityGrade       string                         `json:"quality_grade" binding:"required"`
	UncertaintyPercent *float64                       `json:"uncertainty_percent,omitempty"`
	Pedigree           *assessment.PedigreeOverride   `json:"pedigree,omitempty"`
	DataYear           *int                           `json:"data_year,omitempty"`
	DataRegion         string                         `json:"data_region"`
	PackagingCategory  string                         `json:"packaging_category"`
}

// AllocationInput is the request payload for creating a facility allocation.
type AllocationInput struct {
	FacilityID                 uuid.UUID `json:"facility_id" binding:"required"`
	FacilityName               string    `json:"facility_name" binding:"required"`
	ProductionVolumeSharePct   float64   `json:"production_volume_share_percent"`
	FacilityEmissionsIntensity float64   `json:"facility_emissions_intensity"`
	FacilityScope1             float64   `json:"facility_scope1"`
	FacilityScope2             float64   `json:"facility_scope2"`
}

// validTiers and validGrades enforce the closed enums at the construction
// boundary; the engine itself trusts well-typed input.
var validTiers = map[string]bool{
	string(assessment.TierPrimaryVerified):    true,
	string(assessment.TierSecondaryModelled):  true,
	string(assessment.TierSecondaryEstimated): true,
}

var validGrades = map[string]bool{
	string(assessment.GradeHigh):   true,
	string(assessment.GradeMedium): true,
	string(assessment.GradeLow):    true,
}

func validatePedigreeOverride(p *assessment.PedigreeOverride) error {
	if p == nil {
		return nil
	}
	check := func(name string, v *int) error {
		if v != nil && (*v < 1 || *v > 5) {
			return fmt.Errorf("pedigree %s score %d is outside the valid range 1-5", name, *v)
		}
		return nil
	}
	for name, v := range map[string]*int{
		"reliability":   p.Reliability,
		"completeness":  p.Completeness,
		"temporal":      p.Temporal,
		"geographical":  p.Geographical,
		"technological": p.Technological,
	} {
		if err := check(name, v); err != nil {
			return err
		}
	}
	return nil
}

// AddMaterial validates and stores a material impact record, then invalidates
// the product's assessment results.
func (s *Service) AddMaterial(ctx context.Context, productID uuid.UUID, input *MaterialInput) (*MaterialRecord, error) {
	if !validTiers[input.DataSourceTier] {
		return nil, fmt.Errorf("invalid data_source_tier: %s", input.DataSourceTier)
	}
	if !validGrades[input.QualityGrade] {
		return nil, fmt.Errorf("invalid quality_grade: %s", input.QualityGrade)
	}
	if input.Quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}
	if err := validatePedigreeOverride(input.Pedigree); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}

	// A positive quantity with zero resolved impact is legal but suspicious:
	// it usually means emission-factor resolution found nothing upstream.
	if input.Quantity > 0 && input.Impacts == (assessment.ImpactValues{}) {
		s.logger.Warn("Material has positive quantity but no resolved impact values",
			zap.String("product_id", productID.String()),
			zap.String("material", input.Name))
	}

	impactsJSON, err := json.Marshal(input.Impacts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode impact values: %w", err)
	}

	material := &MaterialRecord{
		ProductID:          productID,
		Name:               input.Name,
		Quantity:           input.Quantity,
		Unit:               input.Unit,
		Impacts:            datatypes.JSON(impactsJSON),
		TransportImpact:    input.TransportImpact,
		EndOfLifeImpact:    input.EndOfLifeImpact,
		DataSourceTier:     input.DataSourceTier,
		QualityGrade:       input.QualityGrade,
		UncertaintyPercent: input.UncertaintyPercent,
		DataYear:           input.DataYear,
		DataRegion:         input.DataRegion,
		PackagingCategory:  input.PackagingCategory,
	}
	if input.Pedigree != nil {
		pedigreeJSON, err := json.Marshal(input.Pedigree)
		if err != nil {
			return nil, fmt.Errorf("failed to encode pedigree override: %w", err)
		}
		material.Pedigree = datatypes.JSON(pedigreeJSON)
	}

	if err := s.repo.CreateMaterial(ctx, material); err != nil {
		return nil, err
	}

	s.invalidate(ctx, productID)
	return material, nil
}

// RemoveMaterial deletes a material record and invalidates the product.
func (s *Service) RemoveMaterial(ctx context.Context, materialID uuid.UUID) error {
	material, err := s.repo.GetMaterialByID(ctx, materialID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteMaterial(ctx, materialID); err != nil {
		return err
	}
	s.invalidate(ctx, material.ProductID)
	return nil
}

// AddAllocation validates and stores a facility allocation record.
func (s *Service) AddAllocation(ctx context.Context, productID uuid.UUID, input *AllocationInput) (*FacilityAllocationRecord, error) {
	if input.ProductionVolumeSharePct < 0 || input.ProductionVolumeSharePct > 100 {
		return nil, fmt.Errorf("production_volume_share_percent must be within 0-100")
	}
	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}

	allocation := &FacilityAllocationRecord{
		ProductID:                  productID,
		FacilityID:                 input.FacilityID,
		FacilityName:               input.FacilityName,
		ProductionVolumeSharePct:   input.ProductionVolumeSharePct,
		FacilityEmissionsIntensity: input.FacilityEmissionsIntensity,
		FacilityScope1:             input.FacilityScope1,
		FacilityScope2:             input.FacilityScope2,
	}
	if err := s.repo.CreateAllocation(ctx, allocation); err != nil {
		return nil, err
	}

	s.invalidate(ctx, productID)
	return allocation, nil
}

// CreateProduct stores a new product.
func (s *Service) CreateProduct(ctx context.Context, product *Product) error {
	if product.StudyRegion == "" {
		product.StudyRegion = assessment.GlobalRegion
	}
	if product.FunctionalUnit <= 0 {
		product.FunctionalUnit = 1
	}
	return s.repo.CreateProduct(ctx, product)
}

func (s *Service) invalidate(ctx context.Context, productID uuid.UUID) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.MarkStale(ctx, productID); err != nil {
		s.logger.Error("Failed to invalidate assessment results",
			zap.Error(err), zap.String("product_id", productID.String()))
	}
}
