package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"green-ledger/esg-platform/esg-platform-backend/internal/assessment"
)

// Product represents a catalogued product under assessment
type Product struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null" json:"organization_id"`
	Name           string         `gorm:"not null" json:"name"`
	SKU            string         `json:"sku"`
	StudyRegion    string         `gorm:"default:'GLO'" json:"study_region"`
	FunctionalUnit float64        `gorm:"default:1" json:"functional_unit"` // units covered by one assessment
	ReferenceYear  *int           `json:"reference_year,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// MaterialRecord is a stored material impact record, one row per product input.
// Impact values are resolved upstream (quantity x factor) before storage.
type MaterialRecord struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Name               string         `gorm:"not null" json:"name"`
	Quantity           float64        `json:"quantity"`
	Unit               string         `json:"unit"`
	Impacts            datatypes.JSON `json:"impacts"` // assessment.ImpactValues
	TransportImpact    float64        `json:"transport_impact"`
	EndOfLifeImpact    float64        `json:"end_of_life_impact"`
	DataSourceTier     string         `gorm:"not null" json:"data_source_tier"`
	QualityGrade       string         `gorm:"not null" json:"quality_grade"`
	UncertaintyPercent *float64       `json:"uncertainty_percent,omitempty"`
	Pedigree           datatypes.JSON `json:"pedigree,omitempty"` // assessment.PedigreeOverride
	DataYear           *int           `json:"data_year,omitempty"`
	DataRegion         string         `json:"data_region"`
	PackagingCategory  string         `json:"packaging_category"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	Product            Product        `gorm:"foreignKey:ProductID" json:"-"`
}

// FacilityAllocationRecord attributes part of a facility's output to a product.
type FacilityAllocationRecord struct {
	ID                         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID                  uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	FacilityID                 uuid.UUID `gorm:"type:uuid;not null" json:"facility_id"`
	FacilityName               string    `gorm:"not null" json:"facility_name"`
	ProductionVolumeSharePct   float64   `json:"production_volume_share_percent"`
	FacilityEmissionsIntensity float64   `json:"facility_emissions_intensity"`
	FacilityScope1             float64   `json:"facility_scope1"`
	FacilityScope2             float64   `json:"facility_scope2"`
	CreatedAt                  time.Time `json:"created_at"`
	UpdatedAt                  time.Time `json:"updated_at"`
	Product                    Product   `gorm:"foreignKey:ProductID" json:"-"`
}

// ToImpactRecord converts a stored row into the engine's input record.
func (m *MaterialRecord) ToImpactRecord() (assessment.MaterialImpactRecord, error) {
	rec := assessment.MaterialImpactRecord{
		ID:                 m.ID,
		Name:               m.Name,
		Quantity:           m.Quantity,
		Unit:               m.Unit,
		TransportImpact:    m.TransportImpact,
		EndOfLifeImpact:    m.EndOfLifeImpact,
		DataSourceTier:     assessment.DataSourceTier(m.DataSourceTier),
		QualityGrade:       assessment.QualityGrade(m.QualityGrade),
		UncertaintyPercent: m.UncertaintyPercent,
		DataYear:           m.DataYear,
		DataRegion:         m.DataRegion,
		PackagingCategory:  m.PackagingCategory,
	}

	if len(m.Impacts) > 0 {
		if err := json.Unmarshal(m.Impacts, &rec.Impacts); err != nil {
			return rec, fmt.Errorf("failed to parse impact values for material %s: %w", m.ID, err)
		}
	}
	if len(m.Pedigree) > 0 {
		var override assessment.PedigreeOverride
		if err := json.Unmarshal(m.Pedigree, &override); err != nil {
			return rec, fmt.Errorf("failed to parse pedigree override for material %s: %w", m.ID, err)
		}
		rec.Pedigree = &override
	}

	return rec, nil
}

// ToAllocation converts a stored row into the engine's allocation record.
func (f *FacilityAllocationRecord) ToAllocation() assessment.FacilityAllocation {
	return assessment.FacilityAllocation{
		FacilityID:                 f.FacilityID,
		FacilityName:               f.FacilityName,
		ProductionVolumeSharePct:   f.ProductionVolumeSharePct,
		FacilityEmissionsIntensity: f.FacilityEmissionsIntensity,
		FacilityScope1:             f.FacilityScope1,
		FacilityScope2:             f.FacilityScope2,
	}
}
