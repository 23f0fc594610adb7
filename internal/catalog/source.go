package catalog

import (
	"context"

	"github.com/google/uuid"

	"green-ledger/esg-platform/esg-platform-backend/internal/assessment"
)

// InputSource adapts the catalog repository to the assessment engine's input
// contract.
type InputSource struct {
	repo Repository
}

// NewInputSource creates a new engine input source backed by the catalog.
func NewInputSource(repo Repository) *InputSource {
	return &InputSource{repo: repo}
}

// GetProductInputs loads and converts everything the engine needs for one
// product.
func (s *InputSource) GetProductInputs(ctx context.Context, productID uuid.UUID) (*assessment.ProductInputs, error) {
	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	materialRows, err := s.repo.ListMaterials(ctx, productID)
	if err != nil {
		return nil, err
	}
	materials := make([]assessment.MaterialImpactRecord, 0, len(materialRows))
	for i := range materialRows {
		rec, err := materialRows[i].ToImpactRecord()
		if err != nil {
			return nil, err
		}
		materials = append(materials, rec)
	}

	allocationRows, err := s.repo.ListAllocations(ctx, productID)
	if err != nil {
		return nil, err
	}
	allocations := make([]assessment.FacilityAllocation, 0, len(allocationRows))
	for i := range allocationRows {
		allocations = append(allocations, allocationRows[i].ToAllocation())
	}

	return &assessment.ProductInputs{
		ProductID:      product.ID,
		ProductName:    product.Name,
		StudyRegion:    product.StudyRegion,
		FunctionalUnit: product.FunctionalUnit,
		ReferenceYear:  product.ReferenceYear,
		Materials:      materials,
		Allocations:    allocations,
	}, nil
}
