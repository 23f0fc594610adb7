package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ProductInputs is everything the engine needs for one product, resolved by
// the catalog layer.
type ProductInputs struct {
	ProductID      uuid.UUID
	ProductName    string
	StudyRegion    string
	FunctionalUnit float64
	ReferenceYear  *int
	Materials      []MaterialImpactRecord
	Allocations    []FacilityAllocation
}

// InputSource loads resolved product inputs for the engine.
type InputSource interface {
	GetProductInputs(ctx context.Context, productID uuid.UUID) (*ProductInputs, error)
}

// Result bundles the engine outputs for one invocation.
type Result struct {
	ProductID     uuid.UUID            `json:"product_id"`
	ProductName   string               `json:"product_name"`
	ReferenceYear int                  `json:"reference_year"`
	Impacts       AggregatedImpacts    `json:"impacts"`
	Quality       AggregateDataQuality `json:"quality"`
	Statement     string               `json:"statement"`
	ComputedAt    time.Time            `json:"computed_at"`
}

// Service orchestrates the engine: load inputs, compute, persist wholesale.
type Service struct {
	source InputSource
	repo   Repository
	logger *zap.Logger

	// currentYear supplies the fallback reference year; injectable for tests.
	currentYear func() int
}

// NewService creates a new assessment service
func NewService(source InputSource, repo Repository, logger *zap.Logger) *Service {
	return &Service{
		source:      source,
		repo:        repo,
		logger:      logger,
		currentYear: func() int { return time.Now().Year() },
	}
}

// Run executes a full assessment for a product and replaces the stored run.
// The computation itself is pure; all I/O happens here at the edges.
func (s *Service) Run(ctx context.Context, productID uuid.UUID) (*Result, error) {
	inputs, err := s.source.GetProductInputs(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product inputs: %w", err)
	}

	referenceYear := s.currentYear()
	if inputs.ReferenceYear != nil {
		referenceYear = *inputs.ReferenceYear
	}

	impacts := AggregateProductImpacts(inputs.Materials, inputs.Allocations, inputs.FunctionalUnit)
	quality := AssessAggregateDataQuality(inputs.Materials, inputs.StudyRegion, referenceYear)
	statement := FormatDataQualityStatement(quality, inputs.ProductName, referenceYear)

	result := &Result{
		ProductID:     productID,
		ProductName:   inputs.ProductName,
		ReferenceYear: referenceYear,
		Impacts:       impacts,
		Quality:       quality,
		Statement:     statement,
		ComputedAt:    time.Now().UTC(),
	}

	impactsJSON, err := json.Marshal(impacts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode aggregated impacts: %w", err)
	}
	qualityJSON, err := json.Marshal(quality)
	if err != nil {
		return nil, fmt.Errorf("failed to encode data quality: %w", err)
	}

	run := &AssessmentRun{
		ProductID:     productID,
		ProductName:   inputs.ProductName,
		ReferenceYear: referenceYear,
		StudyRegion:   inputs.StudyRegion,
		Impacts:       datatypes.JSON(impactsJSON),
		Quality:       datatypes.JSON(qualityJSON),
		Statement:     statement,
		MaterialCount: len(inputs.Materials),
		FacilityCount: len(inputs.Allocations),
		IsStale:       false,
		ComputedAt:    result.ComputedAt,
	}
	if err := s.repo.Replace(ctx, run); err != nil {
		return nil, err
	}

	s.logger.Info("Assessment run completed",
		zap.String("product_id", productID.String()),
		zap.Int("reference_year", referenceYear),
		zap.Int("materials", len(inputs.Materials)),
		zap.Int("facilities", len(inputs.Allocations)),
		zap.Int("overall_dqi", quality.OverallDQI),
		zap.String("confidence", string(quality.Confidence)))

	return result, nil
}

// Latest returns the stored run for a product with its outputs decoded.
func (s *Service) Latest(ctx context.Context, productID uuid.UUID) (*Result, error) {
	run, err := s.repo.GetLatest(ctx, productID)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ProductID:     run.ProductID,
		ProductName:   run.ProductName,
		ReferenceYear: run.ReferenceYear,
		Statement:     run.Statement,
		ComputedAt:    run.ComputedAt,
	}
	if err := json.Unmarshal(run.Impacts, &result.Impacts); err != nil {
		return nil, fmt.Errorf("failed to decode stored impacts: %w", err)
	}
	if err := json.Unmarshal(run.Quality, &result.Quality); err != nil {
		return nil, fmt.Errorf("failed to decode stored quality: %w", err)
	}
	return result, nil
}

// RefreshStale recomputes runs invalidated by catalog writes. Used by the
// background worker; each product is independent so failures don't stop the
// batch.
func (s *Service) RefreshStale(ctx context.Context, limit int) (int, error) {
	stale, err := s.repo.GetStale(ctx, limit)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, run := range stale {
		if _, err := s.Run(ctx, run.ProductID); err != nil {
			s.logger.Error("Failed to refresh stale assessment",
				zap.Error(err), zap.String("product_id", run.ProductID.String()))
			continue
		}
		refreshed++
	}
	return refreshed, nil
}
