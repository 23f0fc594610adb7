package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"green-ledger/esg-platform/esg-platform-backend/internal/assessment"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateProduct(ctx context.Context, product *Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) ListProducts(ctx context.Context, organizationID uuid.UUID) ([]Product, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) UpdateProduct(ctx context.Context, product *Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CreateMaterial(ctx context.Context, material *MaterialRecord) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockRepository) GetMaterialByID(ctx context.Context, id uuid.UUID) (*MaterialRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MaterialRecord), args.Error(1)
}

func (m *MockRepository) ListMaterials(ctx context.Context, productID uuid.UUID) ([]MaterialRecord, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]MaterialRecord), args.Error(1)
}

func (m *MockRepository) UpdateMaterial(ctx context.Context, material *MaterialRecord) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockRepository) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CreateAllocation(ctx context.Context, allocation *FacilityAllocationRecord) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockRepository) ListAllocations(ctx context.Context, productID uuid.UUID) ([]FacilityAllocationRecord, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]FacilityAllocationRecord), args.Error(1)
}

func (m *MockRepository) DeleteAllocation(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockInvalidator is a mock implementation of the Invalidator interface
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) MarkStale(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func intPtr(v int) *int { return &v }

func TestAddMaterialRejectsInvalidTier(t *testing.T) {
	service := NewService(new(MockRepository), nil, zap.NewNop())

	_, err := service.AddMaterial(context.Background(), uuid.New(), &MaterialInput{
		Name:           "Glass bottle",
		DataSourceTier: "tertiary_guessed",
		QualityGrade:   string(assessment.GradeHigh),
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "data_source_tier")
}

func TestAddMaterialRejectsInvalidGrade(t *testing.T) {
	service := NewService(new(MockRepository), nil, zap.NewNop())

	_, err := service.AddMaterial(context.Background(), uuid.New(), &MaterialInput{
		Name:           "Glass bottle",
		DataSourceTier: string(assessment.TierPrimaryVerified),
		QualityGrade:   "EXCELLENT",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "quality_grade")
}

func TestAddMaterialRejectsOutOfRangePedigree(t *testing.T) {
	service := NewService(new(MockRepository), nil, zap.NewNop())

	_, err := service.AddMaterial(context.Background(), uuid.New(), &MaterialInput{
		Name:           "Glass bottle",
		DataSourceTier: string(assessment.TierPrimaryVerified),
		QualityGrade:   string(assessment.GradeHigh),
		Pedigree:       &assessment.PedigreeOverride{Reliability: intPtr(7)},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reliability")
}

func TestAddMaterialPersistsAndInvalidates(t *testing.T) {
	productID := uuid.New()
	ctx := context.Background()

	mockRepo := new(MockRepository)
	mockInvalidator := new(MockInvalidator)

	mockRepo.On("GetProductByID", ctx, productID).Return(&Product{ID: productID}, nil)
	mockRepo.On("CreateMaterial", ctx, mock.AnythingOfType("*catalog.MaterialRecord")).Return(nil)
	mockInvalidator.On("MarkStale", ctx, productID).Return(nil)

	service := NewService(mockRepo, mockInvalidator, zap.NewNop())
	material, err := service.AddMaterial(ctx, productID, &MaterialInput{
		Name:           "Glass bottle",
		Quantity:       0.4,
		Unit:           "kg",
		Impacts:        assessment.ImpactValues{ClimateChange: 0.34},
		DataSourceTier: string(assessment.TierSecondaryModelled),
		QualityGrade:   string(assessment.GradeMedium),
		DataYear:       intPtr(2022),
		DataRegion:     "DE",
	})

	assert.NoError(t, err)
	assert.Equal(t, productID, material.ProductID)
	assert.Equal(t, "Glass bottle", material.Name)
	assert.NotEmpty(t, material.Impacts)

	rec, err := material.ToImpactRecord()
	assert.NoError(t, err)
	assert.InDelta(t, 0.34, rec.Impacts.ClimateChange, 1e-9)

	mockRepo.AssertExpectations(t)
	mockInvalidator.AssertExpectations(t)
}

func TestRemoveMaterialInvalidatesOwningProduct(t *testing.T) {
	productID := uuid.New()
	materialID := uuid.New()
	ctx := context.Background()

	mockRepo := new(MockRepository)
	mockInvalidator := new(MockInvalidator)

	mockRepo.On("GetMaterialByID", ctx, materialID).Return(&MaterialRecord{ID: materialID, ProductID: productID}, nil)
	mockRepo.On("DeleteMaterial", ctx, materialID).Return(nil)
	mockInvalidator.On("MarkStale", ctx, productID).Return(nil)

	service := NewService(mockRepo, mockInvalidator, zap.NewNop())
	err := service.RemoveMaterial(ctx, materialID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockInvalidator.AssertExpectations(t)
}

func TestAddAllocationRejectsShareOutOfRange(t *testing.T) {
	service := NewService(new(MockRepository), nil, zap.NewNop())

	_, err := service.AddAllocation(context.Background(), uuid.New(), &AllocationInput{
		FacilityID:               uuid.New(),
		FacilityName:             "Plant A",
		ProductionVolumeSharePct: 140,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "production_volume_share_percent")
}

func TestCreateProductAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	mockRepo.On("CreateProduct", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	service := NewService(mockRepo, nil, zap.NewNop())
	product := &Product{Name: "Sparkling Water 1L"}
	err := service.CreateProduct(ctx, product)

	assert.NoError(t, err)
	assert.Equal(t, assessment.GlobalRegion, product.StudyRegion)
	assert.Equal(t, 1.0, product.FunctionalUnit)
}
