package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for catalog data access
type Repository interface {
	CreateProduct(ctx context.Context, product *Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, organizationID uuid.UUID) ([]Product, error)
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateMaterial(ctx context.Context, material *MaterialRecord) error
	GetMaterialByID(ctx context.Context, id uuid.UUID) (*MaterialRecord, error)
	ListMaterials(ctx context.Context, productID uuid.UUID) ([]MaterialRecord, error)
	UpdateMaterial(ctx context.Context, material *MaterialRecord) error
	DeleteMaterial(ctx context.Context, id uuid.UUID) error

	CreateAllocation(ctx context.Context, allocation *FacilityAllocationRecord) error
	ListAllocations(ctx context.Context, productID uuid.UUID) ([]FacilityAllocationRecord, error)
	DeleteAllocation(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateProduct(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *repository) GetProductByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	return &product, nil
}

func (r *repository) ListProducts(ctx context.Context, organizationID uuid.UUID) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *repository) UpdateProduct(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (r *repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (r *repository) CreateMaterial(ctx context.Context, material *MaterialRecord) error {
	if err := r.db.WithContext(ctx).Create(material).Error; err != nil {
		return fmt.Errorf("failed to create material record: %w", err)
	}
	return nil
}

func (r *repository) GetMaterialByID(ctx context.Context, id uuid.UUID) (*MaterialRecord, error) {
	var material MaterialRecord
	if err := r.db.WithContext(ctx).First(&material, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("material record not found: %w", err)
	}
	return &material, nil
}

func (r *repository) ListMaterials(ctx context.Context, productID uuid.UUID) ([]MaterialRecord, error) {
	var materials []MaterialRecord
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("failed to list material records: %w", err)
	}
	return materials, nil
}

func (r *repository) UpdateMaterial(ctx context.Context, material *MaterialRecord) error {
	if err := r.db.WithContext(ctx).Save(material).Error; err != nil {
		return fmt.Errorf("failed to update material record: %w", err)
	}
	return nil
}

func (r *repository) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&MaterialRecord{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete material record: %w", err)
	}
	return nil
}

func (r *repository) CreateAllocation(ctx context.Context, allocation *FacilityAllocationRecord) error {
	if err := r.db.WithContext(ctx).Create(allocation).Error; err != nil {
		return fmt.Errorf("failed to create facility allocation: %w", err)
	}
	return nil
}

func (r *repository) ListAllocations(ctx context.Context, productID uuid.UUID) ([]FacilityAllocationRecord, error) {
	var allocations []FacilityAllocationRecord
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&allocations).Error; err != nil {
		return nil, fmt.Errorf("failed to list facility allocations: %w", err)
	}
	return allocations, nil
}

func (r *repository) DeleteAllocation(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&FacilityAllocationRecord{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete facility allocation: %w", err)
	}
	return nil
}
