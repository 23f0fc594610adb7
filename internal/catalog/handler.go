package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for catalog operations
type Handler struct {
	service *Service
	repo    Repository
	logger  *zap.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(service *Service, repo Repository, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
		logger:  logger,
	}
}

// RegisterRoutes registers catalog routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
		products.DELETE("/:id", h.deleteProduct)

		products.POST("/:id/materials", h.addMaterial)
		products.GET("/:id/materials", h.listMaterials)

		products.POST("/:id/allocations", h.addAllocation)
		products.GET("/:id/allocations", h.listAllocations)
	}

	router.DELETE("/materials/:materialId", h.removeMaterial)
	router.DELETE("/allocations/:allocationId", h.removeAllocation)
}

func (h *Handler) createProduct(c *gin.Context) {
	var product Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.CreateProduct(c.Request.Context(), &product); err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *Handler) listProducts(c *gin.Context) {
	organizationID, err := uuid.Parse(c.Query("organization_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "organization_id query parameter is required"})
		return
	}

	products, err := h.repo.ListProducts(c.Request.Context(), organizationID)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.repo.GetProductByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.DeleteProduct(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to delete product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) addMaterial(c *gin.Context) {
	productID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var input MaterialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, err := h.service.AddMaterial(c.Request.Context(), productID, &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, material)
}

func (h *Handler) listMaterials(c *gin.Context) {
	productID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	materials, err := h.repo.ListMaterials(c.Request.Context(), productID)
	if err != nil {
		h.logger.Error("Failed to list materials", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, materials)
}

func (h *Handler) removeMaterial(c *gin.Context) {
	materialID, ok := h.pathID(c, "materialId")
	if !ok {
		return
	}

	if err := h.service.RemoveMaterial(c.Request.Context(), materialID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) addAllocation(c *gin.Context) {
	productID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var input AllocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allocation, err := h.service.AddAllocation(c.Request.Context(), productID, &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, allocation)
}

func (h *Handler) listAllocations(c *gin.Context) {
	productID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	allocations, err := h.repo.ListAllocations(c.Request.Context(), productID)
	if err != nil {
		h.logger.Error("Failed to list allocations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, allocations)
}

func (h *Handler) removeAllocation(c *gin.Context) {
	allocationID, ok := h.pathID(c, "allocationId")
	if !ok {
		return
	}

	if err := h.repo.DeleteAllocation(c.Request.Context(), allocationID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
