package assessment

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Exporter renders assessment results into downloadable documents.
type Exporter interface {
	ImpactsWorkbook(result *Result) ([]byte, error)
	StatementPDF(result *Result) ([]byte, error)
}

// Handler handles HTTP requests for assessment operations
type Handler struct {
	service  *Service
	exporter Exporter
	logger   *zap.Logger
}

// NewHandler creates a new assessment handler
func NewHandler(service *Service, exporter Exporter, logger *zap.Logger) *Handler {
	return &Handler{
		service:  service,
		exporter: exporter,
		logger:   logger,
	}
}

// RegisterRoutes registers assessment routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products/:id")
	{
		products.POST("/assessments", h.runAssessment)
		products.GET("/assessments/latest", h.getLatest)
		products.GET("/assessments/latest/statement", h.getStatement)
		products.GET("/assessments/latest/export", h.exportLatest)
	}
}

// runAssessment handles POST /api/v1/products/:id/assessments
func (h *Handler) runAssessment(c *gin.Context) {
	productID, ok := h.productID(c)
	if !ok {
		return
	}

	result, err := h.service.Run(c.Request.Context(), productID)
	if err != nil {
		h.logger.Error("Failed to run assessment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// getLatest handles GET /api/v1/products/:id/assessments/latest
func (h *Handler) getLatest(c *gin.Context) {
	productID, ok := h.productID(c)
	if !ok {
		return
	}

	result, err := h.service.Latest(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// getStatement handles GET /api/v1/products/:id/assessments/latest/statement
func (h *Handler) getStatement(c *gin.Context) {
	productID, ok := h.productID(c)
	if !ok {
		return
	}

	result, err := h.service.Latest(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(result.Statement))
}

// exportLatest handles GET /api/v1/products/:id/assessments/latest/export
func (h *Handler) exportLatest(c *gin.Context) {
	productID, ok := h.productID(c)
	if !ok {
		return
	}

	result, err := h.service.Latest(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	switch format {
	case "xlsx":
		data, err := h.exporter.ImpactsWorkbook(result)
		if err != nil {
			h.logger.Error("Failed to export impacts workbook", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=impacts_%s.xlsx", productID))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	case "pdf":
		data, err := h.exporter.StatementPDF(result)
		if err != nil {
			h.logger.Error("Failed to export statement PDF", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=data_quality_%s.pdf", productID))
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported export format: " + format})
	}
}

func (h *Handler) productID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return uuid.Nil, false
	}
	return id, true
}
