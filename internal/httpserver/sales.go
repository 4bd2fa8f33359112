package httpserver

import (
	"context"
	"net/http"

	"shoppos/internal/domain"
	salesvc "shoppos/internal/service/sale"

	"github.com/gin-gonic/gin"
)

type saleService interface {
	Create(ctx context.Context, in salesvc.CreateInput) (*domain.Sale, error)
	List(ctx context.Context, page, size int) (*salesvc.Page, error)
	Get(ctx context.Context, id string) (*domain.Sale, error)
}

func createSaleHandler(svc saleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in salesvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func listSalesHandler(svc saleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := intQuery(c, "page", 1)
		size := intQuery(c, "size", 0)

		result, err := svc.List(c.Request.Context(), page, size)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func getSaleHandler(svc saleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}
