package httpserver

import (
	"context"
	"net/http"
	"strconv"

	"shoppos/internal/domain"
	productsvc "shoppos/internal/service/product"

	"github.com/gin-gonic/gin"
)

type productService interface {
	List(ctx context.Context, page, size int, category string) (*productsvc.Page, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

func listProductsHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := intQuery(c, "page", 1)
		size := intQuery(c, "size", 0)

		result, err := svc.List(c.Request.Context(), page, size, c.Query("category"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func getProductHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
