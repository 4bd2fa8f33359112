package httpserver

import (
	"context"
	"net/http"

	"shoppos/internal/domain"

	"github.com/gin-gonic/gin"
)

type paymentStore interface {
	ListActive(ctx context.Context) ([]domain.PaymentType, error)
	GetByType(ctx context.Context, paymentType string) (*domain.PaymentType, error)
}

func listPaymentTypesHandler(store paymentStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		types, err := store.ListActive(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if types == nil {
			types = []domain.PaymentType{}
		}
		c.JSON(http.StatusOK, types)
	}
}

func getPaymentTypeHandler(store paymentStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		pt, err := store.GetByType(c.Request.Context(), c.Param("type"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, pt)
	}
}
