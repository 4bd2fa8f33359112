package httpserver

import (
	"log/slog"
	"time"

	"shoppos/internal/relay"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries everything the routes need.
type Deps struct {
	Products    productService
	Sales       saleService
	Payments    paymentStore
	Hub         *relay.Hub
	Metrics     *prometheus.Registry
	CORSOrigins []string
}

// buildRouter wires routes for the API and the cart relay.
func buildRouter(logger *slog.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	if deps.Hub != nil {
		router.GET("/ws", relay.Handler(deps.Hub, logger))
	}

	router.GET("/products", listProductsHandler(deps.Products))
	router.GET("/products/:id", getProductHandler(deps.Products))

	router.POST("/sales", createSaleHandler(deps.Sales))
	router.GET("/sales", listSalesHandler(deps.Sales))
	router.GET("/sales/:id", getSaleHandler(deps.Sales))

	router.GET("/payment/types", listPaymentTypesHandler(deps.Payments))
	router.GET("/payment/types/:type", getPaymentTypeHandler(deps.Payments))

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
