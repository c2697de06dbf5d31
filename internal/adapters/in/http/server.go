// Package http serves the operational surface of the service: health,
// Prometheus metrics and read-only order lookups for operators.
package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const defaultOpenOrdersLimit = 50

type (
	// Pinger reports whether the database is reachable.
	Pinger interface {
		PingContext(ctx context.Context) error
	}

	OpenOrdersReader interface {
		Handle(ctx context.Context, query queries.GetOpenOrdersQuery) ([]queries.GetOpenOrdersQueryResponse, error)
	}

	OrderSummaryReader interface {
		Handle(ctx context.Context, query queries.GetOrderSummaryQuery) (queries.GetOrderSummaryQueryResponse, error)
	}
)

// Server holds the handlers behind the echo routes.
type Server struct {
	db           Pinger
	openOrders   OpenOrdersReader
	orderSummary OrderSummaryReader
	collector    *metrics.Collector
	logger       *zap.Logger
}

func NewServer(
	db Pinger,
	openOrders OpenOrdersReader,
	orderSummary OrderSummaryReader,
	collector *metrics.Collector,
	logger *zap.Logger,
) *Server {
	return &Server{
		db:           db,
		openOrders:   openOrders,
		orderSummary: orderSummary,
		collector:    collector,
		logger:       logger.Named("http"),
	}
}

// Echo builds the router. Echo's own logger only reports warnings and
// above; requests are logged through zap.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug("HTTP request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.collector.Registry(), promhttp.HandlerOpts{})))
	e.GET("/orders/open", s.GetOpenOrders)
	e.GET("/orders/:id/summary", s.GetOrderSummary)

	return e
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("Database ping failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, errorResponse{
			Code:    string(errs.CodeInternal),
			Message: "database unavailable",
		})
	}
	return c.String(http.StatusOK, "Healthy")
}

// GetOpenOrders handles GET /orders/open?limit=N.
func (s *Server) GetOpenOrders(c echo.Context) error {
	limit := defaultOpenOrdersLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("limit", err))
		}
		limit = parsed
	}

	query, err := queries.NewGetOpenOrdersQuery(limit)
	if err != nil {
		return s.fail(c, err)
	}

	orders, err := s.openOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]openOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = openOrderResponse{
			ID:         o.ID.String(),
			Number:     o.Number,
			State:      o.State.String(),
			GrandTotal: newMoneyResponse(o.GrandTotal),
			CreatedAt:  o.CreatedAt,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// GetOrderSummary handles GET /orders/:id/summary.
func (s *Server) GetOrderSummary(c echo.Context) error {
	orderID, err := kernel.ParseUUID(c.Param("id"))
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("order id", err))
	}

	query, err := queries.NewGetOrderSummaryQuery(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	summary, err := s.orderSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newOrderSummaryResponse(summary))
}

func (s *Server) fail(c echo.Context, err error) error {
	code := errs.CodeOf(err)

	status := http.StatusInternalServerError
	message := "internal error"
	switch code {
	case errs.CodeValidation:
		status, message = http.StatusBadRequest, err.Error()
	case errs.CodeNotFound:
		status, message = http.StatusNotFound, err.Error()
	case errs.CodeConflict:
		status, message = http.StatusConflict, err.Error()
	default:
		s.logger.Error("Request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.JSON(status, errorResponse{Code: string(code), Message: message})
}
