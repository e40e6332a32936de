// Package api exposes the ledger over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"go-ledger/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AccountsOperations is the part of the accounts service the handlers use.
type AccountsOperations interface {
	Create(ctx context.Context, id string) (models.AccountResult, error)
	GetBalance(ctx context.Context, id string) (models.AccountResult, error)
	GetStatement(ctx context.Context, id string) (models.AccountResult, error)
	DepositCash(ctx context.Context, id string, amount decimal.Decimal) (models.AccountResult, error)
	WithdrawCash(ctx context.Context, id string, amount decimal.Decimal) (models.AccountResult, error)
}

// TransfersOperations is the part of the transfers service the handlers use.
type TransfersOperations interface {
	Create(ctx context.Context, id, from, to string, amount decimal.Decimal) (models.TransferResult, error)
	Status(ctx context.Context, id string) (models.TransferResult, error)
}

// Options configures the router.
type Options struct {
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// NewRouter registers every ledger route on a fresh gin engine.
func NewRouter(accounts AccountsOperations, transfers TransfersOperations, logger *zap.Logger, opts Options) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 5 * time.Second
	}

	h := &handler{
		accounts:  accounts,
		transfers: transfers,
		logger:    logger.Named("api"),
		timeout:   opts.RequestTimeout,
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
			MaxAge:       12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/account", h.createAccount)
	r.GET("/account/:id", h.getBalance)
	r.PUT("/account/:id/deposit", h.deposit)
	r.PUT("/account/:id/withdraw", h.withdraw)
	r.GET("/account/:id/statement", h.getStatement)

	r.POST("/transfer", h.createTransfer)
	r.GET("/transfer/:id", h.getTransferStatus)

	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("request failed", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}
