package handler

import (
	"net/http"

	"github.com/eaglebank/banking/shared/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Accounts *AccountHandler
	Sessions *SessionHandler
	Auth     gin.HandlerFunc
	Logger   *zap.Logger
}

// NewRouter wires every route of the account service.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware(cfg.Logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/v1/sessions", cfg.Sessions.OpenSession)
	router.DELETE("/v1/sessions", cfg.Auth, cfg.Sessions.CloseSession)

	v1 := router.Group("/v1/accounts", cfg.Auth)
	{
		v1.GET("", cfg.Accounts.ListAccounts)
		v1.GET("/:accountType", cfg.Accounts.GetAccount)
		v1.POST("/:accountType/deposits", cfg.Accounts.Deposit)
		v1.POST("/:accountType/withdrawals", cfg.Accounts.Withdraw)
		v1.POST("/:accountType/interest", cfg.Accounts.ApplyInterest)
	}
	return router
}
