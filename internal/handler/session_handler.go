package handler

import (
	"net/http"

	"github.com/eaglebank/banking/shared/cqrs"
	"github.com/eaglebank/banking/shared/middleware"
	"github.com/eaglebank/banking/shared/models"
	"github.com/gin-gonic/gin"
)

type SessionCommander interface {
	OpenSession(cqrs.OpenSessionCommand) (*models.SessionView, error)
	CloseSession(cqrs.CloseSessionCommand) error
}

type TokenIssuer interface {
	Issue(sessionID string) (string, error)
}

// SessionHandler opens and closes sessions. Opening hands back the bearer
// token that addresses the session's accounts.
type SessionHandler struct {
	commands SessionCommander
	tokens   TokenIssuer
}

type OpenSessionResponse struct {
	Session   *models.SessionView `json:"session"`
	Token     string              `json:"token"`
	TokenType string              `json:"tokenType"`
}

func NewSessionHandler(commands SessionCommander, tokens TokenIssuer) *SessionHandler {
	return &SessionHandler{commands: commands, tokens: tokens}
}

func (h *SessionHandler) OpenSession(c *gin.Context) {
	view, err := h.commands.OpenSession(cqrs.OpenSessionCommand{})
	if err != nil {
		_ = c.Error(err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to open session")
		return
	}
	token, err := h.tokens.Issue(view.ID)
	if err != nil {
		// a session nobody can address is useless
		_ = h.commands.CloseSession(cqrs.CloseSessionCommand{SessionID: view.ID})
		_ = c.Error(err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to open session")
		return
	}
	c.JSON(http.StatusCreated, OpenSessionResponse{Session: view, Token: token, TokenType: "Bearer"})
}

func (h *SessionHandler) CloseSession(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)

	if err := h.commands.CloseSession(cqrs.CloseSessionCommand{SessionID: sessionID}); err != nil {
		respondWithDomainError(c, err, "Failed to close session")
		return
	}
	c.Status(http.StatusNoContent)
}
