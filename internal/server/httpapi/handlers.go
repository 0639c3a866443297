package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type registerRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type loginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Success:   true,
		Message:   MsgServerRunning,
		Timestamp: h.now().UTC(),
	})
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil || req.Email == nil || req.Password == nil {
		fail(c, http.StatusBadRequest, MsgRegisterFieldsRequired)
		return
	}

	res, err := h.accounts.Register(c.Request.Context(), *req.Name, *req.Email, *req.Password)
	if err != nil {
		h.writeError(c, err, MsgEmailRegistered)
		return
	}

	ok(c, http.StatusCreated, MsgRegistered, authData{User: newUserView(res.User), Token: res.Token})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == nil || req.Password == nil {
		fail(c, http.StatusBadRequest, MsgLoginFieldsRequired)
		return
	}

	res, err := h.accounts.Login(c.Request.Context(), *req.Email, *req.Password)
	if err != nil {
		h.writeError(c, err, "")
		return
	}

	ok(c, http.StatusOK, MsgLoggedIn, authData{User: newUserView(res.User), Token: res.Token})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.accounts.Logout(c.Request.Context(), c.GetString(tokenKey)); err != nil {
		h.writeError(c, err, "")
		return
	}

	ok(c, http.StatusOK, MsgLoggedOut, nil)
}

func (h *Handler) verify(c *gin.Context) {
	user, err := h.accounts.VerifySession(c.Request.Context(), c.GetString(tokenKey))
	if err != nil {
		h.writeError(c, err, "")
		return
	}

	ok(c, http.StatusOK, MsgTokenValid, userData{User: newUserView(user)})
}

func (h *Handler) getProfile(c *gin.Context) {
	user, err := h.accounts.GetProfile(c.Request.Context(), c.GetString(tokenKey))
	if err != nil {
		h.writeError(c, err, "")
		return
	}

	ok(c, http.StatusOK, "", userData{User: newUserView(user)})
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	patch := models.ProfilePatch{Name: req.Name, Email: req.Email}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), c.GetString(tokenKey), patch)
	if err != nil {
		h.writeError(c, err, MsgEmailTaken)
		return
	}

	ok(c, http.StatusOK, MsgProfileUpdated, userData{User: newUserView(user)})
}

// writeError maps a service error to a status and a client-safe message.
// conflictMsg is the message used for common.ErrEmailTaken.
func (h *Handler) writeError(c *gin.Context, err error, conflictMsg string) {
	ctx := c.Request.Context()

	var inputErr *common.InputError
	switch {
	case errors.As(err, &inputErr):
		fail(c, http.StatusBadRequest, inputErr.Reason)
	case errors.Is(err, common.ErrEmailTaken):
		fail(c, http.StatusConflict, conflictMsg)
	case errors.Is(err, common.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, MsgInvalidCredentials)
	case errors.Is(err, common.ErrInvalidToken):
		h.logger.Info(ctx, "token rejected", "reason", err.Error(), "path", c.Request.URL.Path)
		fail(c, http.StatusUnauthorized, MsgInvalidToken)
	case errors.Is(err, common.ErrUserNotFound):
		fail(c, http.StatusNotFound, MsgUserNotFound)
	default:
		h.logger.Error(ctx, "request failed", "error", err, "path", c.Request.URL.Path)
		fail(c, http.StatusInternalServerError, MsgInternal)
	}
}
