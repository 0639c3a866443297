package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

const (
	MsgRegisterFieldsRequired = "Name, email, and password are required"
	MsgLoginFieldsRequired    = "Email and password are required"
	MsgInvalidBody            = "Invalid request body"
	MsgEmailRegistered        = "Email address is already registered"
	MsgEmailTaken             = "Email address is already taken"
	MsgInvalidCredentials     = "Invalid email or password"
	MsgMissingToken           = "Missing authorization token"
	MsgInvalidToken           = "Invalid or expired token"
	MsgUserNotFound           = "User not found"
	MsgEndpointNotFound       = "Endpoint not found"
	MsgInternal               = "Internal server error"

	MsgServerRunning  = "Server is running"
	MsgRegistered     = "Registration successful"
	MsgLoggedIn       = "Login successful"
	MsgLoggedOut      = "Successfully logged out"
	MsgTokenValid     = "Token is valid"
	MsgProfileUpdated = "Profile updated successfully"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type healthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// UserView is the public JSON form of a user. The password hash is never
// serialized.
type UserView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newUserView(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

type userData struct {
	User UserView `json:"user"`
}

type authData struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Message: message})
}
