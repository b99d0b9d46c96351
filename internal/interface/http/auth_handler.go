package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todo-api/internal/application"
	"todo-api/pkg/helpers"
	"todo-api/pkg/response"
	"todo-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// credentialsRequest is shared by signup and login. Presence checks are done
// by hand because the field-level messages accumulate instead of
// short-circuiting.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func bindDetails(err error) response.FieldErrors {
	out := response.FieldErrors{}
	for k, v := range validation.ToDetails(err) {
		out[k] = v
	}
	return out
}

// missingFields names every absent credential field, or nil when both are
// present.
func missingFields(req credentialsRequest) response.FieldErrors {
	errs := response.FieldErrors{}
	if req.Email == "" {
		errs["email"] = "Email is required"
	}
	if req.Password == "" {
		errs["password"] = "Password is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, bindDetails(err))
		return
	}

	if errs := missingFields(req); errs != nil {
		response.Validation(c, errs)
		return
	}
	if !validation.ValidEmail(req.Email) {
		response.Validation(c, response.FieldErrors{"email": "Invalid email address"})
		return
	}
	if pwErrs := validation.PasswordErrors(req.Password); len(pwErrs) > 0 {
		response.Validation(c, response.FieldErrors{"password": pwErrs})
		return
	}

	u, err := h.Svc.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Conflict(c, "Registration failed", response.FieldErrors{
				"email": "An account with this email already exists",
			})
			return
		}
		helpers.LogError(h.Logger, "signup failed", err, nil)
		response.ServerError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    gin.H{"id": u.ID, "email": u.Email},
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, bindDetails(err))
		return
	}

	if errs := missingFields(req); errs != nil {
		response.Validation(c, errs)
		return
	}
	if !validation.ValidEmail(req.Email) {
		response.Validation(c, response.FieldErrors{"email": "Invalid email address"})
		return
	}

	u, token, _, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid email or password")
			return
		}
		helpers.LogError(h.Logger, "login failed", err, nil)
		response.ServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    gin.H{"id": u.ID, "email": u.Email},
	})
}
