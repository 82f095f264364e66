package rest

import (
	"context"
	"net/http"
	"plantnet/domain"
	"plantnet/pkg/logger"
	"plantnet/pkg/metrics"
	jsonres "plantnet/pkg/response"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	UpsertUser(ctx context.Context, email string, profile domain.User) (domain.User, bool, error)
	GetUserRole(ctx context.Context, email string) (string, error)
	GetAllUsers(ctx context.Context, actorEmail string) ([]domain.User, error)
	RequestSellerStatus(ctx context.Context, email string) (domain.User, error)
	SetUserRole(ctx context.Context, actorEmail, targetEmail, role string) (domain.User, error)
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type UpsertUserRequest struct {
	FullName string `json:"full_name"`
	Image    string `json:"image,omitempty"`
}

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=Customer Seller Admin"`
}

// UpsertUser saves a user on first login; repeated calls return the stored
// record unchanged.
func (h *UserHandler) UpsertUser(c echo.Context) error {
	email := c.Param("email")

	var req UpsertUserRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, created, err := h.userService.UpsertUser(ctx, email, domain.User{
		FullName: req.FullName,
		Image:    req.Image,
	})
	if err != nil {
		logger.Error("Failed to upsert user", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		metrics.UsersRegistered.Inc()
	}

	return c.JSON(status, user)
}

// GetUserRole reports the stored role, or empty when the email is unknown.
func (h *UserHandler) GetUserRole(c echo.Context) error {
	email := c.Param("email")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	role, err := h.userService.GetUserRole(ctx, email)
	if err != nil {
		logger.Error("Failed to get user role", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"role": role,
	})
}

// GetAllUsers handles the admin account dashboard.
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	actorEmail := c.Get("email").(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, err := h.userService.GetAllUsers(ctx, actorEmail)
	if err != nil {
		logger.Error("Failed to get all users", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, jsonres.Success("Users retrieved successfully", users))
}

// RequestSellerStatus files a seller application for the calling account.
func (h *UserHandler) RequestSellerStatus(c echo.Context) error {
	email := c.Param("email")
	actorEmail := c.Get("email").(string)

	if email != actorEmail {
		return c.JSON(http.StatusForbidden, ResponseError{Message: "you can only request seller status for your own account"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.RequestSellerStatus(ctx, email)
	if err != nil {
		logger.Error("Failed to request seller status", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, jsonres.Success("Seller status requested", user))
}

// SetUserRole is the admin approval endpoint.
func (h *UserHandler) SetUserRole(c echo.Context) error {
	targetEmail := c.Param("email")
	actorEmail := c.Get("email").(string)

	var req SetRoleRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate role request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.SetUserRole(ctx, actorEmail, targetEmail, req.Role)
	if err != nil {
		logger.Error("Failed to set user role", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, jsonres.Success("User role updated", user))
}
