package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/citypulse/report-system/internal/core/domain"
	"github.com/citypulse/report-system/internal/core/ports"
)

// UserHandler handles admin account management endpoints.
type UserHandler struct {
	userService ports.UserService
	authService ports.AuthService
}

func NewUserHandler(userService ports.UserService, authService ports.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

// List handles GET /api/users.
//
// @Summary      List all accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   accountResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	accounts, err := h.userService.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponses(accounts))
}

// Get handles GET /api/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	account, err := h.userService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// Update handles PUT /api/users/:id. An empty password keeps the current one.
//
// @Summary      Update an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Account id"
// @Param        body  body      registerRequest  true  "New account details"
// @Success      200   {object}  accountResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.UpdateAccount(c.Request().Context(), c.Param("id"), ports.RegisterInput{
		Username: req.Username,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		StreetID: req.StreetID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(result))
}

// Delete handles DELETE /api/users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ByStreet handles GET /api/users/street/:streetId.
func (h *UserHandler) ByStreet(c echo.Context) error {
	accounts, err := h.userService.GetByStreet(c.Request().Context(), c.Param("streetId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponses(accounts))
}

// ByDistrict handles GET /api/users/district/:districtId.
func (h *UserHandler) ByDistrict(c echo.Context) error {
	accounts, err := h.userService.GetByDistrict(c.Request().Context(), c.Param("districtId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponses(accounts))
}

type updateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Phone    string `json:"phone" validate:"required,len=10,numeric"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"required,oneof=CITIZEN ADMIN"`
	StreetID string `json:"street_id" validate:"required"`
}

func toAccountResponses(accounts []ports.AccountResult) []accountResponse {
	out := make([]accountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, toAccountResponse(&accounts[i]))
	}
	return out
}
