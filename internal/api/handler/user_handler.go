package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/secure-api/internal/core/ports"
)

// UserHandler handles account endpoints. The admin-only and self-service
// routes share it; route registration decides which policy guards each.
type UserHandler struct {
	service  ports.UserService
	tokenTTL time.Duration
}

func NewUserHandler(service ports.UserService, tokenTTL time.Duration) *UserHandler {
	return &UserHandler{service: service, tokenTTL: tokenTTL}
}

// List handles GET /api/users (admin only).
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorDetails
// @Failure      403  {object}  errorDetails
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, resp)
}

// Me handles GET /api/users/me.
//
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorDetails
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMe handles PUT /api/users/me. When the email or password changed
// and a fresh token was minted, the session cookie is replaced in the same
// response; otherwise the existing cookie stands.
//
// @Summary      Update the authenticated user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateUserRequest  true  "Fields to update (blank fields are ignored)"
// @Success      200   {object}  updateSelfResponse
// @Failure      400   {object}  errorDetails
// @Failure      401   {object}  errorDetails
// @Router       /api/users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.UpdateSelf(c.Request().Context(), caller.ID, ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	if result.SessionRefreshed {
		c.SetCookie(sessionCookie(result.Token, h.tokenTTL))
	}
	return c.JSON(http.StatusOK, updateSelfResponse{
		User:             toUserResponse(result.User),
		SessionRefreshed: result.SessionRefreshed,
	})
}

// DeleteMe handles DELETE /api/users/me: removes the account and its
// products, then expires the session cookie.
//
// @Summary      Delete the authenticated user's account
// @Tags         users
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorDetails
// @Router       /api/users/me [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteSelf(c.Request().Context(), caller.ID); err != nil {
		return err
	}

	c.SetCookie(expiredSessionCookie())
	return c.JSON(http.StatusOK, messageResponse{Message: "account deleted"})
}

// AdminUpdate handles PUT /api/users/:id (admin only).
//
// @Summary      Update any user, optionally changing their role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "User id"
// @Param        body  body      adminUpdateUserRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      403   {object}  errorDetails
// @Failure      404   {object}  errorDetails
// @Router       /api/users/{id} [put]
func (h *UserHandler) AdminUpdate(c echo.Context) error {
	var req adminUpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.AdminUpdate(c.Request().Context(), c.Param("id"), ports.AdminUpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// AdminDelete handles DELETE /api/users/:id (admin only).
//
// @Summary      Delete any user and the products they own
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorDetails
// @Failure      404  {object}  errorDetails
// @Router       /api/users/{id} [delete]
func (h *UserHandler) AdminDelete(c echo.Context) error {
	if err := h.service.AdminDelete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}
