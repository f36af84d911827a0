package handler

import (
	"net/http"

	auth "clothesmanager/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type SetupRequest struct {
	StoreTitle   string `json:"store_title"`
	StoreAddress string `json:"store_address"`
	Username     string `json:"username"`
	Password     string `json:"password"`
}

type AuthHandler struct {
	login          *auth.LoginUsecase
	changePassword *auth.ChangePasswordUsecase
	setup          *auth.SetupUsecase
}

// DI
func NewAuthHandler(
	login *auth.LoginUsecase,
	changePassword *auth.ChangePasswordUsecase,
	setup *auth.SetupUsecase,
) *AuthHandler {
	return &AuthHandler{login: login, changePassword: changePassword, setup: setup}
}

// 認証不要のルート
func (h *AuthHandler) RegisterPublic(g *echo.Group) {
	g.POST("/login", h.doLogin)
	g.POST("/setup", h.doSetup)
}

// 認証必須のルート
func (h *AuthHandler) RegisterProtected(g *echo.Group) {
	g.POST("/change-password", h.doChangePassword)
}

func (h *AuthHandler) doLogin(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.login.Execute(c.Request().Context(), auth.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) doSetup(c echo.Context) error {
	var req SetupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.setup.Execute(c.Request().Context(), auth.SetupInput{
		StoreTitle:   req.StoreTitle,
		StoreAddress: req.StoreAddress,
		Username:     req.Username,
		Password:     req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) doChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	actor, ok := getActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
	}

	if err := h.changePassword.Execute(c.Request().Context(), actor, auth.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "password changed"})
}
