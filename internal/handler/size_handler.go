package handler

import (
	"net/http"

	"clothesmanager/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SizeRequest struct {
	Name string `json:"name"`
}

type SizeHandler struct {
	uc *usecase.SizeUsecase
}

// DI
func NewSizeHandler(uc *usecase.SizeUsecase) *SizeHandler {
	return &SizeHandler{uc: uc}
}

// 書き込み系。SUPER_ADMIN用のグループに載せる。
func (h *SizeHandler) RegisterAdmin(g *echo.Group) {
	g.POST("/sizes", h.create)
}

// 参照系。
func (h *SizeHandler) RegisterRead(g *echo.Group) {
	g.GET("/sizes", h.list)
	g.GET("/sizes/:id", h.findByID)
}

func (h *SizeHandler) create(c echo.Context) error {
	var req SizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.uc.Save(c.Request().Context(), req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *SizeHandler) list(c echo.Context) error {
	outs, err := h.uc.FindAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

func (h *SizeHandler) findByID(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_ID"})
	}

	out, err := h.uc.FindByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
