package handler

import (
	"net/http"
	"time"

	"clothesmanager/internal/domain/model"
	"clothesmanager/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderCreateRequest struct {
	MaterialID  int64  `json:"material_id"`
	Quantity    int    `json:"quantity"`
	DateOfOrder string `json:"date_of_order"` // RFC3339、省略可
	Status      string `json:"status"`        // 省略時PENDING
}

type OrderUpdateRequest struct {
	Quantity    int    `json:"quantity"`
	Status      string `json:"status"`
	DateOfOrder string `json:"date_of_order"`
}

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) Register(g *echo.Group) {
	g.POST("/orders", h.place)
	g.GET("/orders", h.list)
	g.GET("/orders/paginated", h.listPaginated)
	g.GET("/orders/:id", h.findByID)
	g.PUT("/orders/:id", h.update)
	g.DELETE("/orders/:id", h.delete)
}

func parseOrderDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// 日付だけの形式も受ける
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, false
		}
	}
	return t, true
}

func (h *OrderHandler) place(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	actor, ok := getActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
	}

	date, ok := parseOrderDate(req.DateOfOrder)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_DATE"})
	}

	out, err := h.uc.Place(c.Request().Context(), actor, usecase.PlaceOrderInput{
		MaterialID:  req.MaterialID,
		Quantity:    req.Quantity,
		DateOfOrder: date,
		Status:      model.OrderStatus(req.Status),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_ID"})
	}

	var req OrderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	date, ok := parseOrderDate(req.DateOfOrder)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_DATE"})
	}

	out, err := h.uc.Update(c.Request().Context(), id, usecase.UpdateOrderInput{
		Quantity:    req.Quantity,
		Status:      model.OrderStatus(req.Status),
		DateOfOrder: date,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_ID"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *OrderHandler) findByID(c echo.Context) error {
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

func (h *OrderHandler) list(c echo.Context) error {
	actor, ok := getActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
	}

	outs, err := h.uc.ListForActor(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

func (h *OrderHandler) listPaginated(c echo.Context) error {
	actor, ok := getActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
	}

	out, err := h.uc.ListPaginated(c.Request().Context(), actor, usecase.ListOrdersInput{
		Page:         queryInt(c, "page", 1),
		Limit:        queryInt(c, "limit", 20),
		StoreID:      queryInt64Ptr(c, "store_id"),
		MaterialText: c.QueryParam("material_text"),
		SizeName:     c.QueryParam("size_name"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
