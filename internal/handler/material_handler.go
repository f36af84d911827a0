package handler

import (
	"net/http"

	"clothesmanager/internal/usecase"

	"github.com/labstack/echo/v4"
)

type MaterialCreateRequest struct {
	Text     string `json:"text"`
	Quantity int    `json:"quantity"`
	SizeID   int64  `json:"size_id"`
	StoreID  int64  `json:"store_id"`
}

type MaterialEditRequest struct {
	Text     string `json:"text"`
	Quantity int    `json:"quantity"`
	SizeID   int64  `json:"size_id"`
}

type MaterialDistributeRequest struct {
	MaterialID      int64 `json:"material_id"`
	ReceiverStoreID int64 `json:"receiver_store_id"`
	Quantity        int   `json:"quantity"`
}

type MaterialHandler struct {
	uc *usecase.MaterialUsecase
}

// DI
func NewMaterialHandler(uc *usecase.MaterialUsecase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

func (h *MaterialHandler) Register(g *echo.Group) {
	g.POST("/materials", h.create)
	g.GET("/materials", h.findAll)
	g.GET("/materials/paginated", h.listPaginated)
	g.GET("/materials/:id", h.findByID)
	g.PUT("/materials/:id", h.edit)
	g.DELETE("/materials/:id", h.delete)
	g.GET("/stores/:store_id/materials", h.findByStore)
	g.POST("/materials/distribute", h.distribute)
}

func (h *MaterialHandler) create(c echo.Context) error {
	var req MaterialCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.uc.Save(c.Request().Context(), usecase.SaveMaterialInput{
		Text:     req.Text,
		Quantity: req.Quantity,
		SizeID:   req.SizeID,
		StoreID:  req.StoreID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *MaterialHandler) edit(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_ID"})
	}

	var req MaterialEditRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	out, err := h.uc.Edit(c.Request().Context(), id, usecase.EditMaterialInput{
		Text:     req.Text,
		Quantity: req.Quantity,
		SizeID:   req.SizeID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MaterialHandler) delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_ID"})
	}

	actor, ok := getActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
	}

	if err := h.uc.Delete(c.Request().Context(), actor, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *MaterialHandler) findByID(c echo.Context) error {
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

func (h *MaterialHandler) findByStore(c echo.Context) error {
	storeID, ok := parseIDParam(c, "store_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_ID"})
	}

	actor, ok := getActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
	}

	outs, err := h.uc.FindByStoreID(c.Request().Context(), actor, storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

func (h *MaterialHandler) findAll(c echo.Context) error {
	actor, ok := getActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
	}

	outs, err := h.uc.FindAll(c.Request().Context(), actor, usecase.FindMaterialsInput{
		StoreID: queryInt64Ptr(c, "store_id"),
		Text:    c.QueryParam("text"),
		SizeID:  queryInt64Ptr(c, "size_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

func (h *MaterialHandler) listPaginated(c echo.Context) error {
	actor, ok := getActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
	}

	out, err := h.uc.ListPaginated(c.Request().Context(), actor, usecase.ListMaterialsInput{
		Page:    queryInt(c, "page", 1),
		Limit:   queryInt(c, "limit", 20),
		StoreID: queryInt64Ptr(c, "store_id"),
		Text:    c.QueryParam("text"),
		SizeID:  queryInt64Ptr(c, "size_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MaterialHandler) distribute(c echo.Context) error {
	var req MaterialDistributeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY"})
	}

	actor, ok := getActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
	}

	out, err := h.uc.Distribute(c.Request().Context(), actor, usecase.DistributeMaterialInput{
		MaterialID:      req.MaterialID,
		ReceiverStoreID: req.ReceiverStoreID,
		Quantity:        req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
