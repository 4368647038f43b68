package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Gio27709/dental-market-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type FavoriteHandler struct {
	svc service.FavoriteService
}

func NewFavoriteHandler(svc service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: svc}
}

type FavoriteResponse struct {
	ID        uint64           `json:"id"`
	ProductID uint64           `json:"product_id"`
	Product   *ProductResponse `json:"product,omitempty"`
	CreatedAt string           `json:"created_at"`
}

func (h *FavoriteHandler) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	favorites, err := h.svc.List(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch favorites"))
	}
	resp := make([]FavoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		fr := FavoriteResponse{
			ID:        f.ID,
			ProductID: f.ProductID,
			CreatedAt: f.CreatedAt.Format(time.RFC3339),
		}
		if f.Product != nil {
			pr := toProductResponse(f.Product)
			fr.Product = &pr
		}
		resp = append(resp, fr)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"count": len(resp),
		"data":  resp,
	})
}

func (h *FavoriteHandler) Check(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	isFavorite, err := h.svc.Check(c.Request().Context(), uid, productID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to check favorite"))
	}
	return c.JSON(http.StatusOK, map[string]bool{"is_favorite": isFavorite})
}

func (h *FavoriteHandler) Add(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	fav, err := h.svc.Add(c.Request().Context(), uid, productID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "product not found"))
		case errors.Is(err, service.ErrAlreadyFavorite):
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "product is already in favorites"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to add favorite"))
	}
	return c.JSON(http.StatusCreated, FavoriteResponse{
		ID:        fav.ID,
		ProductID: fav.ProductID,
		CreatedAt: fav.CreatedAt.Format(time.RFC3339),
	})
}

func (h *FavoriteHandler) Remove(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	if err := h.svc.Remove(c.Request().Context(), uid, productID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "favorite not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to remove favorite"))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "favorite removed"})
}
