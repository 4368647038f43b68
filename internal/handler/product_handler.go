package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Gio27709/dental-market-backend/internal/middleware"
	"github.com/Gio27709/dental-market-backend/internal/model"
	"github.com/Gio27709/dental-market-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	svc      service.ProductService
	uploader service.ObjectUploader
	bucket   string
}

func NewProductHandler(svc service.ProductService, uploader service.ObjectUploader, bucket string) *ProductHandler {
	return &ProductHandler{svc: svc, uploader: uploader, bucket: bucket}
}

type variationRequest struct {
	AttributeName  string          `json:"attribute_name"`
	AttributeValue string          `json:"attribute_value"`
	Stock          int             `json:"stock"`
	PriceModifier  decimal.Decimal `json:"price_modifier"`
	SKU            string          `json:"sku"`
}

type createProductRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CategoryID  *uint64            `json:"category_id"`
	Price       decimal.Decimal    `json:"price"`
	Images      []string           `json:"images"`
	Variations  []variationRequest `json:"variations"`
}

type VariationResponse struct {
	ID             uint64          `json:"id"`
	AttributeName  string          `json:"attribute_name"`
	AttributeValue string          `json:"attribute_value"`
	Stock          int             `json:"stock"`
	PriceModifier  decimal.Decimal `json:"price_modifier"`
	SKU            string          `json:"sku,omitempty"`
}

type ProductResponse struct {
	ID               uint64              `json:"id"`
	StoreUID         string              `json:"store_uid"`
	Name             string              `json:"name"`
	Slug             string              `json:"slug"`
	Description      string              `json:"description,omitempty"`
	CategoryID       *uint64             `json:"category_id,omitempty"`
	Price            decimal.Decimal     `json:"price"`
	Images           []string            `json:"images,omitempty"`
	ModerationStatus string              `json:"moderation_status"`
	IsActive         bool                `json:"is_active"`
	Variations       []VariationResponse `json:"variations"`
	CreatedAt        string              `json:"created_at"`
}

func toProductResponse(p *model.Product) ProductResponse {
	variations := make([]VariationResponse, 0, len(p.Variations))
	for _, v := range p.Variations {
		variations = append(variations, VariationResponse{
			ID:             v.ID,
			AttributeName:  v.AttributeName,
			AttributeValue: v.AttributeValue,
			Stock:          v.Stock,
			PriceModifier:  v.PriceModifier,
			SKU:            v.SKU,
		})
	}
	return ProductResponse{
		ID:               p.ID,
		StoreUID:         p.StoreUID,
		Name:             p.Name,
		Slug:             p.Slug,
		Description:      p.Description,
		CategoryID:       p.CategoryID,
		Price:            p.Price,
		Images:           p.Images,
		ModerationStatus: string(p.ModerationStatus),
		IsActive:         p.IsActive,
		Variations:       variations,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
}

func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.svc.ListPublic(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch products"))
	}
	resp := make([]ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, toProductResponse(&products[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"count": len(resp),
		"data":  resp,
	})
}

func (h *ProductHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	products, err := h.svc.ListByStore(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch products"))
	}
	resp := make([]ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, toProductResponse(&products[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"count": len(resp),
		"data":  resp,
	})
}

func (h *ProductHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	variations := make([]service.VariationInput, 0, len(req.Variations))
	for _, v := range req.Variations {
		variations = append(variations, service.VariationInput{
			AttributeName:  v.AttributeName,
			AttributeValue: v.AttributeValue,
			Stock:          v.Stock,
			PriceModifier:  v.PriceModifier,
			SKU:            v.SKU,
		})
	}
	product, err := h.svc.Create(c.Request().Context(), uid, req.Name, req.Description, req.CategoryID, req.Price, req.Images, variations)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toProductResponse(product))
}

func (h *ProductHandler) Delete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	role, _ := c.Get("role").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	privileged := role == middleware.RoleAdmin || role == middleware.RoleOwner
	if err := h.svc.Delete(c.Request().Context(), id, uid, privileged); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "product not found"))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not authorized to modify this product"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete product"))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "product deactivated"})
}

type moderateProductRequest struct {
	Status string `json:"status"`
}

func (h *ProductHandler) Moderate(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	var req moderateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := h.svc.Moderate(c.Request().Context(), id, model.ModerationStatus(req.Status)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "product not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "moderation updated"})
}

var imageContentTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// UploadImage stores a product image in the public bucket and returns its
// download URL.
func (h *ProductHandler) UploadImage(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "image file required"))
	}
	contentType := fileHeader.Header.Get("Content-Type")
	ext, ok := imageContentTypes[contentType]
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid image type"))
	}
	if e := strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."); e != "" {
		ext = e
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to read upload"))
	}
	defer src.Close()

	objectPath := fmt.Sprintf("products/%s/%s.%s", uid, uuid.NewString(), ext)
	publicURL, err := h.uploader.Upload(c.Request().Context(), h.bucket, objectPath, contentType, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to upload image"))
	}
	return c.JSON(http.StatusOK, map[string]string{"url": publicURL})
}
