package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"github.com/Gio27709/dental-market-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ProfessionalHandler struct {
	svc service.ProfessionalService
}

func NewProfessionalHandler(svc service.ProfessionalService) *ProfessionalHandler {
	return &ProfessionalHandler{svc: svc}
}

func (h *ProfessionalHandler) UploadLicense(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "please upload a document"))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to read upload"))
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.svc.UploadLicense(c.Request().Context(), uid, fileHeader.Filename, contentType, fileHeader.Size, src); err != nil {
		switch {
		case errors.Is(err, service.ErrLicenseType), errors.Is(err, service.ErrLicenseTooLarge):
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to store license"))
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "license uploaded, awaiting administrative review",
	})
}

type ProfessionalStatusResponse struct {
	UID                string  `json:"uid"`
	IsVerified         bool    `json:"is_verified"`
	HasLicense         bool    `json:"has_license"`
	LicenseReviewedAt  *string `json:"license_reviewed_at,omitempty"`
	LicenseReviewNotes *string `json:"license_review_notes,omitempty"`
}

func toProfessionalStatusResponse(p *model.ProfessionalProfile) ProfessionalStatusResponse {
	var reviewedAt *string
	if p.LicenseReviewedAt != nil {
		val := p.LicenseReviewedAt.Format(time.RFC3339)
		reviewedAt = &val
	}
	return ProfessionalStatusResponse{
		UID:                p.UID,
		IsVerified:         p.IsVerified,
		HasLicense:         p.LicensePath != nil,
		LicenseReviewedAt:  reviewedAt,
		LicenseReviewNotes: p.LicenseReviewNotes,
	}
}

func (h *ProfessionalHandler) GetStatus(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	profile, err := h.svc.Status(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch status"))
	}
	return c.JSON(http.StatusOK, toProfessionalStatusResponse(profile))
}

func (h *ProfessionalHandler) ListPending(c echo.Context) error {
	profiles, err := h.svc.ListPending(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch pending licenses"))
	}
	resp := make([]ProfessionalStatusResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, toProfessionalStatusResponse(&profiles[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"count": len(resp),
		"data":  resp,
	})
}

type verifyLicenseRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

func (h *ProfessionalHandler) Verify(c echo.Context) error {
	uid := c.Param("id")
	var req verifyLicenseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := h.svc.Verify(c.Request().Context(), uid, req.Approve, req.Notes); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "professional profile not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update verification"))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "verification updated"})
}
