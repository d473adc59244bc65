package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/models"
	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/services"
)

// CertificateHandler serves the certificate HTTP routes.
type CertificateHandler struct {
	certificateService *services.CertificateService
}

// NewCertificateHandler creates a new CertificateHandler.
func NewCertificateHandler(certificateService *services.CertificateService) *CertificateHandler {
	return &CertificateHandler{
		certificateService: certificateService,
	}
}

// GenerateCertificate handles POST /api/certificates/generate
func (h *CertificateHandler) GenerateCertificate(c *gin.Context) {
	var req models.GenerateCertificateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := h.certificateService.Issue(c.Request.Context(), req.ActivityRecord())
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Invalid activity record",
				"fields": validationErr.Fields,
			})
			return
		}

		if result != nil && result.Status == models.IssuanceStatusFailed {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "Ledger write failed, please retry",
				"details": err.Error(),
				"result":  result,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to issue certificate",
			"details": err.Error(),
		})
		return
	}

	if result.Status == models.IssuanceStatusRejected {
		// Not eligible is an expected outcome; the breakdown lets the UI
		// show remaining requirements.
		c.JSON(http.StatusOK, result)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// PreviewEligibility handles POST /api/certificates/preview
func (h *CertificateHandler) PreviewEligibility(c *gin.Context) {
	var req models.GenerateCertificateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	preview, err := h.certificateService.Preview(req.ActivityRecord())
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Invalid activity record",
				"fields": validationErr.Fields,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to compute preview",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, preview)
}

// ListUserCertificates handles GET /api/certificates/user/{userId}
func (h *CertificateHandler) ListUserCertificates(c *gin.Context) {
	userID := c.Param("userId")

	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "userId is required",
		})
		return
	}

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = 1
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 10
	}

	certificates, err := h.certificateService.ListByVolunteer(c.Request.Context(), userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list certificates",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"certificates": certificates,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": len(certificates),
		},
	})
}

// VerifyCertificate handles GET /api/certificates/verify/{certificateId}.
// Public and unauthenticated; an unknown ID is a neutral "could not verify"
// response, not an error.
func (h *CertificateHandler) VerifyCertificate(c *gin.Context) {
	certificateID := c.Param("certificateId")

	if certificateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "certificateId is required",
		})
		return
	}

	result, err := h.certificateService.Verify(c.Request.Context(), certificateID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to verify certificate",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// DownloadCertificate handles GET /api/certificates/{certificateId}/download.
// PDF rendering happens downstream; this streams the certificate record as
// an attachment.
func (h *CertificateHandler) DownloadCertificate(c *gin.Context) {
	certificateID := c.Param("certificateId")

	if certificateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "certificateId is required",
		})
		return
	}

	cert, err := h.certificateService.Download(c.Request.Context(), certificateID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to download certificate",
			"details": err.Error(),
		})
		return
	}

	if cert == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Certificate not found",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", cert.CertificateID))
	c.JSON(http.StatusOK, cert)
}
