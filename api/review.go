package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quochao170402/cekspek/internal/catalog"
	"github.com/quochao170402/cekspek/internal/domain"
	"github.com/quochao170402/cekspek/middleware"
)

type ReviewHandler struct {
	svc *catalog.Service
}

func NewReviewHandler(svc *catalog.Service) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func RegisterAdminReviewRoutes(rg *gin.RouterGroup, svc *catalog.Service) {
	handler := NewReviewHandler(svc)

	rg.GET("", handler.AdminList)
	rg.DELETE("/:id", middleware.IDParamMiddleware("id"), handler.DeleteReview)
}

func (h *ReviewHandler) GetByPhone(c *gin.Context) {
	reviews, err := h.svc.ListReviews(c.Request.Context(), pathID(c, "id"))
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "", reviews)
}

func (h *ReviewHandler) Submit(c *gin.Context) {
	var request domain.ReviewInput
	if !bindJSON(c, &request) {
		return
	}

	review, err := h.svc.SubmitReview(c.Request.Context(), pathID(c, "id"), request)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Terima kasih atas review kamu!", review)
}

func (h *ReviewHandler) AdminList(c *gin.Context) {
	var filter *int
	if raw := c.Query("rating"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			handleError(c, &domain.ValidationError{Field: "rating", Message: "Rating harus antara 1 dan 5"})
			return
		}
		filter = &v
	}

	reviews, err := h.svc.AdminListReviews(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "", reviews)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.svc.DeleteReview(c.Request.Context(), pathID(c, "id")); err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "Review berhasil dihapus", nil)
}
