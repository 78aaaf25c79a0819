package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quochao170402/cekspek/internal/catalog"
)

type BrowseHandler struct {
	svc *catalog.Service
}

func RegisterBrowseRoutes(rg *gin.RouterGroup, svc *catalog.Service) {
	handler := &BrowseHandler{svc: svc}

	rg.GET("/search", handler.Search)
	rg.GET("/compare", handler.Compare)
}

func (h *BrowseHandler) Search(c *gin.Context) {
	results, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "", results)
}

// Compare accepts ids=1,2,3 or slugs=a,b.
func (h *BrowseHandler) Compare(c *gin.Context) {
	if slugs := c.Query("slugs"); slugs != "" {
		var list []string
		for _, s := range strings.Split(slugs, ",") {
			if s = strings.TrimSpace(s); s != "" {
				list = append(list, s)
			}
		}
		table, err := h.svc.CompareBySlugs(c.Request.Context(), list)
		if err != nil {
			handleError(c, err)
			return
		}
		ok(c, http.StatusOK, "", table)
		return
	}

	ids, err := splitIDs(c.Query("ids"))
	if err != nil {
		handleError(c, err)
		return
	}
	table, err := h.svc.Compare(c.Request.Context(), ids)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "", table)
}
