package contributor

import (
	"net/http"

	"github.com/SankarGaneshb/Virtuoso/pkg/db/pagination"
	"github.com/SankarGaneshb/Virtuoso/services/account"
	"github.com/SankarGaneshb/Virtuoso/services/source"
	syncsvc "github.com/SankarGaneshb/Virtuoso/services/sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// Handler is the thin HTTP framing over the contributor and account
// services. All aggregation logic lives below it.
type Handler struct {
	contributors *Service
	accounts     *account.Service
	registry     *source.Registry
	cache        *syncsvc.Engine
}

type HandlerParams struct {
	fx.In
	Contributors *Service
	Accounts     *account.Service
	Registry     *source.Registry
	Cache        *syncsvc.Engine
}

func NewHandler(p HandlerParams) *Handler {
	return &Handler{
		contributors: p.Contributors,
		accounts:     p.Accounts,
		registry:     p.Registry,
		cache:        p.Cache,
	}
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	api.GET("/sources", h.ListSources)
	api.POST("/user/:id/link", h.LinkAccount)
	api.GET("/contributor/:id", h.GetContributor)
	api.GET("/contributor/:id/contributions", h.ListCachedContributions)
	api.POST("/contributor/:id/contributions", h.SubmitContribution)
}

func (h *Handler) GetContributor(c *gin.Context) {
	view, err := h.contributors.GetContributorView(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type linkAccountRequest struct {
	Platform         string `json:"platform" binding:"required"`
	PlatformUserID   string `json:"platform_user_id"`
	PlatformUsername string `json:"platform_username"`
}

func (h *Handler) LinkAccount(c *gin.Context) {
	var req linkAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.accounts.LinkAccount(c.Request.Context(),
		c.Param("id"), req.Platform, req.PlatformUserID, req.PlatformUsername)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, link)
}

type submitContributionRequest struct {
	Title       string `json:"title" binding:"required"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *Handler) SubmitContribution(c *gin.Context) {
	var req submitContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	manual, err := h.accounts.SubmitManual(c.Request.Context(),
		c.Param("id"), req.Title, req.URL, req.Description, req.Category)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, manual)
}

// ListCachedContributions serves the durable timeline written by the sync
// engine, without touching any upstream platform.
func (h *Handler) ListCachedContributions(c *gin.Context) {
	var p pagination.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, info, err := h.cache.ListCached(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      rows,
		"page_info": info,
	})
}

type sourceInfo struct {
	Platform       string `json:"platform"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	IdentifierKind string `json:"identifier_kind"`
}

func (h *Handler) ListSources(c *gin.Context) {
	sources := h.registry.List()
	out := make([]sourceInfo, 0, len(sources))
	for _, s := range sources {
		out = append(out, sourceInfo{
			Platform:       s.PlatformKey(),
			Name:           s.DisplayName(),
			Description:    s.Description(),
			IdentifierKind: string(s.IdentifierKind()),
		})
	}
	c.JSON(http.StatusOK, out)
}
