package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/Barrelito/pannben-75/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	dietSanitizer = bluemonday.UGCPolicy()
)

// renderMarkdown converts a diet description to sanitized HTML.
func renderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return ""
	}
	return dietSanitizer.Sanitize(buf.String())
}

// ListDietPlans returns the selectable diet plans.
func (a *API) ListDietPlans(c *gin.Context) {
	plans, err := a.diets.List(c.Query("tier"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load diet plans")
		return
	}

	items := make([]gin.H, 0, len(plans))
	for _, plan := range plans {
		items = append(items, gin.H{
			"id":   plan.ID,
			"name": plan.Name,
			"slug": plan.Slug,
			"tier": plan.Tier,
		})
	}
	c.JSON(http.StatusOK, gin.H{"diets": items})
}

// GetDietPlan returns one plan with its description rendered to HTML.
func (a *API) GetDietPlan(c *gin.Context) {
	plan, err := a.diets.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrDietPlanNotFound) {
			respondError(c, http.StatusNotFound, "diet plan not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load diet plan")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               plan.ID,
		"name":             plan.Name,
		"slug":             plan.Slug,
		"tier":             plan.Tier,
		"description":      plan.Description,
		"description_html": renderMarkdown(plan.Description),
	})
}
