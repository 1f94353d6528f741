package handlers

import (
	"net/http"

	"monastery360/models"
	"monastery360/services/catalog"
	"monastery360/utils"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	Catalog catalog.CatalogService
}

// ListMonasteries handles GET /api/monasteries?q=&tradition=&virtual=.
func (h *CatalogHandler) ListMonasteries(c *gin.Context) {
	var filter models.MonasteryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Catalog.Monasteries(filter))
}

func (h *CatalogHandler) GetMonastery(c *gin.Context) {
	m, err := h.Catalog.MonasteryByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "monastery not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *CatalogHandler) ListPackages(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Packages())
}

func (h *CatalogHandler) ListTips(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Tips())
}

// PlannerOptions handles GET /api/planner/options, the travel form's pick lists.
func (h *CatalogHandler) PlannerOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Options())
}

// ListFestivals handles GET /api/festivals?month=&type=.
func (h *CatalogHandler) ListFestivals(c *gin.Context) {
	var filter models.FestivalFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Catalog.Festivals(filter))
}

func (h *CatalogHandler) ListAuspiciousDays(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.AuspiciousDays())
}

// ListArchives handles GET /api/archives?category=&type=&period=&q=.
func (h *CatalogHandler) ListArchives(c *gin.Context) {
	var filter models.ArchiveFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Catalog.Archives(filter))
}

func (h *CatalogHandler) GetArchiveItem(c *gin.Context) {
	item, err := h.Catalog.ArchiveByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "archive item not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, item)
}
