package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"daybook/internal/models"
	"daybook/internal/storage"
)

type SettingsHandler struct {
	store storage.Provider
}

func NewSettingsHandler(store storage.Provider) *SettingsHandler {
	return &SettingsHandler{store: store}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.store.GetSettings()
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) Save(c *gin.Context) {
	var req struct {
		Timezone        string `json:"timezone" binding:"required"`
		DailyKcalTarget int    `json:"daily_kcal_target"`
		WeightUnit      string `json:"weight_unit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.WeightUnit != "kg" && req.WeightUnit != "lb" {
		badRequest(c, "weight_unit must be kg or lb")
		return
	}
	if req.DailyKcalTarget < 0 {
		badRequest(c, "daily_kcal_target must not be negative")
		return
	}

	settings := models.Settings{
		Timezone:        req.Timezone,
		DailyKcalTarget: req.DailyKcalTarget,
		WeightUnit:      req.WeightUnit,
	}
	if err := h.store.SaveSettings(settings); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
