package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"daybook/internal/constants"
	"daybook/internal/models"
	"daybook/internal/storage"
)

type KcalHandler struct {
	store storage.Provider
}

func NewKcalHandler(store storage.Provider) *KcalHandler {
	return &KcalHandler{store: store}
}

type kcalRequest struct {
	Day      string  `json:"day" binding:"required"`
	Kcal     int     `json:"kcal"`
	WeightKg float64 `json:"weight_kg"`
	Notes    string  `json:"notes"`
}

func (h *KcalHandler) Create(c *gin.Context) {
	var req kcalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if _, err := time.Parse(constants.DateFormat, req.Day); err != nil {
		badRequest(c, "invalid 'day', expected YYYY-MM-DD")
		return
	}

	now := time.Now()
	entry := models.KcalEntry{
		ID:        uuid.NewString(),
		Day:       req.Day,
		Kcal:      req.Kcal,
		WeightKg:  req.WeightKg,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.store.AddKcalEntry(entry); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// List returns entries, optionally bounded by ?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *KcalHandler) List(c *gin.Context) {
	entries, err := h.store.GetKcalEntries(c.Query("start"), c.Query("end"))
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *KcalHandler) Get(c *gin.Context) {
	entry, err := h.store.GetKcalEntry(c.Param("id"))
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *KcalHandler) Update(c *gin.Context) {
	existing, err := h.store.GetKcalEntry(c.Param("id"))
	if err != nil {
		respondStoreErr(c, err)
		return
	}

	var req kcalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if _, err := time.Parse(constants.DateFormat, req.Day); err != nil {
		badRequest(c, "invalid 'day', expected YYYY-MM-DD")
		return
	}

	existing.Day = req.Day
	existing.Kcal = req.Kcal
	existing.WeightKg = req.WeightKg
	existing.Notes = req.Notes
	existing.UpdatedAt = time.Now()

	if err := h.store.UpdateKcalEntry(existing); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *KcalHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteKcalEntry(c.Param("id")); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
