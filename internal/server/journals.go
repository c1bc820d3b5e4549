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

type JournalHandler struct {
	store storage.Provider
}

func NewJournalHandler(store storage.Provider) *JournalHandler {
	return &JournalHandler{store: store}
}

type journalRequest struct {
	Day   string `json:"day" binding:"required"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (r *journalRequest) validDay() bool {
	_, err := time.Parse(constants.DateFormat, r.Day)
	return err == nil
}

func (h *JournalHandler) Create(c *gin.Context) {
	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !req.validDay() {
		badRequest(c, "invalid 'day', expected YYYY-MM-DD")
		return
	}

	now := time.Now()
	journal := models.Journal{
		ID:        uuid.NewString(),
		Day:       req.Day,
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.store.AddJournal(journal); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, journal)
}

func (h *JournalHandler) List(c *gin.Context) {
	journals, err := h.store.GetAllJournals()
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, journals)
}

func (h *JournalHandler) Get(c *gin.Context) {
	journal, err := h.store.GetJournal(c.Param("id"))
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, journal)
}

func (h *JournalHandler) Update(c *gin.Context) {
	existing, err := h.store.GetJournal(c.Param("id"))
	if err != nil {
		respondStoreErr(c, err)
		return
	}

	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !req.validDay() {
		badRequest(c, "invalid 'day', expected YYYY-MM-DD")
		return
	}

	existing.Day = req.Day
	existing.Title = req.Title
	existing.Body = req.Body
	existing.UpdatedAt = time.Now()

	if err := h.store.UpdateJournal(existing); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *JournalHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteJournal(c.Param("id")); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
