package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"daybook/internal/models"
	"daybook/internal/storage"
)

type MeetingHandler struct {
	store storage.Provider
}

func NewMeetingHandler(store storage.Provider) *MeetingHandler {
	return &MeetingHandler{store: store}
}

type meetingRequest struct {
	Title    string    `json:"title" binding:"required"`
	Notes    string    `json:"notes"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
	Location string    `json:"location"`
}

func (h *MeetingHandler) Create(c *gin.Context) {
	var req meetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !req.EndsAt.After(req.StartsAt) {
		badRequest(c, "ends_at must be after starts_at")
		return
	}

	now := time.Now()
	meeting := models.Meeting{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Notes:     req.Notes,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Location:  req.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.store.AddMeeting(meeting); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, meeting)
}

func (h *MeetingHandler) List(c *gin.Context) {
	meetings, err := h.store.GetAllMeetings()
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, meetings)
}

func (h *MeetingHandler) Get(c *gin.Context) {
	meeting, err := h.store.GetMeeting(c.Param("id"))
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, meeting)
}

func (h *MeetingHandler) Update(c *gin.Context) {
	existing, err := h.store.GetMeeting(c.Param("id"))
	if err != nil {
		respondStoreErr(c, err)
		return
	}

	var req meetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !req.EndsAt.After(req.StartsAt) {
		badRequest(c, "ends_at must be after starts_at")
		return
	}

	existing.Title = req.Title
	existing.Notes = req.Notes
	existing.StartsAt = req.StartsAt
	existing.EndsAt = req.EndsAt
	existing.Location = req.Location
	existing.UpdatedAt = time.Now()

	if err := h.store.UpdateMeeting(existing); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *MeetingHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteMeeting(c.Param("id")); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
