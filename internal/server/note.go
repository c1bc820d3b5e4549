package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"daybook/internal/models"
	"daybook/internal/storage"
)

type NoteHandler struct {
	store storage.Provider
}

func NewNoteHandler(store storage.Provider) *NoteHandler {
	return &NoteHandler{store: store}
}

func (h *NoteHandler) Get(c *gin.Context) {
	note, err := h.store.GetNote()
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) Save(c *gin.Context) {
	var req struct {
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.store.SaveNote(models.Note{Body: req.Body}); err != nil {
		respondStoreErr(c, err)
		return
	}

	note, err := h.store.GetNote()
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}
