// Package server exposes the HTTP API consumed by the web front end. Handlers
// are thin CRUD plumbing over the storage provider; the recurrence engine is
// the only piece with real logic and the reminder handlers delegate to it.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"daybook/internal/storage"
)

type Server struct {
	store  storage.Provider
	pin    string
	router *gin.Engine
}

func New(store storage.Provider, pin string, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		store:  store,
		pin:    pin,
		router: gin.New(),
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	api.Use(s.pinAuth())

	tasks := NewTaskHandler(s.store)
	api.GET("/tasks", tasks.List)
	api.POST("/tasks", tasks.Create)
	api.GET("/tasks/:id", tasks.Get)
	api.PUT("/tasks/:id", tasks.Update)
	api.DELETE("/tasks/:id", tasks.Delete)

	reminders := NewReminderHandler(s.store)
	api.GET("/reminders", reminders.List)
	api.POST("/reminders", reminders.Create)
	api.GET("/reminders/due", reminders.DueOn)
	api.GET("/reminders/:id", reminders.Get)
	api.PUT("/reminders/:id", reminders.Update)
	api.DELETE("/reminders/:id", reminders.Delete)
	api.GET("/reminders/:id/next-occurrence", reminders.NextOccurrence)
	api.POST("/reminders/:id/convert", reminders.Convert)
	api.POST("/reminders/:id/complete", reminders.Complete)

	meetings := NewMeetingHandler(s.store)
	api.GET("/meetings", meetings.List)
	api.POST("/meetings", meetings.Create)
	api.GET("/meetings/:id", meetings.Get)
	api.PUT("/meetings/:id", meetings.Update)
	api.DELETE("/meetings/:id", meetings.Delete)

	journals := NewJournalHandler(s.store)
	api.GET("/journals", journals.List)
	api.POST("/journals", journals.Create)
	api.GET("/journals/:id", journals.Get)
	api.PUT("/journals/:id", journals.Update)
	api.DELETE("/journals/:id", journals.Delete)

	settings := NewSettingsHandler(s.store)
	api.GET("/settings", settings.Get)
	api.PUT("/settings", settings.Save)

	note := NewNoteHandler(s.store)
	api.GET("/note", note.Get)
	api.PUT("/note", note.Save)

	kcal := NewKcalHandler(s.store)
	api.GET("/kcal", kcal.List)
	api.POST("/kcal", kcal.Create)
	api.GET("/kcal/:id", kcal.Get)
	api.PUT("/kcal/:id", kcal.Update)
	api.DELETE("/kcal/:id", kcal.Delete)
}

// Router returns the underlying gin engine, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
