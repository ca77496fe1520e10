package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/skillsenselab/lyricsync/errors"
	"github.com/skillsenselab/lyricsync/healthcheck"
	"github.com/skillsenselab/lyricsync/logger"
	"github.com/skillsenselab/lyricsync/session"
	"github.com/skillsenselab/lyricsync/sse"
	"github.com/skillsenselab/lyricsync/validation"
)

// API wires the session endpoints onto a Gin engine.
type API struct {
	manager *session.Manager
	hub     *sse.Hub
	monitor *healthcheck.Monitor
	log     *logger.Logger
}

// APIOption configures the API.
type APIOption func(*API)

// WithMonitor exposes the backend health monitor on the API.
func WithMonitor(m *healthcheck.Monitor) APIOption {
	return func(a *API) { a.monitor = m }
}

// NewAPI creates the session API.
func NewAPI(manager *session.Manager, hub *sse.Hub, log *logger.Logger, opts ...APIOption) *API {
	a := &API{
		manager: manager,
		hub:     hub,
		log:     log.WithComponent("api"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register mounts all session routes under /v1.
func (a *API) Register(r *gin.Engine) {
	v1 := r.Group("/v1")

	sessions := v1.Group("/sessions")
	sessions.POST("", a.createSession)
	sessions.DELETE("/:id", a.deleteSession)
	sessions.POST("/:id/audio", a.uploadAudio)
	sessions.POST("/:id/transcribe", a.transcribe)
	sessions.POST("/:id/intents", a.dispatchIntent)
	sessions.GET("/:id/timeline", a.timeline)
	sessions.GET("/:id/export", a.export)
	sessions.GET("/:id/events", a.events)

	v1.GET("/backend", a.backendStatus)
}

func (a *API) createSession(c *gin.Context) {
	s := a.manager.Create()
	RespondCreated(c, s.Snapshot())
}

func (a *API) deleteSession(c *gin.Context) {
	if err := a.manager.Delete(c.Param("id")); err != nil {
		RespondWithError(c, err)
		return
	}
	RespondNoContent(c)
}

func (a *API) uploadAudio(c *gin.Context) {
	s, err := a.manager.Get(c.Param("id"))
	if err != nil {
		RespondWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		RespondWithError(c, apperrors.MissingField("audio"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondWithError(c, apperrors.Internal(err))
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondWithError(c, apperrors.Internal(err))
		return
	}

	meta := session.Audio{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
	}
	// The player knows the real duration; insertion clamping uses it.
	if d := c.PostForm("duration"); d != "" {
		if duration, parseErr := strconv.ParseFloat(d, 64); parseErr == nil && duration > 0 {
			meta.Duration = duration
		}
	}

	state, err := s.SetAudio(meta, data)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, state)
}

func (a *API) transcribe(c *gin.Context) {
	s, err := a.manager.Get(c.Param("id"))
	if err != nil {
		RespondWithError(c, err)
		return
	}

	state, err := s.Dispatch(c.Request.Context(), session.Intent{Type: session.IntentTranscribe})
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondAccepted(c, state)
}

func (a *API) dispatchIntent(c *gin.Context) {
	s, err := a.manager.Get(c.Param("id"))
	if err != nil {
		RespondWithError(c, err)
		return
	}

	var intent session.Intent
	if err := c.ShouldBindJSON(&intent); err != nil {
		RespondWithError(c, apperrors.InvalidInput("body", "malformed intent JSON"))
		return
	}
	if err := validation.Validate(intent); err != nil {
		RespondWithError(c, err)
		return
	}

	state, err := s.Dispatch(c.Request.Context(), intent)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, state)
}

func (a *API) timeline(c *gin.Context) {
	s, err := a.manager.Get(c.Param("id"))
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, s.Snapshot())
}

func (a *API) export(c *gin.Context) {
	s, err := a.manager.Get(c.Param("id"))
	if err != nil {
		RespondWithError(c, err)
		return
	}

	content, name, err := s.ExportLRC()
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", content)
}

func (a *API) events(c *gin.Context) {
	s, err := a.manager.Get(c.Param("id"))
	if err != nil {
		RespondWithError(c, err)
		return
	}
	sse.Serve(a.hub, c.Writer, c.Request, s.ID(), uuid.NewString())
}

func (a *API) backendStatus(c *gin.Context) {
	if a.monitor == nil {
		RespondWithError(c, apperrors.ServiceUnavailable("healthcheck"))
		return
	}
	status := a.monitor.Status()
	if c.Query("refresh") == "true" {
		status = a.monitor.CheckNow(c.Request.Context())
	}
	RespondOK(c, gin.H{"status": status})
}
