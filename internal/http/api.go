package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"simtrack/internal/domain"
	"simtrack/internal/service"
)

const ctxUserKey = "simtrack.user"

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	progress service.ProgressService
	sessions service.SessionService
	jobs     service.JobService
	logger   *logrus.Logger

	cookieName   string
	cookieSecure bool
	cookieMaxAge int
	corsOrigin   string
}

// HandlerConfig carries the cookie and CORS knobs the handler needs; the rest
// of the app config stays in main.
type HandlerConfig struct {
	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration
	CORSOrigin   string
}

func NewHandler(
	users service.UserService,
	progress service.ProgressService,
	sessions service.SessionService,
	jobs service.JobService,
	logger *logrus.Logger,
	cfg HandlerConfig,
) *Handler {
	return &Handler{
		users:        users,
		progress:     progress,
		sessions:     sessions,
		jobs:         jobs,
		logger:       logger,
		cookieName:   cfg.CookieName,
		cookieSecure: cfg.CookieSecure,
		cookieMaxAge: int(cfg.SessionTTL / time.Second),
		corsOrigin:   cfg.CORSOrigin,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(h.corsOrigin))

	api := router.Group("/api")
	{
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.POST("/logout", h.logout)
		api.GET("/session", h.session)
		api.GET("/jobs", h.listJobs)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		authed := api.Group("")
		authed.Use(h.requireAuth())
		{
			authed.GET("/progress", h.getProgress)
			authed.POST("/progress", h.saveProgress)
		}
	}
}

// corsMiddleware echoes the request origin so the browser accepts the session
// cookie across origins. An explicit origin in config restricts it to one site.
func corsMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowedOrigin == "" || origin == allowedOrigin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireAuth resolves the session cookie into a user and aborts with 401 when
// there is no valid session.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(h.cookieName)
		user, err := h.sessions.Current(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrSessionNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not logged in"})
				return
			}
			h.logger.WithError(err).Error("resolve session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "username and password required"})
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "username and password required"})
		case errors.Is(err, service.ErrUserAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "username already exists"})
		default:
			h.logger.WithError(err).Error("register user")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
			return
		}
		h.logger.WithError(err).Error("authenticate user")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		return
	}

	token, err := h.sessions.Start(c.Request.Context(), user)
	if err != nil {
		h.logger.WithError(err).Error("start session")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		return
	}

	h.setSessionCookie(c, token, h.cookieMaxAge)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookieName)
	if err := h.sessions.End(c.Request.Context(), token); err != nil {
		h.logger.WithError(err).Warn("end session")
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) session(c *gin.Context) {
	token, _ := c.Cookie(h.cookieName)
	user, err := h.sessions.Current(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, service.ErrSessionNotFound) {
			h.logger.WithError(err).Error("resolve session")
		}
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loggedIn": true, "username": user.Username})
}

type ProgressResponse struct {
	ID             int64  `json:"id"`
	SimulationName string `json:"simulation_name"`
	Completed      int    `json:"completed"`
	UpdatedAt      string `json:"updated_at"`
}

func (h *Handler) getProgress(c *gin.Context) {
	user := currentUser(c)

	records, err := h.progress.List(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.WithError(err).Error("list progress")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		return
	}

	resp := make([]ProgressResponse, len(records))
	for i := range records {
		resp[i] = progressToResponse(records[i])
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "progress": resp})
}

type saveProgressRequest struct {
	SimulationName string `json:"simulation_name"`
	Completed      int    `json:"completed"`
}

func (h *Handler) saveProgress(c *gin.Context) {
	user := currentUser(c)

	var req saveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "simulation_name required"})
		return
	}

	if err := h.progress.Save(c.Request.Context(), user.ID, req.SimulationName, req.Completed); err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "simulation_name required"})
			return
		}
		h.logger.WithError(err).Error("save progress")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) listJobs(c *gin.Context) {
	c.JSON(http.StatusOK, h.jobs.Listing())
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, maxAge, "/", "", h.cookieSecure, true)
}

func progressToResponse(p domain.Progress) ProgressResponse {
	return ProgressResponse{
		ID:             p.ID,
		SimulationName: p.SimulationName,
		Completed:      p.Completed,
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
	}
}
