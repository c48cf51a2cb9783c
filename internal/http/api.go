package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"travel-journal/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users        service.UserService
	trips        service.TripService
	auth         service.AuthService
	loginLimiter *ipRateLimiter
	logger       *logrus.Logger
}

// Options tunes transport-level behavior of the handler.
type Options struct {
	LoginPerMinute int
	LoginBurst     int
}

func NewHandler(users service.UserService, trips service.TripService, auth service.AuthService, logger *logrus.Logger, opts Options) *Handler {
	if opts.LoginPerMinute <= 0 {
		opts.LoginPerMinute = 10
	}
	if opts.LoginBurst <= 0 {
		opts.LoginBurst = opts.LoginPerMinute
	}
	return &Handler{
		users:        users,
		trips:        trips,
		auth:         auth,
		loginLimiter: newIPRateLimiter(perMinute(opts.LoginPerMinute), opts.LoginBurst),
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), h.requestLogger())

	api := router.Group("/api/v1")
	{
		api.GET("/users", h.listUsers)
		api.GET("/users/:id", h.getUser)
		api.POST("/users", h.register)
		api.PATCH("/users/:id", h.updateUser)
		api.DELETE("/users/:id", h.deleteUser)
		api.GET("/users/:id/trips", h.listUserTrips)

		api.GET("/trips", h.listTrips)
		api.GET("/trips/:id", h.getTrip)
		api.POST("/trips", h.createTrip)
		api.PATCH("/trips/:id", h.updateTrip)
		api.DELETE("/trips/:id", h.deleteTrip)

		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.rateLimitLogin(), h.login)
		api.GET("/auth/me", h.authRequired(), h.me)

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

type createUserRequest struct {
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password" binding:"required"`
}

type createTripRequest struct {
	UserID      int64     `json:"userId" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) register(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.auth.Register(c.Request.Context(), service.CreateUserParams{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	if err := h.users.Update(c.Request.Context(), id, patch); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listUserTrips(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	trips, err := h.users.ListTrips(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

func (h *Handler) listTrips(c *gin.Context) {
	trips, err := h.trips.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

func (h *Handler) getTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	trip, err := h.trips.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *Handler) createTrip(c *gin.Context) {
	var req createTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.trips.Create(c.Request.Context(), service.CreateTripParams{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Start:       req.Start,
		End:         req.End,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) updateTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	if err := h.trips.Update(c.Request.Context(), id, patch); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.trips.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "incorrect credentials"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.users.GetByUsername(c.Request.Context(), claims.Username)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// pathID parses the :id segment; on failure it writes a 400 and reports false.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) renderError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		status := statusForKind(svcErr.Kind)
		if status != http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": svcErr.Message})
			return
		}
		h.logger.WithError(svcErr.Err).WithField("message", svcErr.Message).Error("internal service error")
	} else {
		h.logger.WithError(err).Error("unhandled error")
	}

	// internal detail is logged, never sent to the client
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func statusForKind(kind service.Kind) int {
	switch kind {
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	case service.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
