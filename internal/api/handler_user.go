package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/Rajendra1296/OMF-Consumer/internal/query"
	"github.com/Rajendra1296/OMF-Consumer/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the read endpoints over the query service.
type UserHandler struct {
	Query *query.Service
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(q *query.Service) *UserHandler {
	return &UserHandler{Query: q}
}

// GetUserStatus godoc
// @Summary      Get a user's status by email and date of birth
// @Description  Looks a user up via the (email, dob) secondary key and returns its id and status
// @Tags         users
// @Produce      json
// @Param        email  query     string  true  "User email"
// @Param        dob    query     string  true  "Date of birth (YYYY-MM-DD)"
// @Success      200    {object}  models.UserStatus
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /users/status [get]
func (h *UserHandler) GetUserStatus(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	email := c.Query("email")
	dob := c.Query("dob")
	log.Printf("[API] GetUserStatus email=%s dob=%s correlation_id=%s", email, dob, correlationID)

	status, err := h.Query.GetUserStatus(c.Request.Context(), email, dob)
	if err != nil {
		respondError(c, err, correlationID)
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetUserDetails godoc
// @Summary      Get a user by ID
// @Description  Returns the full user record
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetUserDetails(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	userID := c.Param("id")
	log.Printf("[API] GetUserDetails id=%s correlation_id=%s", userID, correlationID)

	user, err := h.Query.GetUserDetails(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, correlationID)
		return
	}

	c.JSON(http.StatusOK, user)
}

func respondError(c *gin.Context, err error, correlationID string) {
	switch {
	case errors.Is(err, query.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, query.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("[API] Lookup error: %v correlation_id=%s", err, correlationID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
	}
}
