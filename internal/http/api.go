// Package http wires the user account routes to the service layer. All
// responses use the success/error envelope; handlers never emit raw data.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"user-api/internal/auth"
	"user-api/internal/domain"
	"user-api/internal/service"
)

// maxPageSize caps the limit query parameter on listings.
const maxPageSize = 20

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	tokens *auth.Issuer
}

func NewHandler(users service.UserService, tokens *auth.Issuer) *Handler {
	return &Handler{
		users:  users,
		tokens: tokens,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, NewSuccess(http.StatusOK, gin.H{"ok": "ok"}))
		})

		users := api.Group("/users")
		gate := RequireUser(h.tokens)

		users.GET("/me", gate, h.me)
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.POST("", h.register)
		users.POST("/login", h.login)
		users.PUT("", gate, h.updateUser)
		users.DELETE("", gate, h.deleteUser)
	}
}

// UserSummaryResponse is the public projection used by listings.
type UserSummaryResponse struct {
	ID        string `json:"_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
}

// UserAccountResponse is the subset echoed by register and login.
type UserAccountResponse struct {
	ID        string `json:"_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
}

// UserProfileResponse is the owner-facing projection.
type UserProfileResponse struct {
	ID            string `json:"_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name,omitempty"`
	Email         string `json:"email"`
	AccountStatus string `json:"account_status"`
}

func (h *Handler) me(c *gin.Context) {
	claims := ClaimsFromContext(c)

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, NewError(http.StatusNotFound, "User not found.", ""))
			return
		}
		c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "", err.Error()))
		return
	}

	c.JSON(http.StatusOK, NewSuccess(http.StatusOK, userToProfile(user)))
}

func (h *Handler) listUsers(c *gin.Context) {
	p := ResolvePagination(c.Query("page"), c.Query("limit"), maxPageSize)

	users, err := h.users.List(c.Request.Context(), p.Offset, p.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "", err.Error()))
		return
	}

	resp := make([]UserSummaryResponse, len(users))
	for i := range users {
		resp[i] = userToSummary(&users[i])
	}
	c.JSON(http.StatusOK, NewSuccess(http.StatusOK, resp))
}

func (h *Handler) getUser(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "Invalid Id.", ""))
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, NewError(http.StatusNotFound, "User not found.", ""))
			return
		}
		c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "", err.Error()))
		return
	}

	c.JSON(http.StatusOK, NewSuccess(http.StatusOK, userToSummary(user)))
}

func (h *Handler) register(c *gin.Context) {
	var in domain.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "Invalid request body.", err.Error()))
		return
	}
	if err := domain.ValidateCreate(in); err != nil {
		c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, err.Error(), ""))
		return
	}

	user, err := h.users.Register(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "User email already registered.", ""))
			return
		}
		c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "", err.Error()))
		return
	}

	c.JSON(http.StatusOK, NewSuccess(http.StatusOK, userToAccount(user)))
}

func (h *Handler) login(c *gin.Context) {
	var in domain.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "Invalid request body.", err.Error()))
		return
	}
	if err := domain.ValidateLogin(in); err != nil {
		c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, err.Error(), ""))
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "Invalid email or password.", ""))
			return
		}
		c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "", err.Error()))
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "", err.Error()))
		return
	}

	c.Header(AuthHeader, token)
	c.JSON(http.StatusOK, NewSuccess(http.StatusOK, userToAccount(user)))
}

func (h *Handler) updateUser(c *gin.Context) {
	claims := ClaimsFromContext(c)

	var in domain.UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "Invalid request body.", err.Error()))
		return
	}
	if err := domain.ValidateUpdate(in); err != nil {
		c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, err.Error(), ""))
		return
	}

	user, err := h.users.Update(c.Request.Context(), claims.UserID, in)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "Email not available.", ""))
			return
		}
		c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "", err.Error()))
		return
	}

	c.JSON(http.StatusOK, NewSuccess(http.StatusOK, userToProfile(user)))
}

func (h *Handler) deleteUser(c *gin.Context) {
	claims := ClaimsFromContext(c)

	if err := h.users.Delete(c.Request.Context(), claims.UserID); err != nil {
		c.JSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "User account could not be deleted.", ""))
		return
	}

	c.JSON(http.StatusOK, NewSuccess(http.StatusOK, "User account deleted."))
}

// isValidID reports whether id is a well-formed 24-char hex object
// identifier; a cheap guard before any by-id storage round trip.
func isValidID(id string) bool {
	_, err := bson.ObjectIDFromHex(id)
	return err == nil
}

func userToSummary(user *domain.User) UserSummaryResponse {
	return UserSummaryResponse{
		ID:        user.ID.Hex(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func userToAccount(user *domain.User) UserAccountResponse {
	return UserAccountResponse{
		ID:        user.ID.Hex(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

func userToProfile(user *domain.User) UserProfileResponse {
	return UserProfileResponse{
		ID:            user.ID.Hex(),
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		AccountStatus: string(user.AccountStatus),
	}
}
