package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sales-insights-go/internal/auth"
)

type loginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	UserID      string `json:"user_id"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, "username and password required")
		return
	}
	token, expiry, err := s.auth.Login(req.Username, req.Password)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		fail(c, http.StatusUnauthorized, "incorrect username or password")
		return
	}
	user, _ := s.auth.GetUser(req.Username)
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(expiry.Seconds()),
		UserID:      user.ID,
	})
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "username, email and password required")
		return
	}
	user, err := s.auth.Register(req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			fail(c, http.StatusBadRequest, "username already registered")
			return
		}
		fail(c, http.StatusInternalServerError, "could not register user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleMe(c *gin.Context) {
	identity, ok := auth.Identity(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "could not validate credentials")
		return
	}
	if user, found := s.auth.GetUser(identity.Username); found {
		c.JSON(http.StatusOK, user)
		return
	}
	c.JSON(http.StatusOK, identity)
}
