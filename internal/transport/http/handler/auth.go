package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"goblog/internal/app"
	"goblog/internal/transport/http/render"
	"goblog/internal/transport/http/session"
)

type AuthHandler struct {
	authService *app.AuthService
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Top(c *gin.Context) {
	c.HTML(http.StatusOK, "top.html", nil)
}

func (h *AuthHandler) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, err := h.authService.Signup(app.SignupInput{
		Username: username,
		Password: password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrValidation):
			c.HTML(http.StatusBadRequest, "signup.html", gin.H{
				"Error":    err.Error(),
				"Username": username,
			})
		case errors.Is(err, app.ErrDuplicateUsername):
			c.HTML(http.StatusConflict, "signup.html", gin.H{
				"Error":    "that username is already taken",
				"Username": username,
			})
		default:
			log.Printf("signup failed: %v", err)
			render.Error(c, http.StatusInternalServerError, "signup failed")
		}
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Correct": true})
}

// Login re-renders the form on failure without echoing either field back, so
// a failed attempt reveals nothing about which one was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	user, err := h.authService.Login(app.LoginInput{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Correct": false})
			return
		}
		log.Printf("login failed: %v", err)
		render.Error(c, http.StatusInternalServerError, "login failed")
		return
	}

	if err := session.Establish(c, user.ID, user.Username); err != nil {
		log.Printf("establish session failed: %v", err)
		render.Error(c, http.StatusInternalServerError, "login failed")
		return
	}

	c.Redirect(http.StatusFound, "/index")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := session.Clear(c); err != nil {
		log.Printf("clear session failed: %v", err)
		render.Error(c, http.StatusInternalServerError, "logout failed")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}
