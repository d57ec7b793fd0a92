package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "vansdash_session"

// requireAuth gates every dashboard route behind the shared password.
// An empty configured password disables the gate entirely. There is no
// lockout or rate limiting; a wrong password just re-prompts.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.Auth.Password == "" {
			c.Next()
			return
		}
		token, err := c.Cookie(sessionCookie)
		if err == nil && s.sessionValid(token) {
			c.Next()
			return
		}
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
	}
}

func (s *Server) sessionValid(token string) bool {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()
	return s.sessions[token]
}

func (s *Server) handleLoginForm(c *gin.Context) {
	if s.cfg.Auth.Password == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Message": "Enter the password to access the dashboard.",
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	if s.cfg.Auth.Password == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if c.PostForm("password") != s.cfg.Auth.Password {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Message": "Incorrect password, try again.",
		})
		return
	}

	token := uuid.NewString()
	s.sessionsMu.Lock()
	s.sessions[token] = true
	s.sessionsMu.Unlock()

	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}
