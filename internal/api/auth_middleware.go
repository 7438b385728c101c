package api

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/constants"
)

// setSessionCookie sets the session cookie with appropriate flags for dev/prod.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := false
	if os.Getenv(constants.EnvSessionSecureCookie) == "1" {
		secure = true
	}
	c.SetCookie(constants.CookieSessionName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(constants.CookieSessionName, "", -1, "/", "", false, true)
}

// AuthRequired validates the session cookie and injects identity into context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.CookieSessionName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := parseAndValidateSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set(constants.ContextUserEmail, claims.Sub)
		c.Set(constants.ContextUserID, claims.UUID)
		c.Set(constants.ContextUserName, claims.Name)
		c.Next()
	}
}

// AuthOptional injects identity when a valid session cookie is present and
// proceeds as anonymous otherwise. Used by the websocket endpoint so
// guests can play without an account.
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.CookieSessionName)
		if err == nil && token != "" {
			if claims, err := parseAndValidateSession(token); err == nil {
				c.Set(constants.ContextUserEmail, claims.Sub)
				c.Set(constants.ContextUserID, claims.UUID)
				c.Set(constants.ContextUserName, claims.Name)
			}
		}
		c.Next()
	}
}
