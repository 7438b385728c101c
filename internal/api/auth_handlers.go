package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/constants"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/storage"
)

const sessionTTL = 24 * time.Hour

type AuthHandler struct {
	repo storage.Repository
}

func NewAuthHandler(repo storage.Repository) *AuthHandler {
	return &AuthHandler{repo: repo}
}

type GoogleOAuthCallbackRequest struct {
	Code string `json:"code"`
}

func (h *AuthHandler) GoogleOAuthCallback(c *gin.Context) {
	var req GoogleOAuthCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	googleClientID := os.Getenv(constants.EnvGoogleClientID)
	googleClientSecret := os.Getenv(constants.EnvGoogleClientSecret)
	if googleClientID == "" || googleClientSecret == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMissingGoogleEnv})
		return
	}

	conf := &oauth2.Config{
		ClientID:     googleClientID,
		ClientSecret: googleClientSecret,
		RedirectURL:  constants.GoogleOAuthRedirect,
		Scopes:       constants.GoogleUserInfoScopes,
		Endpoint:     google.Endpoint,
	}

	token, err := conf.Exchange(context.Background(), req.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrFailedExchangeToken})
		return
	}

	client := conf.Client(context.Background(), token)
	resp, err := client.Get(constants.GoogleUserInfoURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedGetUserInfo})
		return
	}
	defer resp.Body.Close()

	userData, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fmt.Sprintf(constants.ErrFailedReadUserData, err.Error())})
		return
	}

	var payload map[string]any
	_ = json.Unmarshal(userData, &payload)
	email, _ := payload["email"].(string)
	name, _ := payload["name"].(string)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrNoEmailInGoogleProfile})
		return
	}

	// Keep the stable player uuid and a server-stored custom display name
	// across logins.
	playerUUID := uuid.NewString()
	nameToUse := name
	if h.repo != nil {
		if ps, err := h.repo.GetStatsByEmail(email); err == nil {
			if ps.PlayerUUID != "" {
				playerUUID = ps.PlayerUUID
			}
			if ps.PlayerName != "" {
				nameToUse = ps.PlayerName
			}
		}
		if err := h.repo.UpsertUser(email, playerUUID, nameToUse); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
			return
		}
	}

	sess, err := createSessionToken(email, playerUUID, nameToUse, sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}
	setSessionCookie(c, sess, sessionTTL)

	out := map[string]any{"email": email, "name": nameToUse, "uuid": playerUUID}
	if pic, ok := payload["picture"].(string); ok && pic != "" {
		out["picture"] = pic
	}
	c.JSON(http.StatusOK, out)
}

type GuestLoginRequest struct {
	Username string `json:"username"`
}

// GuestLogin mints a session for an anonymous player. Guests get a fresh
// uuid and no stored profile until they win something worth recording.
func (h *AuthHandler) GuestLogin(c *gin.Context) {
	var req GuestLoginRequest
	_ = c.ShouldBindJSON(&req)
	name := strings.TrimSpace(req.Username)
	playerUUID := uuid.NewString()
	if name == "" {
		name = "convidado-" + playerUUID[:8]
	}
	sess, err := createSessionToken("", playerUUID, name, sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}
	setSessionCookie(c, sess, sessionTTL)
	c.JSON(http.StatusOK, gin.H{"uuid": playerUUID, "name": name})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}

// Me returns the identity bound to the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"email": c.GetString(constants.ContextUserEmail),
		"uuid":  c.GetString(constants.ContextUserID),
		"name":  c.GetString(constants.ContextUserName),
	})
}
