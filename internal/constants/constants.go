package constants

// Centralized constants for headers, env keys, routes and API messages.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvServerAddr          = "SERVER_ADDR"
	EnvDatabasePath        = "DATABASE_PATH"
	EnvConfigPath          = "CONFIG_PATH"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Session / Cookie names
	CookieSessionName = "lq_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Gin context keys set by the auth middleware.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserName  = "userName"
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteWS                 = "/ws"
	RouteCards              = "/cards"
	RouteNPCs               = "/npcs"
	RouteNPCChallenge       = "/npcs/:npcKey/challenge"
	RouteLeaderboard        = "/leaderboard"
	RoutePlayerStats        = "/player-stats"
	RouteMatches            = "/matches"
	RouteMatchByID          = "/matches/:matchID"
	RouteMatchHistory       = "/match-history"
	RouteQueueStatus        = "/queue"
	RouteDeckShuffle        = "/decks/shuffle"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RouteAuthGuest          = "/auth/guest"
	RouteAuthLogout         = "/auth/logout"
	RouteAuthMe             = "/auth/me"
	RouteHealth             = "/health"
	RouteVersion            = "/version"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrMissingGoogleEnv = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"

	ErrMatchNotFound          = "Match not found"
	ErrNPCNotFound            = "NPC not found"
	ErrNPCNotAvailable        = "NPC is not available right now"
	ErrFailedFetchNPCs        = "Failed to fetch NPCs"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrFailedFetchMatches     = "Failed to fetch matches"
	ErrFailedResolveBattle    = "Failed to resolve battle"
	ErrUsernameRequired       = "username is required"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldMatchID   = "match_id"
	LogFieldSessionID = "session_id"
	LogFieldUserID    = "user_id"
	LogFieldNPCKey    = "npc_key"
	LogFieldAddr      = "addr"
	LogFieldSource    = "source"
)
