package constants

// Centralized constants for headers, env keys and the OpenAI integration.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvOpenAIAPIKey        = "OPENAI_API_KEY"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "HEXMECH_CONFIG"
	EnvDatabasePath        = "HEXMECH_DB"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// OpenAI API endpoint used by the AI commander
	OpenAIBaseURL             = "https://api.openai.com"
	OpenAIChatCompletionsPath = "/v1/chat/completions"
	OpenAIChatModel           = "gpt-5-nano"

	// Session / cookie names
	CookieSessionName = "hm_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteTemplates          = "/templates"
	RouteAbilities          = "/abilities"
	RouteMaps               = "/maps"
	RoutePublicBattles      = "/public-battles"
	RouteLeaderboard        = "/leaderboard"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RouteCommanderStats     = "/commander-stats"
	RouteBattles            = "/battles"
	RouteBattlesJoin        = "/battles/join"
	RouteBattleByID         = "/battles/:battleID"
	RouteBattleLog          = "/battles/:battleID/log"
	RouteBattleDeploy       = "/battles/:battleID/deploy"
	RouteBattleEnd          = "/battles/:battleID/end"
	RouteBattleLeave        = "/battles/:battleID/leave"
	RouteBattleCommand      = "/battles/:battleID/command"
	RouteBattleAITurn       = "/battles/:battleID/ai-turn"
	RouteCommanderProfile   = "/commander-profile"
	RouteAuthLogout         = "/auth/logout"
	RouteVersion            = "/version"
	RouteHealth             = "/health"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common log field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldUnitID   = "unit_id"
	LogFieldEmail    = "email"
	LogFieldSide     = "side"
	LogFieldAddr     = "addr"
	LogFieldKey      = "key"
	LogFieldSource   = "source"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrMissingGoogleEnv = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrInvalidBattleID  = "Invalid battle ID"
	ErrBattleNotFound   = "Battle not found"
	ErrEmailRequired    = "email is required"
	ErrUnknownMap       = "Unknown map name"

	ErrFailedCreateBattle     = "Failed to create battle"
	ErrBattleNameExceeds      = "Battle name exceeds 32 characters"
	ErrDescriptionExceeds     = "Description exceeds 256 characters"
	ErrBattleFull             = "Battle is full"
	ErrFailedUpdateBattle     = "Failed to update battle"
	ErrFailedEndBattle        = "Failed to end battle"
	ErrFailedFetchBattles     = "Failed to fetch battles"
	ErrFailedFetchLog         = "Failed to fetch battle log"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrCommanderNotInBattle   = "Commander not in this battle"
	ErrCannotLeaveInProgress  = "Cannot leave after the battle has started"
	ErrFailedRemoveCommander  = "Failed to remove commander"
	ErrBattleNotInProgress    = "Battle is not in progress"
	ErrNotYourTurn            = "It is not your side's turn"
	ErrNotAISeat              = "The active side is not AI controlled"
	ErrFailedSubmitCommand    = "Failed to submit command"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)
