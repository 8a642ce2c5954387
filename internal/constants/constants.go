package constants

// Environment variable names.
const (
	EnvConfigPath = "ZARKA_CONFIG"
	EnvDBPath     = "ZARKA_DB"
)

// Route paths.
const (
	RouteAPIPrefix    = "/api"
	RouteVersion      = "/version"
	RouteMatches      = "/matches"
	RouteMatchByCode  = "/matches/:code"
	RouteMatchJoin    = "/matches/:code/join"
	RouteMatchStart   = "/matches/:code/start"
	RouteMatchPlan    = "/matches/:code/plan"
	RouteMatchReplay  = "/matches/:code/replays/:turn"
)

// Request header carrying the caller's player id.
const HeaderPlayerID = "X-Player-ID"

// JSON response keys.
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Log field names.
const (
	LogFieldAddr     = "addr"
	LogFieldMatchID  = "match_id"
	LogFieldPlayerID = "player_id"
	LogFieldTurn     = "turn"
)

// Client-facing error strings.
const (
	ErrInvalidRequest       = "invalid request"
	ErrInvalidJoinCode      = "invalid join code"
	ErrMatchNotFound        = "match not found"
	ErrMatchNotInProgress   = "match is not in progress"
	ErrMatchAlreadyStarted  = "match already started"
	ErrMatchFull            = "match is full"
	ErrPlayerNotInMatch     = "player not in this match"
	ErrPlayerIDRequired     = "player id required"
	ErrUnknownAction        = "unknown action"
	ErrActionNotDeveloped   = "action is not available"
	ErrWrongSlotCategory    = "action does not fit this plan slot"
	ErrActionOnCooldown     = "action is on cooldown"
	ErrNegativeEffort       = "extra effort must not be negative"
	ErrCharacterDown        = "character is incapacitated"
	ErrReplayNotFound       = "replay not found"
	ErrFailedStorePlan      = "failed to store plan"
	ErrFailedCreateMatch    = "failed to create match"
	ErrFailedListMatches    = "failed to list matches"
	ErrFailedJoinMatch      = "failed to join match"
)
