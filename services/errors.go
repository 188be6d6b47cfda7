package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed        = errors.New("validation failed")
	ErrPasswordTooShort        = errors.New("password is too short")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrLeagueNameRequired      = errors.New("league name is required")
	ErrLeagueInvalidScoring    = errors.New("invalid scoring type")
	ErrLeagueInvalidVisibility = errors.New("invalid league visibility")
	ErrLeagueInvalidCapacity   = errors.New("league max participants must be positive")
	ErrLeagueNotPrivate        = errors.New("invites only apply to private leagues")
	ErrLeagueInactive          = errors.New("league is not active")
	ErrInviteExpired           = errors.New("invite has expired")
	ErrInviteRequired          = errors.New("private league requires an invite")
	ErrGameInvalidWeek         = errors.New("game week is out of range")
	ErrGameSameTeams           = errors.New("a team cannot play itself")
	ErrGameScoresRequired      = errors.New("final games require both scores")
	ErrGameNotFinal            = errors.New("scores may only be set on final games")
	ErrPickInvalidType         = errors.New("invalid pick type")
	ErrPickTeamNotInGame       = errors.New("picked team is not playing in this game")
	ErrPickTeamRequired        = errors.New("picked team is required for this pick type")
	ErrPickSideRequired        = errors.New("over/under side is required for this pick type")
	ErrPickInvalidConfidence   = errors.New("confidence points must be between 1 and 16")
	ErrPickAfterKickoff        = errors.New("picks are locked once the game has started")
	ErrPickNotMember           = errors.New("user is not a member of this league")

	// Conflicts
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrUserUsernameConflict = errors.New("username is already in use")
	ErrLeagueNameConflict   = errors.New("league name is already in use for this season")
	ErrAlreadyMember        = errors.New("user is already a member of this league")
	ErrLeagueFull           = errors.New("league is full")
	ErrPickConflict         = errors.New("a pick of this type already exists for this game")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrCommissionerOnly       = errors.New("only the league commissioner can perform this action")
	ErrCommissionerImmovable  = errors.New("the commissioner cannot leave or be removed from the league")

	// Entity-specific not-found errors
	ErrUserNotFound   = errors.New("user not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrLeagueNotFound = errors.New("league not found")
	ErrGameNotFound   = errors.New("game not found")
	ErrPickNotFound   = errors.New("pick not found")
	ErrInviteNotFound = errors.New("invite not found")
)
