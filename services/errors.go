package services

import "errors"

// Shared sentinel errors, matched with errors.Is in the HTTP layer.
var (
	// Referenced resource does not exist.
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrRoundNotFound      = errors.New("round not found")
	ErrScoreNotFound      = errors.New("score not found")

	// Validation and business rules, rejected before any write.
	ErrScoreValidation           = errors.New("score validation failed")
	ErrTeamRoundMismatch         = errors.New("team and round must belong to the same tournament")
	ErrTeamNameRequired          = errors.New("team name is required")
	ErrTeamPlayersRequired       = errors.New("both player names are required")
	ErrTournamentNameRequired    = errors.New("tournament name is required")
	ErrTournamentInvalidDates    = errors.New("tournament end date must not be before start date")
	ErrTournamentInvalidStatus   = errors.New("invalid tournament status")
	ErrRoundNumberInvalid        = errors.New("round number must be at least 1")

	// Conflicts.
	ErrRoundNumberConflict = errors.New("round number already exists for this tournament")
	ErrEmailTaken          = errors.New("email is already taken")

	// Authentication.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Collaborators.
	ErrUploaderNotConfigured = errors.New("file storage is not configured")

	// Underlying store unavailable or failing; callers see a failed
	// operation and no broadcast happens.
	ErrStoreUnavailable = errors.New("score store unavailable")
)
