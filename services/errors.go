package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed      = errors.New("validation failed")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrTeamNameRequired      = errors.New("team name is required")
	ErrTeamInvalidCapacity   = errors.New("team capacity must be at least 1")
	ErrTeamTooManyMembers    = errors.New("member list exceeds team capacity")
	ErrInvalidRole           = errors.New("invalid role")
	ErrInvalidPosition       = errors.New("invalid winner position")
	ErrHackathonInvalidDates = errors.New("hackathon end date must be after start date")

	// Conflicts
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrTeamNameConflict       = errors.New("team name is already in use")
	ErrMemberAlreadyAssigned  = errors.New("a requested member already belongs to a team")
	ErrMemberNotParticipant   = errors.New("a requested member is not a participant")
	ErrOpenHackathonExists    = errors.New("an active or upcoming hackathon already exists")
	ErrQuestionInUse          = errors.New("question is still referenced by a team")
	ErrEvaluationConflict     = errors.New("evaluation already recorded for this team")
	ErrWinnerPositionConflict = errors.New("position already awarded for this hackathon")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors; more context than the generic one.
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamNotAssigned    = errors.New("you are not assigned to a team yet")
	ErrCollegeNotFound    = errors.New("college not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrHackathonNotFound  = errors.New("hackathon not found")
	ErrEvaluationNotFound = errors.New("evaluation not found")
	ErrWinnerNotFound     = errors.New("winner record not found")

	ErrUploadsNotConfigured = errors.New("file uploads are not configured")
)
