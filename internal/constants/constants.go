package constants

const (
	// ContextKeyUserID is the session and gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"
	// ContextKeyActor is the gin context key holding the resolved *authz.Actor.
	ContextKeyActor = "actor"

	SessionCookieName = "artwork_session"

	// AdminRole is granted to the user created by the initial setup.
	AdminRole = "admin"
)

// Notification worker pool
const (
	MailWorkers   = 2
	MailQueueSize = 100
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	UsersPerPage       = 15
	DepartmentsPerPage = 10
	InvitationsPerPage = 10
	ProjectsPerPage    = 10
	AreasPerPage       = 10
)

const (
	MinPasswordLength = 8
	// MinPasswordScore is the lowest accepted zxcvbn score (0-4).
	MinPasswordScore = 2

	// InvitationTokenLength is the number of characters in a plaintext invitation token.
	InvitationTokenLength = 20

	MaxAIGeneratedTasks = 20

	// DuplicateAreaPrefix is prepended to the name of a duplicated area.
	DuplicateAreaPrefix = "(Copy) "

	LogoDirectory         = "logos"
	ProfilePhotoDirectory = "profile-photos"
	MaxUploadSize         = 5 << 20
)

// Flash keys
const (
	FlashSuccess = "success"
	FlashError   = "error"
)
