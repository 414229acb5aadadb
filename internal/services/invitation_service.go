package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/artwork-tools/artwork-admin/internal/authz"
	"github.com/artwork-tools/artwork-admin/internal/constants"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/notify"
	"github.com/artwork-tools/artwork-admin/internal/repository"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrFailedToIssueToken = errors.New("failed to issue invitation token")
	ErrFailedToProvision  = errors.New("failed to provision invited user")
)

// InvitationService issues, manages and accepts invitations.
type InvitationService struct {
	invitations repository.InvitationRepository
	users       repository.UserRepository
	roles       repository.RoleRepository
	departments repository.DepartmentRepository
	notifier    notify.Notifier
	authorizer  authz.Authorizer
	appURL      string
}

// NewInvitationService creates a new InvitationService.
func NewInvitationService(
	invitations repository.InvitationRepository,
	users repository.UserRepository,
	roles repository.RoleRepository,
	departments repository.DepartmentRepository,
	notifier notify.Notifier,
	authorizer authz.Authorizer,
	appURL string,
) *InvitationService {
	return &InvitationService{
		invitations: invitations,
		users:       users,
		roles:       roles,
		departments: departments,
		notifier:    notifier,
		authorizer:  authorizer,
		appURL:      appURL,
	}
}

// InviteInput is the payload for issuing invitations.
type InviteInput struct {
	Emails        []string `json:"emails" form:"emails" validate:"required,min=1,max=50,dive,required,email,max=255"`
	Role          string   `json:"role" form:"role" validate:"required,max=100"`
	Permissions   []string `json:"permissions" form:"permissions" validate:"dive,required,max=100"`
	DepartmentIDs []uint64 `json:"department_ids" form:"department_ids" validate:"dive,gt=0"`
}

// InvitationFormData lists the choices offered on the invite and edit forms.
type InvitationFormData struct {
	Roles       []models.Role
	Permissions []models.Permission
	Departments []models.Department
}

func (s *InvitationService) authorize(actor *authz.Actor) error {
	return authz.Authorize(s.authorizer, actor, authz.ActionInvite, authz.KindUsers)
}

// FormData returns the roles, permissions and departments an invitation may reference.
func (s *InvitationService) FormData(ctx context.Context, actor *authz.Actor) (*InvitationFormData, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}

	roles, err := s.roles.ListRoles()
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	perms, err := s.roles.ListPermissions()
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	departments, err := s.departments.All()
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	return &InvitationFormData{Roles: roles, Permissions: perms, Departments: departments}, nil
}

// Invite creates one invitation per email, all bound to the same role,
// permissions and departments, and queues an email with each plaintext token.
// Delivery happens asynchronously; a failed send leaves the invitation in place.
func (s *InvitationService) Invite(ctx context.Context, actor *authz.Actor, input InviteInput) ([]*models.Invitation, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}

	for i := range input.Emails {
		input.Emails[i] = normalizeEmail(input.Emails[i])
	}
	if err := validateStruct(input).ErrOrNil(); err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	s.checkGrants(actor, input.Role, input.Permissions, verr)
	s.checkEmailsAvailable(input.Emails, 0, verr)
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	departments, err := s.departments.FindByIDs(input.DepartmentIDs)
	if err != nil {
		if errors.Is(err, repository.ErrDepartmentsNotFound) {
			return nil, fieldError("department_ids", "One or more selected departments do not exist.")
		}
		return nil, fmt.Errorf("failed to load departments: %w", err)
	}

	invitations := make([]*models.Invitation, len(input.Emails))
	tokens := make([]string, len(input.Emails))
	for i, email := range input.Emails {
		plaintext, hash, err := utils.IssueToken(constants.InvitationTokenLength)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToIssueToken, err)
		}
		tokens[i] = plaintext
		invitations[i] = &models.Invitation{
			Email:       email,
			TokenHash:   hash,
			Role:        input.Role,
			Permissions: datatypes.JSONSlice[string](append([]string{}, input.Permissions...)),
		}
	}

	if err := s.invitations.CreateMany(invitations, departments); err != nil {
		return nil, fmt.Errorf("failed to create invitations: %w", err)
	}

	log := zerolog.Ctx(ctx)
	for i, inv := range invitations {
		inv.Departments = departments
		if err := s.notifier.Enqueue(notify.InvitationMessage(s.appURL, inv.Email, tokens[i])); err != nil {
			log.Error().Err(err).Uint64("invitation_id", inv.ID).Msg("failed to queue invitation email")
			continue
		}
		log.Info().Uint64("invitation_id", inv.ID).Uint64("invited_by", actor.UserID).Msg("invitation issued")
	}

	return invitations, nil
}

// checkGrants validates the role and permission names and prevents actors
// from handing out capabilities they do not hold themselves.
func (s *InvitationService) checkGrants(actor *authz.Actor, role string, permissions []string, verr *ValidationError) {
	if role != "" {
		roles, err := s.roles.ListRoles()
		if err != nil {
			verr.Add("role", "Could not check roles.")
		} else if r, ok := rolesByName(roles)[role]; !ok {
			verr.Add("role", "The selected role is invalid.")
		} else if msg := roleGrantError(actor, r); msg != "" {
			verr.Add("role", msg)
		}
	}

	if missing, err := s.roles.MissingPermissions(permissions); err != nil || len(missing) > 0 {
		verr.Add("permissions", "One or more selected permissions are invalid.")
		return
	}
	for _, p := range permissions {
		if !actor.HasPermission(p) {
			verr.Add("permissions", fmt.Sprintf("You may not grant %q.", p))
			return
		}
	}
}

// checkEmailsAvailable rejects emails that are repeated, already invited or
// already registered. exceptID skips the invitation being edited.
func (s *InvitationService) checkEmailsAvailable(emails []string, exceptID uint64, verr *ValidationError) {
	field := func(i int) string {
		if exceptID != 0 {
			return "email"
		}
		return fmt.Sprintf("emails.%d", i)
	}

	seen := make(map[string]int, len(emails))
	for i, e := range emails {
		if _, dup := seen[e]; dup {
			verr.Add(field(i), "This email appears more than once.")
			continue
		}
		seen[e] = i
	}

	registered, err := s.users.ExistingEmails(emails)
	if err != nil {
		verr.Add("emails", "Could not check emails.")
		return
	}
	for _, e := range registered {
		verr.Add(field(seen[e]), "A user with this email already exists.")
	}

	for i, e := range emails {
		inv, err := s.invitations.FindByEmail(e)
		if err == nil && inv.ID != exceptID {
			verr.Add(field(i), "This email has already been invited.")
		}
	}
}

// List returns a page of pending invitations.
func (s *InvitationService) List(ctx context.Context, actor *authz.Actor, params utils.PaginationParams) ([]models.Invitation, int64, error) {
	if err := s.authorize(actor); err != nil {
		return nil, 0, err
	}

	invitations, total, err := s.invitations.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, total, nil
}

// Get returns a single invitation for editing.
func (s *InvitationService) Get(ctx context.Context, actor *authz.Actor, id uint64) (*models.Invitation, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}

	inv, err := s.invitations.FindByID(id)
	if err != nil {
		return nil, notFound(err, "invitation")
	}
	return inv, nil
}

// UpdateInvitationInput changes a pending invitation. Nil fields are left as they are.
type UpdateInvitationInput struct {
	Email         *string   `json:"email" form:"email" validate:"omitnil,required,email,max=255"`
	Role          *string   `json:"role" form:"role" validate:"omitnil,required,max=100"`
	Permissions   *[]string `json:"permissions" form:"permissions" validate:"omitnil,dive,required,max=100"`
	DepartmentIDs *[]uint64 `json:"department_ids" form:"department_ids" validate:"omitnil,dive,gt=0"`
}

// Update modifies a pending invitation. The token is kept.
func (s *InvitationService) Update(ctx context.Context, actor *authz.Actor, id uint64, input UpdateInvitationInput) (*models.Invitation, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}

	inv, err := s.invitations.FindByID(id)
	if err != nil {
		return nil, notFound(err, "invitation")
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		input.Email = &email
	}
	if err := validateStruct(input).ErrOrNil(); err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	fields := map[string]any{}
	if input.Email != nil && *input.Email != inv.Email {
		s.checkEmailsAvailable([]string{*input.Email}, inv.ID, verr)
		fields["email"] = *input.Email
	}
	role := ""
	if input.Role != nil {
		role = *input.Role
		fields["role"] = role
	}
	var perms []string
	if input.Permissions != nil {
		perms = *input.Permissions
		fields["permissions"] = datatypes.JSONSlice[string](append([]string{}, perms...))
	}
	s.checkGrants(actor, role, perms, verr)
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	var departments []models.Department
	if input.DepartmentIDs != nil {
		departments, err = s.departments.FindByIDs(*input.DepartmentIDs)
		if err != nil {
			if errors.Is(err, repository.ErrDepartmentsNotFound) {
				return nil, fieldError("department_ids", "One or more selected departments do not exist.")
			}
			return nil, fmt.Errorf("failed to load departments: %w", err)
		}
	}

	if err := s.invitations.Update(inv, fields, departments); err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}

	return s.invitations.FindByID(inv.ID)
}

// Destroy revokes a pending invitation.
func (s *InvitationService) Destroy(ctx context.Context, actor *authz.Actor, id uint64) error {
	if err := s.authorize(actor); err != nil {
		return err
	}

	if err := s.invitations.Delete(id); err != nil {
		return notFound(err, "invitation")
	}
	zerolog.Ctx(ctx).Info().Uint64("invitation_id", id).Msg("invitation revoked")
	return nil
}

// AcceptInput is the registration form submitted with an invitation token.
type AcceptInput struct {
	Email                string `json:"email" form:"email" validate:"required,email,max=255"`
	Token                string `json:"token" form:"token" validate:"required,max=255"`
	FirstName            string `json:"first_name" form:"first_name" validate:"required,max=255"`
	LastName             string `json:"last_name" form:"last_name" validate:"required,max=255"`
	Password             string `json:"password" form:"password" validate:"required,max=72"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" validate:"required,eqfield=Password"`
	PhoneNumber          string `json:"phone_number" form:"phone_number" validate:"max=50"`
	Position             string `json:"position" form:"position" validate:"max=255"`
	Business             string `json:"business" form:"business" validate:"max=255"`
	Description          string `json:"description" form:"description" validate:"max=5000"`
}

// acceptCredentials are the fields checked before the invitation is looked up.
type acceptCredentials struct {
	Email                string `json:"email" validate:"required,email,max=255"`
	Token                string `json:"token" validate:"required,max=255"`
	Password             string `json:"password" validate:"required,max=72"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// Accept redeems an invitation. The credential fields are validated first;
// then the invitation is looked up by email and the token verified, both
// failing with ErrForbidden so callers cannot tell which emails were invited.
// Profile fields and password strength are validated last. Provisioning,
// grants, department links and the invitation's deletion happen in one
// transaction.
func (s *InvitationService) Accept(ctx context.Context, input AcceptInput) (*models.User, error) {
	input.Email = normalizeEmail(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	if err := validateStruct(acceptCredentials{
		Email:                input.Email,
		Token:                input.Token,
		Password:             input.Password,
		PasswordConfirmation: input.PasswordConfirmation,
	}).ErrOrNil(); err != nil {
		return nil, err
	}

	log := zerolog.Ctx(ctx)

	inv, err := s.invitations.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.BurnTokenCheck(input.Token)
			log.Warn().Msg("invitation acceptance for unknown email")
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}

	if !utils.VerifyToken(input.Token, inv.TokenHash) {
		log.Warn().Uint64("invitation_id", inv.ID).Msg("invitation acceptance with wrong token")
		return nil, ErrForbidden
	}

	verr := validateStruct(input)
	if _, failed := verr.Fields["password"]; !failed {
		if err := utils.CheckPasswordStrength(input.Password, input.Email, input.FirstName, input.LastName); err != nil {
			verr.Add("password", err.Error())
		}
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	if taken, err := s.users.ExistingEmails([]string{input.Email}); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if len(taken) > 0 {
		return nil, fieldError("email", "A user with this email already exists.")
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		Position:     strings.TrimSpace(input.Position),
		Business:     strings.TrimSpace(input.Business),
		Description:  input.Description,
	}

	if err := s.users.CreateFromInvitation(user, inv); err != nil {
		// a concurrent acceptance won the race
		if errors.Is(err, repository.ErrInvitationConsumed) || errors.Is(err, repository.ErrEmailTaken) {
			log.Warn().Uint64("invitation_id", inv.ID).Err(err).Msg("invitation already accepted")
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToProvision, err)
	}

	log.Info().Uint64("user_id", user.ID).Uint64("invitation_id", inv.ID).Msg("invitation accepted")
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
