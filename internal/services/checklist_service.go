package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/artwork-tools/artwork-admin/internal/authz"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/repository"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// ChecklistService administers checklists and their tasks.
type ChecklistService struct {
	checklists repository.ChecklistRepository
	projects   repository.ProjectRepository
	users      repository.UserRepository
	suggester  TaskSuggester
	authorizer authz.Authorizer
}

// NewChecklistService creates a new ChecklistService. suggester may be nil.
func NewChecklistService(checklists repository.ChecklistRepository, projects repository.ProjectRepository, users repository.UserRepository, suggester TaskSuggester, authorizer authz.Authorizer) *ChecklistService {
	return &ChecklistService{
		checklists: checklists,
		projects:   projects,
		users:      users,
		suggester:  suggester,
		authorizer: authorizer,
	}
}

// TaskInput describes a task added to a checklist.
type TaskInput struct {
	Name        string `json:"name" form:"name" validate:"required,max=255"`
	Description string `json:"description" form:"description" validate:"max=5000"`
	Deadline    string `json:"deadline" form:"deadline" validate:"date"`
}

// ChecklistInput creates or updates a checklist. On update tasks are appended,
// and nil fields are left as they are.
type ChecklistInput struct {
	Name      *string     `json:"name" form:"name" validate:"omitnil,required,max=255"`
	ProjectID uint64      `json:"project_id" form:"project_id"`
	Tasks     []TaskInput `json:"tasks" form:"tasks" validate:"dive"`
	UserIDs   *[]uint64   `json:"user_ids" form:"user_ids" validate:"omitnil,dive,gt=0"`
}

// CanCreate reports whether actor may open the create form.
func (s *ChecklistService) CanCreate(actor *authz.Actor) bool {
	return s.authorizer.Can(actor, authz.ActionCreate, authz.KindChecklists)
}

// AssignableUsers lists the users offered on the checklist forms.
func (s *ChecklistService) AssignableUsers(ctx context.Context, actor *authz.Actor) ([]models.User, error) {
	if !s.CanCreate(actor) && !s.authorizer.Can(actor, authz.ActionUpdate, authz.KindChecklists) {
		return nil, ErrForbidden
	}
	users, err := s.users.All()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Assigned returns the checklists actor is assigned to.
func (s *ChecklistService) Assigned(ctx context.Context, actor *authz.Actor) ([]models.Checklist, error) {
	checklists, err := s.checklists.ListAssignedTo(actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklists: %w", err)
	}
	return checklists, nil
}

// Get returns a checklist with tasks and users.
func (s *ChecklistService) Get(ctx context.Context, actor *authz.Actor, id uint64) (*models.Checklist, error) {
	checklist, err := s.checklists.FindByID(id)
	if err != nil {
		return nil, notFound(err, "checklist")
	}
	if !s.authorizer.Can(actor, authz.ActionView, checklist) {
		return nil, ErrForbidden
	}
	return checklist, nil
}

// Create stores a checklist with its tasks. Each assigned user must be
// updatable by actor; one refusal fails the whole request.
func (s *ChecklistService) Create(ctx context.Context, actor *authz.Actor, input ChecklistInput) (*models.Checklist, error) {
	if err := authz.Authorize(s.authorizer, actor, authz.ActionCreate, authz.KindChecklists); err != nil {
		return nil, err
	}

	verr := validateStruct(input)
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		verr.Add("name", "This field is required.")
	}
	if input.ProjectID == 0 {
		verr.Add("project_id", "This field is required.")
	} else if _, err := s.projects.FindByID(input.ProjectID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
		verr.Add("project_id", "The selected project does not exist.")
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	var users []models.User
	if input.UserIDs != nil {
		var err error
		users, err = assignableUsers(s.authorizer, s.users, actor, "user_ids", *input.UserIDs)
		if err != nil {
			return nil, err
		}
	}

	checklist := &models.Checklist{
		Name:      strings.TrimSpace(*input.Name),
		ProjectID: input.ProjectID,
	}
	if err := s.checklists.Create(checklist, buildTasks(input.Tasks), users); err != nil {
		return nil, fmt.Errorf("failed to create checklist: %w", err)
	}

	zerolog.Ctx(ctx).Info().Uint64("checklist_id", checklist.ID).Msg("checklist created")
	return checklist, nil
}

// Update renames a checklist, appends tasks and replaces assigned users.
func (s *ChecklistService) Update(ctx context.Context, actor *authz.Actor, id uint64, input ChecklistInput) (*models.Checklist, error) {
	checklist, err := s.checklists.FindByID(id)
	if err != nil {
		return nil, notFound(err, "checklist")
	}
	if !s.authorizer.Can(actor, authz.ActionUpdate, checklist) {
		return nil, ErrForbidden
	}

	if err := validateStruct(input).ErrOrNil(); err != nil {
		return nil, err
	}

	var users []models.User
	if input.UserIDs != nil {
		users, err = assignableUsers(s.authorizer, s.users, actor, "user_ids", *input.UserIDs)
		if err != nil {
			return nil, err
		}
	}

	fields := map[string]any{}
	setTrimmed(fields, "name", input.Name)

	if err := s.checklists.Update(checklist, fields, buildTasks(input.Tasks), users); err != nil {
		return nil, fmt.Errorf("failed to update checklist: %w", err)
	}

	zerolog.Ctx(ctx).Info().Uint64("checklist_id", checklist.ID).Msg("checklist updated")
	return s.checklists.FindByID(checklist.ID)
}

// Delete removes a checklist with its tasks.
func (s *ChecklistService) Delete(ctx context.Context, actor *authz.Actor, id uint64) error {
	checklist, err := s.checklists.FindByID(id)
	if err != nil {
		return notFound(err, "checklist")
	}
	if !s.authorizer.Can(actor, authz.ActionDelete, checklist) {
		return ErrForbidden
	}

	if err := s.checklists.Delete(checklist.ID); err != nil {
		return notFound(err, "checklist")
	}

	zerolog.Ctx(ctx).Info().Uint64("checklist_id", checklist.ID).Msg("checklist deleted")
	return nil
}

// UpdateTaskInput changes a task. Nil fields are left as they are; an empty
// Deadline clears it.
type UpdateTaskInput struct {
	Name        *string `json:"name" form:"name" validate:"omitnil,required,max=255"`
	Description *string `json:"description" form:"description" validate:"omitnil,max=5000"`
	Deadline    *string `json:"deadline" form:"deadline" validate:"omitnil,date"`
	Done        *bool   `json:"done" form:"done"`
}

func (in UpdateTaskInput) onlyDone() bool {
	return in.Done != nil && in.Name == nil && in.Description == nil && in.Deadline == nil
}

// UpdateTask changes a task. Users assigned to the checklist may toggle the
// done flag; everything else needs permission to update the checklist.
func (s *ChecklistService) UpdateTask(ctx context.Context, actor *authz.Actor, id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.checklists.FindTask(id)
	if err != nil {
		return nil, notFound(err, "task")
	}

	allowed := s.authorizer.Can(actor, authz.ActionUpdate, &task.Checklist) ||
		(input.onlyDone() && task.Checklist.HasUser(actor.UserID))
	if !allowed {
		return nil, ErrForbidden
	}

	if err := validateStruct(input).ErrOrNil(); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	setTrimmed(fields, "name", input.Name)
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Deadline != nil {
		fields["deadline"] = parseDate(*input.Deadline)
	}
	if input.Done != nil {
		fields["done"] = *input.Done
	}

	if err := s.checklists.UpdateTask(task, fields); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.checklists.FindTask(task.ID)
}

// DeleteTask removes a task from its checklist and returns the removed task.
func (s *ChecklistService) DeleteTask(ctx context.Context, actor *authz.Actor, id uint64) (*models.Task, error) {
	task, err := s.checklists.FindTask(id)
	if err != nil {
		return nil, notFound(err, "task")
	}
	if !s.authorizer.Can(actor, authz.ActionUpdate, &task.Checklist) {
		return nil, ErrForbidden
	}

	if err := s.checklists.DeleteTask(task.ID); err != nil {
		return nil, notFound(err, "task")
	}
	return task, nil
}

// SuggestTasksInput is free text describing work to be done.
type SuggestTasksInput struct {
	Text string `json:"text" form:"text" validate:"required,max=10000"`
}

// SuggestTasks proposes tasks for a checklist from free text. Nothing is stored.
func (s *ChecklistService) SuggestTasks(ctx context.Context, actor *authz.Actor, input SuggestTasksInput) ([]SuggestedTask, error) {
	if !s.CanCreate(actor) && !s.authorizer.Can(actor, authz.ActionUpdate, authz.KindChecklists) {
		return nil, ErrForbidden
	}
	if err := validateStruct(input).ErrOrNil(); err != nil {
		return nil, err
	}
	if s.suggester == nil {
		return nil, ErrAIUnavailable
	}

	tasks, err := s.suggester.SuggestTasks(ctx, input.Text)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("task suggestion failed")
		return nil, fmt.Errorf("failed to suggest tasks: %w", err)
	}
	return tasks, nil
}

func buildTasks(inputs []TaskInput) []models.Task {
	if len(inputs) == 0 {
		return nil
	}
	tasks := make([]models.Task, len(inputs))
	for i, in := range inputs {
		tasks[i] = models.Task{
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			Deadline:    parseDate(in.Deadline),
		}
	}
	return tasks
}

// parseDate parses a validated YYYY-MM-DD date; empty yields nil.
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}
