package services

import (
	"context"
	"errors"
	"testing"

	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSuggester struct {
	tasks []SuggestedTask
	err   error
}

func (s stubSuggester) SuggestTasks(context.Context, string) ([]SuggestedTask, error) {
	return s.tasks, s.err
}

func createProject(t *testing.T, env *testEnv) *models.Project {
	t.Helper()
	project := &models.Project{Name: "Hamlet"}
	require.NoError(t, env.projects.Create(project, nil, nil))
	return project
}

func TestChecklistService_Create(t *testing.T) {
	env := newTestEnv(t)
	svc := env.checklistService(nil)
	manager := testutil.CreateUser(t, env.db, []string{"manager"})
	crew := testutil.CreateUser(t, env.db, []string{"user"})
	project := createProject(t, env)

	checklist, err := svc.Create(context.Background(), testutil.Actor(t, env.db, manager), ChecklistInput{
		Name:      ptr("Load-in"),
		ProjectID: project.ID,
		Tasks: []TaskInput{
			{Name: "Hang lights", Deadline: "2026-11-02"},
			{Name: "Focus", Description: "After rigging"},
		},
		UserIDs: &[]uint64{crew.ID},
	})
	require.NoError(t, err)

	loaded, err := svc.Get(context.Background(), testutil.Actor(t, env.db, crew), checklist.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Tasks, 2)
	assert.Equal(t, "Hang lights", loaded.Tasks[0].Name)
	require.NotNil(t, loaded.Tasks[0].Deadline)
	assert.Equal(t, "2026-11-02", loaded.Tasks[0].Deadline.Format(dateLayout))
	assert.Nil(t, loaded.Tasks[1].Deadline)
	require.Len(t, loaded.Users, 1)

	assigned, err := svc.Assigned(context.Background(), testutil.Actor(t, env.db, crew))
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, checklist.ID, assigned[0].ID)
}

func TestChecklistService_Create_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := env.checklistService(nil)
	actor := testutil.Actor(t, env.db, testutil.CreateUser(t, env.db, []string{"manager"}))

	_, err := svc.Create(context.Background(), actor, ChecklistInput{
		ProjectID: 9999,
		Tasks:     []TaskInput{{Name: "", Deadline: "tomorrow"}},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "project_id")
	assert.Contains(t, verr.Fields, "tasks.0.name")
	assert.Contains(t, verr.Fields, "tasks.0.deadline")
}

func TestChecklistService_Capabilities(t *testing.T) {
	env := newTestEnv(t)
	svc := env.checklistService(nil)
	manager := testutil.Actor(t, env.db, testutil.CreateUser(t, env.db, []string{"manager"}))
	plain := testutil.Actor(t, env.db, testutil.CreateUser(t, env.db, []string{"user"}))
	outsider := testutil.Actor(t, env.db, testutil.CreateUser(t, env.db, nil))
	project := createProject(t, env)

	checklist, err := svc.Create(context.Background(), manager, ChecklistInput{Name: ptr("Strike"), ProjectID: project.ID})
	require.NoError(t, err)

	assert.False(t, svc.CanCreate(plain))
	_, err = svc.Create(context.Background(), plain, ChecklistInput{Name: ptr("Strike"), ProjectID: project.ID})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(context.Background(), plain, checklist.ID)
	assert.NoError(t, err)
	_, err = svc.Get(context.Background(), outsider, checklist.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(context.Background(), plain, checklist.ID, ChecklistInput{Name: ptr("Other")})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), manager, checklist.ID), ErrForbidden)
}

func TestChecklistService_Update_AppendsTasks(t *testing.T) {
	env := newTestEnv(t)
	svc := env.checklistService(nil)
	actor := testutil.Actor(t, env.db, testutil.CreateUser(t, env.db, []string{"manager"}))
	project := createProject(t, env)

	checklist, err := svc.Create(context.Background(), actor, ChecklistInput{
		Name:      ptr("Load-in"),
		ProjectID: project.ID,
		Tasks:     []TaskInput{{Name: "Hang lights"}},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), actor, checklist.ID, ChecklistInput{
		Name:  ptr("Load-in day 1"),
		Tasks: []TaskInput{{Name: "Focus"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Load-in day 1", updated.Name)
	assert.Len(t, updated.Tasks, 2)
}

func TestChecklistService_UpdateTask(t *testing.T) {
	env := newTestEnv(t)
	svc := env.checklistService(nil)
	manager := testutil.CreateUser(t, env.db, []string{"manager"})
	crew := testutil.CreateUser(t, env.db, []string{"user"})
	project := createProject(t, env)

	checklist, err := svc.Create(context.Background(), testutil.Actor(t, env.db, manager), ChecklistInput{
		Name:      ptr("Load-in"),
		ProjectID: project.ID,
		Tasks:     []TaskInput{{Name: "Hang lights", Deadline: "2026-11-02"}},
		UserIDs:   &[]uint64{crew.ID},
	})
	require.NoError(t, err)
	loaded, err := env.checklists.FindByID(checklist.ID)
	require.NoError(t, err)
	taskID := loaded.Tasks[0].ID
	crewActor := testutil.Actor(t, env.db, crew)

	task, err := svc.UpdateTask(context.Background(), crewActor, taskID, UpdateTaskInput{Done: ptr(true)})
	require.NoError(t, err)
	assert.True(t, task.Done)

	_, err = svc.UpdateTask(context.Background(), crewActor, taskID, UpdateTaskInput{Name: ptr("Renamed")})
	assert.ErrorIs(t, err, ErrForbidden)

	task, err = svc.UpdateTask(context.Background(), testutil.Actor(t, env.db, manager), taskID, UpdateTaskInput{
		Name:     ptr("Hang and focus"),
		Deadline: ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Hang and focus", task.Name)
	assert.Nil(t, task.Deadline)
	assert.True(t, task.Done)

	_, err = svc.DeleteTask(context.Background(), crewActor, taskID)
	assert.ErrorIs(t, err, ErrForbidden)

	deleted, err := svc.DeleteTask(context.Background(), testutil.Actor(t, env.db, manager), taskID)
	require.NoError(t, err)
	assert.Equal(t, checklist.ID, deleted.ChecklistID)

	_, err = svc.DeleteTask(context.Background(), testutil.Actor(t, env.db, manager), taskID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChecklistService_SuggestTasks(t *testing.T) {
	env := newTestEnv(t)
	actor := testutil.Actor(t, env.db, testutil.CreateUser(t, env.db, []string{"manager"}))
	input := SuggestTasksInput{Text: "Rig the lights on Monday, then focus."}

	_, err := env.checklistService(nil).SuggestTasks(context.Background(), actor, input)
	assert.ErrorIs(t, err, ErrAIUnavailable)

	want := []SuggestedTask{{Name: "Rig lights"}, {Name: "Focus"}}
	got, err := env.checklistService(stubSuggester{tasks: want}).SuggestTasks(context.Background(), actor, input)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = env.checklistService(stubSuggester{err: errors.New("boom")}).SuggestTasks(context.Background(), actor, input)
	assert.Error(t, err)

	_, err = env.checklistService(stubSuggester{}).SuggestTasks(context.Background(), actor, SuggestTasksInput{})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	plain := testutil.Actor(t, env.db, testutil.CreateUser(t, env.db, []string{"user"}))
	_, err = env.checklistService(stubSuggester{}).SuggestTasks(context.Background(), plain, input)
	assert.ErrorIs(t, err, ErrForbidden)
}
