package services

import (
	"sync"
	"testing"

	"github.com/artwork-tools/artwork-admin/internal/authz"
	"github.com/artwork-tools/artwork-admin/internal/notify"
	"github.com/artwork-tools/artwork-admin/internal/repository"
	"github.com/artwork-tools/artwork-admin/internal/storage"
	"github.com/artwork-tools/artwork-admin/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingNotifier captures queued messages synchronously.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (n *recordingNotifier) Enqueue(msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return nil
}

func (n *recordingNotifier) Messages() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.messages...)
}

type testEnv struct {
	db          *gorm.DB
	users       repository.UserRepository
	roles       repository.RoleRepository
	invitations repository.InvitationRepository
	departments repository.DepartmentRepository
	projects    repository.ProjectRepository
	checklists  repository.ChecklistRepository
	areas       repository.AreaRepository
	store       *storage.LocalStore
	storageRoot string
	notifier    *recordingNotifier
	policy      authz.Authorizer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	root := t.TempDir()
	store, err := storage.NewLocalStore(root, "/storage")
	require.NoError(t, err)

	return &testEnv{
		db:          db,
		users:       repository.NewUserRepository(db),
		roles:       repository.NewRoleRepository(db),
		invitations: repository.NewInvitationRepository(db),
		departments: repository.NewDepartmentRepository(db),
		projects:    repository.NewProjectRepository(db),
		checklists:  repository.NewChecklistRepository(db),
		areas:       repository.NewAreaRepository(db),
		store:       store,
		storageRoot: root,
		notifier:    &recordingNotifier{},
		policy:      authz.NewPolicy(),
	}
}

func (e *testEnv) invitationService() *InvitationService {
	return NewInvitationService(e.invitations, e.users, e.roles, e.departments, e.notifier, e.policy, "https://artwork.test")
}

func (e *testEnv) userService() *UserService {
	return NewUserService(e.users, e.roles, e.store, e.policy)
}

func (e *testEnv) departmentService() *DepartmentService {
	return NewDepartmentService(e.departments, e.users, e.store, e.policy)
}

func (e *testEnv) projectService() *ProjectService {
	return NewProjectService(e.projects, e.users, e.departments, e.policy)
}

func (e *testEnv) checklistService(suggester TaskSuggester) *ChecklistService {
	return NewChecklistService(e.checklists, e.projects, e.users, suggester, e.policy)
}

func (e *testEnv) areaService() *AreaService {
	return NewAreaService(e.areas, e.users, e.policy)
}

func ptr[T any](v T) *T {
	return &v
}
