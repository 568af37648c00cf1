package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"github.com/phrazzld/event-calendar-api/internal/domain"
	"github.com/phrazzld/event-calendar-api/internal/store"
)

type assignment struct {
	taskID int64
	userID int64
}

// MemoryStore holds tasks, users and assignments in memory. The task and
// user stores it hands out share its data.
type MemoryStore struct {
	mu         sync.Mutex
	tasks      map[int64]domain.Task
	users      map[int64]domain.User
	links      map[assignment]struct{}
	nextTaskID int64
	nextUserID int64
	calls      map[string]int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[int64]domain.Task),
		users: make(map[int64]domain.User),
		links: make(map[assignment]struct{}),
		calls: make(map[string]int),
	}
}

// Tasks returns a store.TaskStore over m.
func (m *MemoryStore) Tasks() *MockTaskStore { return &MockTaskStore{mem: m} }

// Users returns a store.UserStore over m.
func (m *MemoryStore) Users() *MockUserStore { return &MockUserStore{mem: m} }

// Calls reports how many times the named store method ran, e.g. "tasks.List".
func (m *MemoryStore) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MemoryStore) enter(method string) func() {
	m.mu.Lock()
	m.calls[method]++
	return m.mu.Unlock
}

// MockTaskStore implements store.TaskStore over a MemoryStore.
// A non-nil Err is returned by every method.
type MockTaskStore struct {
	mem *MemoryStore
	Err error
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// WithTx returns the same store; transactions are not modelled.
func (s *MockTaskStore) WithTx(*sql.Tx) store.TaskStore { return s }

func (s *MockTaskStore) Create(_ context.Context, task *domain.Task) error {
	defer s.mem.enter("tasks.Create")()
	if s.Err != nil {
		return s.Err
	}
	if err := task.Validate(); err != nil {
		return store.ErrInvalidEntity
	}
	for _, existing := range s.mem.tasks {
		if existing.Title == task.Title {
			return store.ErrTitleExists
		}
	}
	if task.ID == 0 {
		s.mem.nextTaskID++
		for s.mem.tasks[s.mem.nextTaskID].ID != 0 {
			s.mem.nextTaskID++
		}
		task.ID = s.mem.nextTaskID
	} else if _, ok := s.mem.tasks[task.ID]; ok {
		return store.ErrTaskIDExists
	}
	if task.ID > s.mem.nextTaskID {
		s.mem.nextTaskID = task.ID
	}
	s.mem.tasks[task.ID] = *task
	return nil
}

func (s *MockTaskStore) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	defer s.mem.enter("tasks.GetByID")()
	if s.Err != nil {
		return nil, s.Err
	}
	task, ok := s.mem.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

func (s *MockTaskStore) GetByTitle(_ context.Context, title string) (*domain.Task, error) {
	defer s.mem.enter("tasks.GetByTitle")()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, task := range s.mem.tasks {
		if task.Title == title {
			return &task, nil
		}
	}
	return nil, store.ErrTaskNotFound
}

func (s *MockTaskStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	defer s.mem.enter("tasks.ExistsByID")()
	if s.Err != nil {
		return false, s.Err
	}
	_, ok := s.mem.tasks[id]
	return ok, nil
}

func (s *MockTaskStore) ExistsByTitle(_ context.Context, title string) (bool, error) {
	defer s.mem.enter("tasks.ExistsByTitle")()
	if s.Err != nil {
		return false, s.Err
	}
	for _, task := range s.mem.tasks {
		if task.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (s *MockTaskStore) List(_ context.Context) ([]domain.Task, error) {
	defer s.mem.enter("tasks.List")()
	return s.filter(func(domain.Task) bool { return true })
}

func (s *MockTaskStore) SearchByTitle(_ context.Context, query string) ([]domain.Task, error) {
	defer s.mem.enter("tasks.SearchByTitle")()
	q := strings.ToLower(query)
	return s.filter(func(t domain.Task) bool {
		return strings.Contains(strings.ToLower(t.Title), q)
	})
}

func (s *MockTaskStore) ListByState(_ context.Context, state domain.TaskState) ([]domain.Task, error) {
	defer s.mem.enter("tasks.ListByState")()
	return s.filter(func(t domain.Task) bool { return t.State == state })
}

func (s *MockTaskStore) ListDueBy(_ context.Context, date domain.Date) ([]domain.Task, error) {
	defer s.mem.enter("tasks.ListDueBy")()
	return s.filter(func(t domain.Task) bool { return t.IsDueBy(date) })
}

func (s *MockTaskStore) ListByUser(_ context.Context, userID int64) ([]domain.Task, error) {
	defer s.mem.enter("tasks.ListByUser")()
	return s.filter(func(t domain.Task) bool {
		_, ok := s.mem.links[assignment{taskID: t.ID, userID: userID}]
		return ok
	})
}

func (s *MockTaskStore) UpdateState(_ context.Context, id int64, state domain.TaskState) error {
	defer s.mem.enter("tasks.UpdateState")()
	if s.Err != nil {
		return s.Err
	}
	task, ok := s.mem.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	task.State = state
	s.mem.tasks[id] = task
	return nil
}

func (s *MockTaskStore) UpdateDeadline(_ context.Context, id int64, deadline domain.Date) error {
	defer s.mem.enter("tasks.UpdateDeadline")()
	if s.Err != nil {
		return s.Err
	}
	task, ok := s.mem.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	task.Deadline = deadline
	s.mem.tasks[id] = task
	return nil
}

func (s *MockTaskStore) Delete(_ context.Context, id int64) error {
	defer s.mem.enter("tasks.Delete")()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.mem.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	s.deleteTask(id)
	return nil
}

func (s *MockTaskStore) DeleteByState(_ context.Context, state domain.TaskState) (int64, error) {
	defer s.mem.enter("tasks.DeleteByState")()
	if s.Err != nil {
		return 0, s.Err
	}
	var n int64
	for id, task := range s.mem.tasks {
		if task.State == state {
			s.deleteTask(id)
			n++
		}
	}
	return n, nil
}

func (s *MockTaskStore) Assign(_ context.Context, taskID, userID int64) error {
	defer s.mem.enter("tasks.Assign")()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.mem.tasks[taskID]; !ok {
		return store.ErrInvalidEntity
	}
	if _, ok := s.mem.users[userID]; !ok {
		return store.ErrInvalidEntity
	}
	key := assignment{taskID: taskID, userID: userID}
	if _, ok := s.mem.links[key]; ok {
		return store.ErrAlreadyAssigned
	}
	s.mem.links[key] = struct{}{}
	return nil
}

func (s *MockTaskStore) IsAssigned(_ context.Context, taskID, userID int64) (bool, error) {
	defer s.mem.enter("tasks.IsAssigned")()
	if s.Err != nil {
		return false, s.Err
	}
	_, ok := s.mem.links[assignment{taskID: taskID, userID: userID}]
	return ok, nil
}

// deleteTask removes a task and cascades to its assignments. Caller holds the lock.
func (s *MockTaskStore) deleteTask(id int64) {
	delete(s.mem.tasks, id)
	for key := range s.mem.links {
		if key.taskID == id {
			delete(s.mem.links, key)
		}
	}
}

// filter returns matching tasks ordered by id. Caller holds the lock.
func (s *MockTaskStore) filter(keep func(domain.Task) bool) ([]domain.Task, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	tasks := make([]domain.Task, 0, len(s.mem.tasks))
	for _, task := range s.mem.tasks {
		if keep(task) {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// MockUserStore implements store.UserStore over a MemoryStore.
// A non-nil Err is returned by every method.
type MockUserStore struct {
	mem *MemoryStore
	Err error
}

var _ store.UserStore = (*MockUserStore)(nil)

// WithTx returns the same store; transactions are not modelled.
func (s *MockUserStore) WithTx(*sql.Tx) store.UserStore { return s }

func (s *MockUserStore) Create(_ context.Context, user *domain.User) error {
	defer s.mem.enter("users.Create")()
	if s.Err != nil {
		return s.Err
	}
	if err := user.Validate(); err != nil {
		return store.ErrInvalidEntity
	}
	if s.emailTaken(user.Email, 0) {
		return store.ErrEmailExists
	}
	if user.ID == 0 {
		s.mem.nextUserID++
		for s.mem.users[s.mem.nextUserID].ID != 0 {
			s.mem.nextUserID++
		}
		user.ID = s.mem.nextUserID
	} else if _, ok := s.mem.users[user.ID]; ok {
		return store.ErrUserIDExists
	}
	if user.ID > s.mem.nextUserID {
		s.mem.nextUserID = user.ID
	}
	s.mem.users[user.ID] = *user
	return nil
}

func (s *MockUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	defer s.mem.enter("users.GetByID")()
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.mem.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &user, nil
}

func (s *MockUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	defer s.mem.enter("users.GetByEmail")()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, user := range s.mem.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *MockUserStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	defer s.mem.enter("users.ExistsByID")()
	if s.Err != nil {
		return false, s.Err
	}
	_, ok := s.mem.users[id]
	return ok, nil
}

func (s *MockUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	defer s.mem.enter("users.ExistsByEmail")()
	if s.Err != nil {
		return false, s.Err
	}
	return s.emailTaken(email, 0), nil
}

func (s *MockUserStore) List(_ context.Context) ([]domain.User, error) {
	defer s.mem.enter("users.List")()
	return s.filter(func(domain.User) bool { return true })
}

func (s *MockUserStore) ListByTask(_ context.Context, taskID int64) ([]domain.User, error) {
	defer s.mem.enter("users.ListByTask")()
	return s.filter(func(u domain.User) bool {
		_, ok := s.mem.links[assignment{taskID: taskID, userID: u.ID}]
		return ok
	})
}

func (s *MockUserStore) Update(_ context.Context, user *domain.User) error {
	defer s.mem.enter("users.Update")()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.mem.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	if s.emailTaken(user.Email, user.ID) {
		return store.ErrEmailExists
	}
	s.mem.users[user.ID] = *user
	return nil
}

func (s *MockUserStore) Delete(_ context.Context, id int64) error {
	defer s.mem.enter("users.Delete")()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.mem.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.mem.users, id)
	for key := range s.mem.links {
		if key.userID == id {
			delete(s.mem.links, key)
		}
	}
	return nil
}

// emailTaken reports whether a user other than exceptID has email. Caller holds the lock.
func (s *MockUserStore) emailTaken(email string, exceptID int64) bool {
	for _, user := range s.mem.users {
		if user.Email == email && user.ID != exceptID {
			return true
		}
	}
	return false
}

// filter returns matching users ordered by id. Caller holds the lock.
func (s *MockUserStore) filter(keep func(domain.User) bool) ([]domain.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	users := make([]domain.User, 0, len(s.mem.users))
	for _, user := range s.mem.users {
		if keep(user) {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}
