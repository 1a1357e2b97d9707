package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/adanyl0v/go-errands/internal/generation"
	"github.com/adanyl0v/go-errands/internal/identity"
	"github.com/adanyl0v/go-errands/internal/models"
	"github.com/adanyl0v/go-errands/internal/storage"
)

var errStoreDown = errors.New("store is down")

// memStore is an in-memory storage.Store. WithinTx snapshots the data
// and restores it when fn fails.
type memStore struct {
	mu            sync.Mutex
	users         map[string]models.User
	tasks         map[int64]models.Task
	bids          map[int64]models.Bid
	notifications []models.Notification
	lastID        int64

	upsertUserErr         error
	insertNotificationErr error
	selectTasksErr        error
}

var _ storage.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users: make(map[string]models.User),
		tasks: make(map[int64]models.Task),
		bids:  make(map[int64]models.Bid),
	}
}

func (s *memStore) nextID() int64 {
	s.lastID++
	return s.lastID
}

func (s *memStore) WithinTx(_ context.Context, fn func(tx storage.Store) error) error {
	s.mu.Lock()
	users := make(map[string]models.User, len(s.users))
	for k, v := range s.users {
		users[k] = v
	}
	tasks := make(map[int64]models.Task, len(s.tasks))
	for k, v := range s.tasks {
		tasks[k] = v
	}
	bids := make(map[int64]models.Bid, len(s.bids))
	for k, v := range s.bids {
		bids[k] = v
	}
	notifications := append([]models.Notification(nil), s.notifications...)
	s.mu.Unlock()

	err := fn(s)
	if err != nil {
		s.mu.Lock()
		s.users, s.tasks, s.bids, s.notifications = users, tasks, bids, notifications
		s.mu.Unlock()
	}
	return err
}

func (s *memStore) UpsertUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upsertUserErr != nil {
		return s.upsertUserErr
	}
	s.users[user.ID] = *user
	return nil
}

func (s *memStore) InsertTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[task.PosterID]; !ok {
		return storage.ErrReferenceNotFound
	}
	task.ID = s.nextID()
	s.tasks[task.ID] = *task
	return nil
}

func (s *memStore) view(task models.Task) *models.TaskView {
	return &models.TaskView{Task: task, PosterEmail: s.users[task.PosterID].Email}
}

func (s *memStore) SelectTasks(context.Context) ([]*models.TaskView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectTasksErr != nil {
		return nil, s.selectTasksErr
	}
	tasks := make([]*models.TaskView, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, s.view(task))
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (s *memStore) SelectTask(_ context.Context, id int64) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &task, nil
}

func (s *memStore) SelectTaskView(_ context.Context, id int64) (*models.TaskView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.view(task), nil
}

func (s *memStore) AssignTask(_ context.Context, params storage.AssignTaskParams) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[params.TaskID]
	if !ok || task.Status != models.TaskStatusOpen {
		return nil, storage.ErrConflict
	}
	volunteerID, bidID := params.VolunteerID, params.BidID
	task.Status = models.TaskStatusAssigned
	task.VolunteerID = &volunteerID
	task.AcceptedBidID = &bidID
	s.tasks[task.ID] = task
	return &task, nil
}

func (s *memStore) DeleteTask(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.tasks, id)
	for bidID, bid := range s.bids {
		if bid.TaskID == id {
			delete(s.bids, bidID)
		}
	}
	return nil
}

func (s *memStore) InsertBid(_ context.Context, bid *models.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[bid.TaskID]; !ok {
		return storage.ErrReferenceNotFound
	}
	bid.ID = s.nextID()
	s.bids[bid.ID] = *bid
	return nil
}

func (s *memStore) SelectBid(_ context.Context, id int64) (*models.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bid, ok := s.bids[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &bid, nil
}

func (s *memStore) SelectBidsByTaskID(_ context.Context, taskID int64) ([]*models.BidView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bids := make([]*models.BidView, 0)
	for _, bid := range s.bids {
		if bid.TaskID == taskID {
			bids = append(bids, &models.BidView{Bid: bid, BidderEmail: s.users[bid.BidderID].Email})
		}
	}
	sort.Slice(bids, func(i, j int) bool { return bids[i].ID < bids[j].ID })
	return bids, nil
}

func (s *memStore) InsertNotification(_ context.Context, notification *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertNotificationErr != nil {
		return s.insertNotificationErr
	}
	notification.ID = s.nextID()
	s.notifications = append(s.notifications, *notification)
	return nil
}

func (s *memStore) notificationsFor(userID string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type fakeIntrospector struct {
	identities map[string]*identity.Identity
	err        error
}

func (f *fakeIntrospector) Introspect(_ context.Context, token string) (*identity.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	id, ok := f.identities[token]
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	return id, nil
}

type fakeAccounts struct {
	emails map[string]bool
	err    error
}

func (f *fakeAccounts) CreateUser(_ context.Context, email, _ string) (*identity.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.emails[email] {
		return nil, identity.ErrUserAlreadyExists
	}
	f.emails[email] = true
	return &identity.Identity{ID: "id-" + email, Email: email}, nil
}

type fakeGenerator struct {
	prompt string
	text   string
	err    error
}

var _ generation.Generator = (*fakeGenerator)(nil)

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}
