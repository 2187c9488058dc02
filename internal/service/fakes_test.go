package service

import (
	"fmt"
	"sort"

	"pokemedquest/internal/models"
	"pokemedquest/internal/repository"
)

// fakeUserStore is an in-memory UserStore
type fakeUserStore struct {
	users   map[string]*models.User
	nextID  int64
	getErr  error
	saveErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) CreateUser(username, passwordHash string, role models.Role) (*models.User, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if _, ok := f.users[username]; ok {
		return nil, fmt.Errorf("failed to create user %q: %w", username, repository.ErrDuplicateKey)
	}
	f.nextID++
	user := &models.User{ID: f.nextID, Username: username, PasswordHash: passwordHash, Role: role}
	f.users[username] = user
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetUserByUsername(username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetUserByID(id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, user := range f.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetAllUsers() ([]models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	var users []models.User
	for _, user := range f.users {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserStore) DeleteUserByUsername(username string) (bool, error) {
	if f.saveErr != nil {
		return false, f.saveErr
	}
	if _, ok := f.users[username]; !ok {
		return false, nil
	}
	delete(f.users, username)
	return true, nil
}

// fakeAvatarStore is an in-memory AvatarStore
type fakeAvatarStore struct {
	avatars   map[int64]*models.Avatar
	nextID    int64
	getErr    error
	updateErr error
	// updateMisses makes UpdateAvatar report no matched row
	updateMisses bool
	updates      int
}

func newFakeAvatarStore() *fakeAvatarStore {
	return &fakeAvatarStore{avatars: make(map[int64]*models.Avatar)}
}

func (f *fakeAvatarStore) CreateAvatar(avatar *models.Avatar) error {
	if _, ok := f.avatars[avatar.UserID]; ok {
		return fmt.Errorf("failed to create avatar: %w", repository.ErrDuplicateKey)
	}
	f.nextID++
	avatar.ID = f.nextID
	copied := *avatar
	f.avatars[avatar.UserID] = &copied
	return nil
}

func (f *fakeAvatarStore) GetAvatarByUserID(userID int64) (*models.Avatar, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	avatar, ok := f.avatars[userID]
	if !ok {
		return nil, nil
	}
	copied := *avatar
	return &copied, nil
}

func (f *fakeAvatarStore) GetAllAvatars() ([]models.Avatar, error) {
	var avatars []models.Avatar
	for _, avatar := range f.avatars {
		avatars = append(avatars, *avatar)
	}
	sort.Slice(avatars, func(i, j int) bool { return avatars[i].UserID < avatars[j].UserID })
	return avatars, nil
}

func (f *fakeAvatarStore) UpdateAvatar(avatar *models.Avatar) (bool, error) {
	f.updates++
	if f.updateErr != nil {
		return false, f.updateErr
	}
	if f.updateMisses {
		return false, nil
	}
	if _, ok := f.avatars[avatar.UserID]; !ok {
		return false, nil
	}
	copied := *avatar
	f.avatars[avatar.UserID] = &copied
	return true, nil
}

func (f *fakeAvatarStore) UpdateAvatarCosmetics(userID int64, name, color, accessory string) (bool, error) {
	avatar, ok := f.avatars[userID]
	if !ok {
		return false, nil
	}
	avatar.Name = name
	avatar.Color = color
	avatar.Accessory = accessory
	return true, nil
}

// fakeProgressStore is an in-memory ProgressStore
type fakeProgressStore struct {
	records   []models.ProgressRecord
	nextID    int64
	createErr error
}

func (f *fakeProgressStore) CreateProgress(record *models.ProgressRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	record.ID = f.nextID
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeProgressStore) GetUserProgress(userID int64) ([]models.ProgressRecord, error) {
	var records []models.ProgressRecord
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].UserID == userID {
			records = append(records, f.records[i])
		}
	}
	return records, nil
}

func (f *fakeProgressStore) GetAllProgress() ([]models.ProgressRecord, error) {
	return append([]models.ProgressRecord(nil), f.records...), nil
}
