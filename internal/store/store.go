// Package store persists registered users and their watchlists.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bearwatch/internal/models"
	"bearwatch/internal/watchlist"
)

// ErrUserNotFound is returned when a watchlist operation targets a username
// that was never connected.
var ErrUserNotFound = errors.New("user not found")

// Store is the user repository consumed by the engine and the HTTP layer.
type Store interface {
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, username string) (*models.User, error)
	UpsertUser(ctx context.Context, username, chatID string) (*models.User, error)
	AppendWatchlist(ctx context.Context, username, keyword string) (*models.User, bool, error)
}

// SQLiteStore keeps users in a sqlite database through gorm.
type SQLiteStore struct {
	db *gorm.DB
}

func Open(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, fmt.Errorf("migrate users: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// GetAllUsers returns every registered user sorted by username, so scans
// process users in a stable order.
func (s *SQLiteStore) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", username, err)
	}
	return &user, nil
}

// UpsertUser creates the user on first connect and updates the chat id on
// reconnect. The watchlist is never touched here.
func (s *SQLiteStore) UpsertUser(ctx context.Context, username, chatID string) (*models.User, error) {
	user, err := s.GetUser(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		user = &models.User{
			Username:  username,
			ChatID:    chatID,
			Watchlist: []string{},
		}
		if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
			return nil, fmt.Errorf("create user %s: %w", username, err)
		}
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	user.ChatID = chatID
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user %s: %w", username, err)
	}
	return user, nil
}

// AppendWatchlist adds a keyword to the user's watchlist unless an entry
// already matches it case-insensitively. The bool result reports whether the
// keyword was actually added.
func (s *SQLiteStore) AppendWatchlist(ctx context.Context, username, keyword string) (*models.User, bool, error) {
	user, err := s.GetUser(ctx, username)
	if err != nil {
		return nil, false, err
	}

	if watchlist.ContainsFold(user.Watchlist, keyword) {
		return user, false, nil
	}

	user.Watchlist = append(user.Watchlist, keyword)
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, false, fmt.Errorf("update watchlist for %s: %w", username, err)
	}
	return user, true, nil
}

// Memory is an in-memory Store used in tests and as a fallback when no
// database path is configured.
type Memory struct {
	users map[string]*models.User
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]*models.User)}
}

func (m *Memory) GetAllUsers(_ context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (m *Memory) GetUser(_ context.Context, username string) (*models.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *Memory) UpsertUser(_ context.Context, username, chatID string) (*models.User, error) {
	user, ok := m.users[username]
	if !ok {
		user = &models.User{Username: username, Watchlist: []string{}}
		m.users[username] = user
	}
	user.ChatID = chatID
	copied := *user
	return &copied, nil
}

func (m *Memory) AppendWatchlist(_ context.Context, username, keyword string) (*models.User, bool, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, false, ErrUserNotFound
	}
	if watchlist.ContainsFold(user.Watchlist, keyword) {
		copied := *user
		return &copied, false, nil
	}
	user.Watchlist = append(user.Watchlist, keyword)
	copied := *user
	return &copied, true, nil
}
