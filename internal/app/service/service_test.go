package service

import (
	"sync"
	"testing"

	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

func createUser(t *testing.T, testDB *gorm.DB, username string) *model.User {
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createProduct(t *testing.T, testDB *gorm.DB, name, category string, price float64) *model.Product {
	product := &model.Product{
		Name:        name,
		Description: name,
		Price:       price,
		Category:    category,
		Stock:       10,
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

type feedEvent struct {
	Type    string
	Payload interface{}
}

type recordingFeed struct {
	mu     sync.Mutex
	events []feedEvent
}

func (f *recordingFeed) Broadcast(eventType string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, feedEvent{Type: eventType, Payload: payload})
}

func (f *recordingFeed) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}
