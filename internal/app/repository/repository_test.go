package repository

import (
	"testing"

	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

func createTestUser(t *testing.T, testDB *gorm.DB, username string) *model.User {
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, testDB *gorm.DB, name, category string, price float64) *model.Product {
	product := &model.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Category:    category,
		Stock:       10,
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}
