package services

import (
	"testing"
	"time"

	"github.com/habitfam/family-habits-api/internal/models"
	"github.com/habitfam/family-habits-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type rewardFixture struct {
	db      *gorm.DB
	service *RewardService
	child   *models.User
	reward  *models.Reward
}

// setupRewardFixture builds a family with one child holding 30 points and a
// 20-point reward.
func setupRewardFixture(t *testing.T) rewardFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Family{},
		&models.Reward{},
		&models.RewardRedemption{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	family := &models.Family{Name: "Fixture Family"}
	require.NoError(t, db.Create(family).Error)

	childRole := models.RoleChild
	child := &models.User{
		SubjectID: "sub-child",
		Email:     "child@example.com",
		Role:      &childRole,
		FamilyID:  &family.ID,
		Points:    30,
	}
	require.NoError(t, db.Create(child).Error)

	reward := &models.Reward{
		FamilyID:       family.ID,
		Title:          "Ice cream",
		PointsRequired: 20,
		Emoji:          "🍦",
	}
	require.NoError(t, db.Create(reward).Error)

	userRepo := repository.NewUserRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	service := NewRewardService(rewardRepo, userRepo)

	return rewardFixture{db: db, service: service, child: child, reward: reward}
}

func TestRewardService_Redeem_StampsClock(t *testing.T) {
	f := setupRewardFixture(t)

	redeemedAt := time.Date(2024, 1, 1, 16, 30, 0, 0, time.Local)
	f.service.now = func() time.Time { return redeemedAt }

	redemption, err := f.service.Redeem("sub-child", f.reward.ID)
	require.NoError(t, err)
	require.True(t, redemption.RedeemedAt.Equal(redeemedAt))

	var stored models.RewardRedemption
	require.NoError(t, f.db.First(&stored, redemption.ID).Error)
	require.True(t, stored.RedeemedAt.Equal(redeemedAt))

	var child models.User
	require.NoError(t, f.db.First(&child, f.child.ID).Error)
	require.Equal(t, 10, child.Points)
}
