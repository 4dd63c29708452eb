package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/habitfam/family-habits-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

// The debit must be conditional on the current balance so that two
// concurrent redemptions cannot overdraw.
func TestRewardRepository_Redeem_ConditionalDebit(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRewardRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `users` SET `points`=points - ?,`updated_at`=? WHERE id = ? AND points >= ?")).
		WithArgs(20, sqlmock.AnyArg(), uint64(7), 20).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `reward_redemptions`")).
		WithArgs(uint64(7), uint64(3), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	redemption := &models.RewardRedemption{
		UserID:     7,
		RewardID:   3,
		RedeemedAt: time.Now(),
	}
	err := repo.Redeem(redemption, 7, 20)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRewardRepository_Redeem_InsufficientBalance(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRewardRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE `users` SET `points`=points - ?,`updated_at`=? WHERE id = ? AND points >= ?")).
		WithArgs(20, sqlmock.AnyArg(), uint64(7), 20).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	redemption := &models.RewardRedemption{
		UserID:     7,
		RewardID:   3,
		RedeemedAt: time.Now(),
	}
	err := repo.Redeem(redemption, 7, 20)
	require.ErrorIs(t, err, ErrInsufficientPoints)
	require.NoError(t, mock.ExpectationsWereMet())
}
