package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"alerta360-backend/internal/domain"
)

// testDB opens an in-memory sqlite database with the same schema and
// error translation as the production postgres connection. SQLite
// supports the partial unique index used for district chats, so the
// uniqueness tests exercise the real constraint.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Chat{},
		&domain.ChatMember{},
		&domain.Message{},
		&domain.Incident{},
	))

	require.NoError(t, db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_chats_active_district
		    ON chats (district_name)
		    WHERE chat_type = 'district_group' AND is_active
	`).Error)

	return db
}
