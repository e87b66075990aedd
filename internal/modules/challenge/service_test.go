package challenge

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"hackhub/internal/domain"
	"hackhub/internal/repository"
)

func newChallengeService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Challenge{}))

	return NewService(repository.NewChallengeRepository(db))
}

func TestChallengeLifecycle(t *testing.T) {
	svc := newChallengeService(t)
	deadline := time.Now().UTC().Add(48 * time.Hour)

	ch, err := svc.Create(context.Background(), CreateChallengeRequest{
		Title:    "Data Track",
		Rules:    "Solo or team.",
		Deadline: deadline,
	})
	require.NoError(t, err)
	require.NotZero(t, ch.ID)

	newTitle := "Data for Good Track"
	updated, err := svc.Update(context.Background(), ch.ID, UpdateChallengeRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, "Solo or team.", updated.Rules, "unset fields stay put")

	require.NoError(t, svc.Delete(context.Background(), ch.ID))
	_, err = svc.GetByID(context.Background(), ch.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChallengeValidation(t *testing.T) {
	svc := newChallengeService(t)

	_, err := svc.Create(context.Background(), CreateChallengeRequest{Title: ""})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(context.Background(), 404, UpdateChallengeRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListActiveFiltersPastDeadlines(t *testing.T) {
	svc := newChallengeService(t)

	_, err := svc.Create(context.Background(), CreateChallengeRequest{
		Title:    "Open",
		Deadline: time.Now().UTC().Add(time.Hour),
	})
	require.NoError(t, err)

	closed, err := svc.Create(context.Background(), CreateChallengeRequest{
		Title:    "Closed",
		Deadline: time.Now().UTC().Add(time.Hour),
	})
	require.NoError(t, err)

	past := time.Now().UTC().Add(-time.Hour)
	_, err = svc.Update(context.Background(), closed.ID, UpdateChallengeRequest{Deadline: &past})
	require.NoError(t, err)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Open", active[0].Title)
}
