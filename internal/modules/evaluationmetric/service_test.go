package evaluationmetric

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"hackhub/internal/domain"
	"hackhub/internal/repository"
)

func newMetricService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.EvaluationMetric{}))

	return NewService(repository.NewEvaluationMetricRepository(db))
}

func TestMetricLifecycle(t *testing.T) {
	svc := newMetricService(t)

	m, err := svc.Create(context.Background(), CreateMetricRequest{Metric: "  Technical depth  "})
	require.NoError(t, err)
	require.NotZero(t, m.ID)
	assert.Equal(t, "Technical depth", m.Metric, "labels are stored trimmed")
	assert.Nil(t, m.AccountID)

	got, err := svc.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Metric, got.Metric)

	require.NoError(t, svc.Delete(context.Background(), m.ID))
	_, err = svc.GetByID(context.Background(), m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMetricValidation(t *testing.T) {
	svc := newMetricService(t)

	_, err := svc.Create(context.Background(), CreateMetricRequest{Metric: "   "})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	err = svc.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMetricListByAccount(t *testing.T) {
	svc := newMetricService(t)
	owner := int64(7)

	_, err := svc.Create(context.Background(), CreateMetricRequest{Metric: "Impact", AccountID: &owner})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateMetricRequest{Metric: "Presentation"})
	require.NoError(t, err)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListByAccount(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Impact", mine[0].Metric)
}
