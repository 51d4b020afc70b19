package integration

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"task_tracker/internal/domain"
	"task_tracker/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	applyMigrations(t, db)
	return db
}

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "migrations")
	files, err := os.ReadDir(migDir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(migDir, name))
		require.NoError(t, err)
		_, err = db.Exec(context.Background(), string(b))
		require.NoError(t, err, "apply migration %s", name)
	}
}

func createUser(t *testing.T, repo *repository.UserRepository) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:             uuid.NewString(),
		Email:          uuid.NewString() + "@example.com",
		Name:           "Integration",
		HashedPassword: "x",
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository(t *testing.T) {
	db := openDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	u := createUser(t, repo)

	got, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	dup := *u
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, repo.Create(ctx, &dup), repository.ErrDuplicate)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_CRUD(t *testing.T) {
	db := openDB(t)
	users := repository.NewUserRepository(db)
	repo := repository.NewTaskRepository(db)
	ctx := context.Background()

	owner := createUser(t, users)
	other := createUser(t, users)

	now := time.Now().UTC().Truncate(time.Microsecond)
	due := "2030-01-01"
	cat := "work"
	first := &domain.Task{
		ID: uuid.NewString(), UserID: owner.ID, Title: "first", Priority: domain.PriorityHigh,
		DueDate: &due, Category: &cat, Tags: []string{"a", "b"}, CreatedAt: now, UpdatedAt: now,
	}
	second := &domain.Task{
		ID: uuid.NewString(), UserID: owner.ID, Title: "second", Priority: "Someday",
		CreatedAt: now.Add(time.Second), UpdatedAt: now.Add(time.Second),
	}
	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, second))

	list, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Title)
	assert.Equal(t, []string{"a", "b"}, list[0].Tags)
	assert.Equal(t, domain.Priority("Someday"), list[1].Priority, "unrecognised priority survives a round trip")
	assert.NotNil(t, list[1].Tags)
	assert.Empty(t, list[1].Tags)

	// owner scoping
	_, err = repo.GetByID(ctx, other.ID, first.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, other.ID, first.ID), repository.ErrNotFound)

	hijack := *first
	hijack.UserID = other.ID
	assert.ErrorIs(t, repo.Update(ctx, &hijack), repository.ErrNotFound)

	first.Completed = true
	first.Title = "first, done"
	first.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, first))

	got, err := repo.GetByID(ctx, owner.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, "first, done", got.Title)
	assert.True(t, got.CreatedAt.Equal(now))

	require.NoError(t, repo.Delete(ctx, owner.ID, first.ID))
	_, err = repo.GetByID(ctx, owner.ID, first.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAuditRepository(t *testing.T) {
	db := openDB(t)
	repo := repository.NewAuditRepository(db)
	ctx := context.Background()
	userID := uuid.NewString()

	for _, action := range []string{domain.AuditActionSignup, domain.AuditActionLogin} {
		entry := &domain.AuditLog{
			UserID: userID, Action: action, Category: domain.AuditCategoryAuth,
			Details: map[string]interface{}{"k": "v"},
		}
		require.NoError(t, repo.Create(ctx, entry))
		assert.NotZero(t, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	}
	require.NoError(t, repo.Create(ctx, &domain.AuditLog{UserID: userID, Action: domain.AuditActionLogout, Category: domain.AuditCategoryAuth}))

	logs, err := repo.ListByUser(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, domain.AuditActionLogout, logs[0].Action)
	assert.NotNil(t, logs[0].Details)
	assert.Equal(t, domain.AuditActionLogin, logs[1].Action)
	assert.Equal(t, "v", logs[1].Details["k"])

	none, err := repo.ListByUser(ctx, uuid.NewString(), 10)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
