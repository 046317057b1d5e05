package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavr/tasktrack-be/internal/auth"
	"github.com/kavr/tasktrack-be/internal/database"
	"github.com/kavr/tasktrack-be/internal/models"
	"github.com/kavr/tasktrack-be/internal/repository"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func samplePayload() *models.RegisterPayload {
	return &models.RegisterPayload{
		Email:       "test@example.com",
		Username:    "testuser",
		FirstName:   "Test",
		LastName:    "User",
		Password:    "testpassword123",
		PhoneNumber: 1234567890,
	}
}

func TestRegister(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(newTestDB(t)))

	user, err := svc.Register(context.Background(), samplePayload())
	require.NoError(t, err)

	assert.Positive(t, user.ID)
	assert.True(t, user.IsActive)
	// The stored digest is never the plaintext, but verifies against it.
	assert.NotEqual(t, "testpassword123", user.HashedPassword)
	assert.True(t, auth.VerifyPassword("testpassword123", user.HashedPassword))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(newTestDB(t)))
	ctx := context.Background()

	_, err := svc.Register(ctx, samplePayload())
	require.NoError(t, err)

	dup := samplePayload()
	dup.Email = "different@example.com"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(newTestDB(t)))
	ctx := context.Background()

	_, err := svc.Register(ctx, samplePayload())
	require.NoError(t, err)

	dup := samplePayload()
	dup.Username = "differentuser"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAuthenticate(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(newTestDB(t)))
	ctx := context.Background()

	registered, err := svc.Register(ctx, samplePayload())
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "testuser", "testpassword123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestAuthenticateFailures(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(newTestDB(t)))
	ctx := context.Background()

	_, err := svc.Register(ctx, samplePayload())
	require.NoError(t, err)

	// Unknown username and wrong password are indistinguishable.
	_, err = svc.Authenticate(ctx, "nonexistentuser", "somepassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "testuser", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func registerTestUser(t *testing.T, svc *UserService, username, email string) *models.User {
	t.Helper()
	payload := samplePayload()
	payload.Username = username
	payload.Email = email
	user, err := svc.Register(context.Background(), payload)
	require.NoError(t, err)
	return user
}

func intPtr(v int) *int { return &v }

func TestTaskCreateDefaultsIncomplete(t *testing.T) {
	db := newTestDB(t)
	userSvc := NewUserService(repository.NewUserRepository(db))
	taskSvc := NewTaskService(repository.NewTaskRepository(db))
	owner := registerTestUser(t, userSvc, "testuser", "test@example.com")

	desc := "This is a test task"
	task, err := taskSvc.Create(context.Background(), owner.ID, &models.CreateTaskPayload{
		Title:       "Test Task",
		Description: &desc,
		Priority:    intPtr(1),
	})
	require.NoError(t, err)

	assert.Positive(t, task.ID)
	assert.False(t, task.Complete)
	assert.Equal(t, owner.ID, task.UserID)
}

func TestTaskCompleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	userSvc := NewUserService(repository.NewUserRepository(db))
	taskSvc := NewTaskService(repository.NewTaskRepository(db))
	owner := registerTestUser(t, userSvc, "testuser", "test@example.com")
	ctx := context.Background()

	task, err := taskSvc.Create(ctx, owner.ID, &models.CreateTaskPayload{Title: "t", Priority: intPtr(1)})
	require.NoError(t, err)

	done, err := taskSvc.Complete(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, done.Complete)

	again, err := taskSvc.Complete(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, again.Complete)
}

func TestTaskOwnershipIndistinguishableFromMissing(t *testing.T) {
	db := newTestDB(t)
	userSvc := NewUserService(repository.NewUserRepository(db))
	taskSvc := NewTaskService(repository.NewTaskRepository(db))
	alice := registerTestUser(t, userSvc, "alice", "a@x.com")
	bob := registerTestUser(t, userSvc, "bob", "b@x.com")
	ctx := context.Background()

	task, err := taskSvc.Create(ctx, alice.ID, &models.CreateTaskPayload{Title: "t", Priority: intPtr(1)})
	require.NoError(t, err)

	// Someone else's task and a nonexistent id come back as the same error.
	_, err = taskSvc.Complete(ctx, bob.ID, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = taskSvc.Complete(ctx, bob.ID, 99999)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	err = taskSvc.Delete(ctx, bob.ID, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	// Alice's task is unmodified.
	list, err := taskSvc.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Complete)
}

func TestTaskDeleteRemovesFromList(t *testing.T) {
	db := newTestDB(t)
	userSvc := NewUserService(repository.NewUserRepository(db))
	taskSvc := NewTaskService(repository.NewTaskRepository(db))
	owner := registerTestUser(t, userSvc, "testuser", "test@example.com")
	ctx := context.Background()

	task, err := taskSvc.Create(ctx, owner.ID, &models.CreateTaskPayload{Title: "t", Priority: intPtr(1)})
	require.NoError(t, err)

	require.NoError(t, taskSvc.Delete(ctx, owner.ID, task.ID))

	list, err := taskSvc.ListForUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
