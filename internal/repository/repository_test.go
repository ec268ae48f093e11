package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/trackforge/internal/database"
	"github.com/iliyamo/trackforge/internal/model"
	"github.com/iliyamo/trackforge/internal/utils"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(newTestDB(t))

	exists, err := users.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	id, err := users.Create(ctx, "alice", "alice@example.com", "pw123456", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	exists, err = users.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	u, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "pw123456", u.Password)
	assert.True(t, utils.VerifyPassword(u.Password, "pw123456"))

	byID, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, u, byID)
}

func TestUserRepo_NotFound(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(newTestDB(t))

	_, err := users.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = users.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = users.UpdatePassword(ctx, 42, "whatever", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepo_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(newTestDB(t))

	id, err := users.Create(ctx, "bob", "", "old-password", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.UpdatePassword(ctx, id, "new-password", bcrypt.MinCost))

	u, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(u.Password, "new-password"))
	assert.False(t, utils.VerifyPassword(u.Password, "old-password"))
}

func TestStudySessionRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepo(db)
	sessions := NewStudySessionRepo(db)

	aliceID, err := users.Create(ctx, "alice", "", "pw", bcrypt.MinCost)
	require.NoError(t, err)
	bobID, err := users.Create(ctx, "bob", "", "pw", bcrypt.MinCost)
	require.NoError(t, err)

	s := &model.StudySession{UserID: aliceID, Subject: "Math", Hours: "2", Dates: "2024-01-01", Notes: "review"}
	require.NoError(t, sessions.Create(ctx, s))
	assert.NotZero(t, s.ID)
	other := &model.StudySession{UserID: bobID, Subject: "Art", Hours: "1.5", Dates: "soon", Notes: ""}
	require.NoError(t, sessions.Create(ctx, other))

	got, err := sessions.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, *s, *got)

	list, err := sessions.ListByUser(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *s, list[0])

	s.Subject, s.Hours, s.Dates, s.Notes = "Physics", "three", "next week", "updated"
	require.NoError(t, sessions.Update(ctx, s))
	got, err = sessions.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, *s, *got)

	require.NoError(t, sessions.Delete(ctx, s.ID))
	_, err = sessions.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	stillThere, err := sessions.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, *other, *stillThere)
}

func TestStudySessionRepo_ListEmpty(t *testing.T) {
	list, err := NewStudySessionRepo(newTestDB(t)).ListByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestApplicationRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepo(db)
	apps := NewApplicationRepo(db)

	uid, err := users.Create(ctx, "carol", "", "pw", bcrypt.MinCost)
	require.NoError(t, err)

	first := &model.Application{UserID: uid, CompanyName: "Acme", Role: "Engineer", Status: "Applied"}
	second := &model.Application{UserID: uid, CompanyName: "Globex", Role: "SRE", Status: "Interview"}
	require.NoError(t, apps.Create(ctx, first))
	require.NoError(t, apps.Create(ctx, second))

	list, err := apps.ListByUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []model.Application{*first, *second}, list)

	first.Status = "Offer"
	require.NoError(t, apps.Update(ctx, first))
	got, err := apps.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Offer", got.Status)

	require.NoError(t, apps.Delete(ctx, first.ID))
	_, err = apps.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	list, err = apps.ListByUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []model.Application{*second}, list)
}
