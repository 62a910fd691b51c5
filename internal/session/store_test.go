package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/session"
	"github.com/mcoot/fleetbattle-console/internal/storage/file"
	"github.com/mcoot/fleetbattle-console/internal/storage/memory"
	redisstorage "github.com/mcoot/fleetbattle-console/internal/storage/redis"
	"github.com/mcoot/fleetbattle-console/internal/testutil"
)

func newStore() (*session.Store, *memory.Storage) {
	st := memory.New()
	return session.New(st, testutil.NopLogger()), st
}

func sampleUser() model.UserSummary {
	return model.UserSummary{
		UserID:     "42",
		Username:   "alice",
		Role:       model.RoleAdmin,
		Email:      "alice@example.com",
		CurrentElo: 1200,
		Wins:       7,
		TotalGames: 12,
	}
}

func TestSaveThenRead(t *testing.T) {
	store, _ := newStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", sampleUser()))

	token, ok := store.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	user, err := store.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleUser(), *user)
	assert.Equal(t, model.RoleAdmin, store.Role(ctx))
}

func TestFileBackedTokenRoundTrip(t *testing.T) {
	store := session.New(file.New(t.TempDir()), testutil.NopLogger())
	ctx := context.Background()

	for _, token := range []string{"abc\n", " abc", "   "} {
		require.NoError(t, store.Save(ctx, token, sampleUser()))

		got, ok := store.Token(ctx)
		assert.True(t, ok, "token %q", token)
		assert.Equal(t, token, got)
	}
}

func TestSaveRejectsEmptyToken(t *testing.T) {
	store, st := newStore()

	err := store.Save(context.Background(), "", sampleUser())
	assert.ErrorIs(t, err, session.ErrEmptyToken)
	assert.Equal(t, 0, st.Len())
}

func TestClear(t *testing.T) {
	store, st := newStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "abc", sampleUser()))

	require.NoError(t, store.Clear(ctx))

	_, ok := store.Token(ctx)
	assert.False(t, ok)
	assert.False(t, store.HasToken(ctx))
	_, err := store.User(ctx)
	assert.ErrorIs(t, err, session.ErrNoProfile)
	assert.Equal(t, 0, st.Len())
}

func TestUserMissing(t *testing.T) {
	store, _ := newStore()

	user, err := store.User(context.Background())
	assert.Nil(t, user)
	assert.ErrorIs(t, err, session.ErrNoProfile)
	assert.Equal(t, model.Role(""), store.Role(context.Background()))
}

func TestUserMalformedJSON(t *testing.T) {
	store, st := newStore()
	ctx := context.Background()
	require.NoError(t, st.Put(ctx, map[string]string{session.UserKey: "{not json"}))

	var (
		user *model.UserSummary
		err  error
	)
	assert.NotPanics(t, func() {
		user, err = store.User(ctx)
	})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, session.ErrCorruptProfile)
}

func TestSubscribeReceivesLoginBeforeSaveReturns(t *testing.T) {
	store, _ := newStore()
	ctx := context.Background()

	var seen []session.EventKind
	var roleAtLogin model.Role
	unsubscribe := store.Subscribe(func(evt session.Event) {
		seen = append(seen, evt.Kind)
		if evt.Kind == session.EventLogin {
			roleAtLogin = store.Role(ctx)
		}
	})

	require.NoError(t, store.Save(ctx, "abc", sampleUser()))
	assert.Equal(t, []session.EventKind{session.EventLogin}, seen)
	assert.Equal(t, model.RoleAdmin, roleAtLogin)

	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, []session.EventKind{session.EventLogin, session.EventLogout}, seen)

	unsubscribe()
	require.NoError(t, store.Save(ctx, "abc", sampleUser()))
	assert.Len(t, seen, 2)
}

type failingStorage struct{ memory.Storage }

func (f *failingStorage) Get(context.Context, string) (string, error) {
	return "", errors.New("disk on fire")
}

func TestTokenReadFailureIsAbsent(t *testing.T) {
	store := session.New(&failingStorage{}, testutil.NopLogger())

	_, ok := store.Token(context.Background())
	assert.False(t, ok)

	_, err := store.User(context.Background())
	assert.ErrorIs(t, err, session.ErrNoProfile)
}

func TestWatchWithoutWatcherReturns(t *testing.T) {
	store, _ := newStore()
	assert.NoError(t, store.Watch(context.Background()))
}

func TestWatchForwardsExternalChanges(t *testing.T) {
	mini := miniredis.RunT(t)
	newStorage := func() *redisstorage.Storage {
		return redisstorage.NewWithClient(goredis.NewClient(&goredis.Options{Addr: mini.Addr()}), redisstorage.DefaultConfig())
	}

	ours := session.New(newStorage(), testutil.NopLogger())
	theirs := session.New(newStorage(), testutil.NopLogger())

	events := make(chan session.Event, 4)
	ours.Subscribe(func(evt session.Event) { events <- evt })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = ours.Watch(ctx) }()

	require.Eventually(t, func() bool {
		return mini.PubSubNumSub("fbconsole:session:events")["fbconsole:session:events"] == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, theirs.Save(ctx, "xyz", sampleUser()))

	select {
	case evt := <-events:
		assert.Equal(t, session.EventExternal, evt.Kind)
	case <-time.After(time.Second):
		t.Fatal("no external event received")
	}

	token, ok := ours.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "xyz", token)
}
