package directory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"example.com/signup/internal/domain"
)

type fataler interface {
	Fatalf(format string, args ...any)
}

func newTestStore(t fataler) *Store {
	store, err := New([]domain.Activity{
		{Name: "Soccer Team", Description: "Matches", Schedule: "Tue", MaxParticipants: 22},
		{Name: "Chess Club", Description: "Tournaments", Schedule: "Fri", MaxParticipants: 12, Participants: []string{"michael@mergington.edu"}},
	})
	if err != nil {
		t.Fatalf("build store: %v", err)
	}
	return store
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New([]domain.Activity{{Name: "Art Club"}, {Name: "Art Club"}})
	require.Error(t, err)
}

func TestSoccerTeamScenario(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	activity, err := store.AddParticipant(ctx, "Soccer Team", "a@x.com")
	require.NoError(t, err)
	require.Equal(t, []string{"a@x.com"}, activity.Participants)

	_, err = store.AddParticipant(ctx, "Soccer Team", "a@x.com")
	require.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	activity, err = store.RemoveParticipant(ctx, "Soccer Team", "a@x.com")
	require.NoError(t, err)
	require.Empty(t, activity.Participants)

	_, err = store.RemoveParticipant(ctx, "Soccer Team", "a@x.com")
	require.ErrorIs(t, err, domain.ErrNotRegistered)

	_, err = store.AddParticipant(ctx, "Nope", "a@x.com")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
	_, err = store.RemoveParticipant(ctx, "Nope", "a@x.com")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestActivityNamesAreCaseSensitive(t *testing.T) {
	_, err := newTestStore(t).AddParticipant(context.Background(), "soccer team", "a@x.com")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestListReturnsDetachedSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	snapshot, err := store.List(ctx)
	require.NoError(t, err)
	chess := snapshot["Chess Club"]
	chess.Participants[0] = "mutated@x.com"

	again, err := store.Get(ctx, "Chess Club")
	require.NoError(t, err)
	require.Equal(t, []string{"michael@mergington.edu"}, again.Participants)
	require.NotNil(t, snapshot["Soccer Team"].Participants)
}

func TestRemovePreservesOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := store.AddParticipant(ctx, "Soccer Team", email)
		require.NoError(t, err)
	}

	activity, err := store.RemoveParticipant(ctx, "Soccer Team", "b@x.com")
	require.NoError(t, err)
	require.Equal(t, []string{"a@x.com", "c@x.com"}, activity.Participants)
}

func TestConcurrentSignupsAreRecordedOnce(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan error, workers*2)
	for i := 0; i < workers; i++ {
		email := fmt.Sprintf("student%d@x.com", i)
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.AddParticipant(ctx, "Soccer Team", email)
				errs <- err
			}()
		}
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, domain.ErrAlreadyRegistered)
			dup++
		}
	}
	require.Equal(t, workers, ok)
	require.Equal(t, workers, dup)

	activity, err := store.Get(ctx, "Soccer Team")
	require.NoError(t, err)
	require.Len(t, activity.Participants, workers)
}

func TestRosterMatchesModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		store := newTestStore(t)
		names := store.Names()
		model := map[string][]string{
			"Soccer Team": {},
			"Chess Club":  {"michael@mergington.edu"},
		}

		nameGen := rapid.SampledFrom(append(names, "Unknown"))
		emailGen := rapid.StringMatching(`[a-c]{1,2}@x\.com`)

		t.Repeat(map[string]func(*rapid.T){
			"signup": func(t *rapid.T) {
				name := nameGen.Draw(t, "name")
				email := emailGen.Draw(t, "email")
				_, err := store.AddParticipant(ctx, name, email)

				roster, known := model[name]
				switch {
				case !known:
					require.ErrorIs(t, err, domain.ErrActivityNotFound)
				case slices.Contains(roster, email):
					require.ErrorIs(t, err, domain.ErrAlreadyRegistered)
				default:
					require.NoError(t, err)
					model[name] = append(roster, email)
				}
			},
			"unregister": func(t *rapid.T) {
				name := nameGen.Draw(t, "name")
				email := emailGen.Draw(t, "email")
				_, err := store.RemoveParticipant(ctx, name, email)

				roster, known := model[name]
				idx := slices.Index(roster, email)
				switch {
				case !known:
					require.ErrorIs(t, err, domain.ErrActivityNotFound)
				case idx < 0:
					require.ErrorIs(t, err, domain.ErrNotRegistered)
				default:
					require.NoError(t, err)
					model[name] = slices.Delete(slices.Clone(roster), idx, idx+1)
				}
			},
			"": func(t *rapid.T) {
				snapshot, err := store.List(ctx)
				require.NoError(t, err)
				for name, want := range model {
					got := snapshot[name].Participants
					require.Equal(t, want, got, name)
					require.Len(t, got, len(uniq(got)), "duplicate participant in %s", name)
				}
			},
		})
	})
}

func TestSignupThenUnregisterRestoresRoster(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		store := newTestStore(t)
		name := rapid.SampledFrom(store.Names()).Draw(t, "name")
		email := rapid.StringMatching(`[a-z]{1,8}@[a-z]{1,5}\.edu`).Draw(t, "email")

		before, err := store.Get(ctx, name)
		require.NoError(t, err)
		require.False(t, before.HasParticipant(email))

		_, err = store.AddParticipant(ctx, name, email)
		require.NoError(t, err)
		_, err = store.RemoveParticipant(ctx, name, email)
		require.NoError(t, err)

		after, err := store.Get(ctx, name)
		require.NoError(t, err)
		require.Equal(t, before, after)
	})
}

func uniq(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}
