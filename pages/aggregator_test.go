package pages

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/snap-species-web/backend"
	"github.com/jrsteele09/snap-species-web/internal/utils"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream down")

type fakeUpstream struct {
	calls atomic.Int32

	failMe, failStats, failMine, failAll, failBoard bool
	panicStats                                     bool
}

func (f *fakeUpstream) fail(flag bool) error {
	f.calls.Add(1)
	if flag {
		return errUpstream
	}
	return nil
}

func (f *fakeUpstream) Me(context.Context) (*backend.Profile, error) {
	if err := f.fail(f.failMe); err != nil {
		return nil, err
	}
	return &backend.Profile{ID: 1, Name: utils.Ptr("Ada Lovelace"), Email: utils.Ptr("ada@example.com")}, nil
}

func (f *fakeUpstream) MyStats(context.Context) (*backend.Stats, error) {
	if f.panicStats {
		f.calls.Add(1)
		panic("stats exploded")
	}
	if err := f.fail(f.failStats); err != nil {
		return nil, err
	}
	return &backend.Stats{EndangeredSpecies: 2, TotalSightings: 5, AvgThreatScore: 61.5}, nil
}

func (f *fakeUpstream) MySightings(context.Context) ([]backend.Sighting, error) {
	if err := f.fail(f.failMine); err != nil {
		return nil, err
	}
	return []backend.Sighting{{ID: 7, Name: "Tiger", Sci: "Panthera tigris", Status: backend.StatusEndangered}}, nil
}

func (f *fakeUpstream) Sightings(context.Context) ([]backend.Sighting, error) {
	if err := f.fail(f.failAll); err != nil {
		return nil, err
	}
	return []backend.Sighting{{ID: 1}, {ID: 2}}, nil
}

func (f *fakeUpstream) Leaderboard(context.Context) ([]backend.LeaderboardEntry, error) {
	if err := f.fail(f.failBoard); err != nil {
		return nil, err
	}
	return []backend.LeaderboardEntry{{Rank: 1, Name: "Ada", Score: 120}}, nil
}

func connectTo(up *fakeUpstream, tokens *[]string) Connector {
	return func(_ context.Context, token string) Upstream {
		if tokens != nil {
			*tokens = append(*tokens, token)
		}
		return up
	}
}

func TestLoadAccount(t *testing.T) {
	up := &fakeUpstream{}
	var tokens []string
	data := NewAggregator(connectTo(up, &tokens)).Load(context.Background(), RouteAccount, "tok")

	assert.Equal(t, RouteAccount, data.Route)
	assert.Equal(t, []string{"tok"}, tokens)
	assert.EqualValues(t, 3, up.calls.Load())

	require.True(t, data.User.OK())
	assert.Equal(t, "ada@example.com", data.User.Value.Username)
	require.True(t, data.Stats.OK())
	assert.Equal(t, 5, data.Stats.Value.TotalSightings)
	require.True(t, data.MySightings.OK())
	assert.Len(t, data.MySightings.Value, 1)

	assert.Equal(t, NotRequested, data.Sightings.State)
	assert.Equal(t, NotRequested, data.Leaderboard.State)
	assert.Empty(t, data.Notice)
}

func TestLoadAccountWithoutTokenMakesNoCalls(t *testing.T) {
	up := &fakeUpstream{}
	connected := false
	agg := NewAggregator(func(context.Context, string) Upstream {
		connected = true
		return up
	})
	data := agg.Load(context.Background(), RouteAccount, "")

	assert.False(t, connected)
	assert.EqualValues(t, 0, up.calls.Load())
	assert.Equal(t, Empty, data.User.State)
	assert.Nil(t, data.User.Value)
	assert.Equal(t, Empty, data.Stats.State)
	assert.Nil(t, data.Stats.Value)
	assert.Equal(t, Empty, data.MySightings.State)
	assert.NotNil(t, data.MySightings.Value)
	assert.Empty(t, data.MySightings.Value)
}

func TestLoadPublicRoutesWithoutToken(t *testing.T) {
	up := &fakeUpstream{}
	var tokens []string
	agg := NewAggregator(connectTo(up, &tokens))

	m := agg.Load(context.Background(), RouteMap, "")
	require.True(t, m.Sightings.OK())
	assert.Len(t, m.Sightings.Value, 2)
	assert.Equal(t, NotRequested, m.User.State)

	lb := agg.Load(context.Background(), RouteLeaderboard, "")
	require.True(t, lb.Leaderboard.OK())
	assert.Equal(t, "Ada", lb.Leaderboard.Value[0].Name)
	assert.Empty(t, lb.Notice)

	assert.Equal(t, []string{"", ""}, tokens)
}

func TestLoadOneFailureKeepsSiblings(t *testing.T) {
	up := &fakeUpstream{failStats: true}
	data := NewAggregator(connectTo(up, nil)).Load(context.Background(), RouteAccount, "tok")

	assert.EqualValues(t, 3, up.calls.Load())
	assert.Equal(t, Failed, data.Stats.State)
	assert.Nil(t, data.Stats.Value)
	assert.True(t, data.User.OK())
	assert.True(t, data.MySightings.OK())
	assert.Len(t, data.MySightings.Value, 1)
}

func TestLoadStatusErrorDegradesField(t *testing.T) {
	up := &fakeUpstream{}
	agg := NewAggregator(func(context.Context, string) Upstream {
		return statusErrUpstream{up}
	})
	data := agg.Load(context.Background(), RouteMap, "tok")
	assert.Equal(t, Failed, data.Sightings.State)
	assert.Empty(t, data.Sightings.Value)
	assert.NotNil(t, data.Sightings.Value)
}

type statusErrUpstream struct{ *fakeUpstream }

func (statusErrUpstream) Sightings(context.Context) ([]backend.Sighting, error) {
	return nil, &backend.StatusError{StatusCode: http.StatusInternalServerError}
}

func TestLoadLeaderboardFailureSetsNotice(t *testing.T) {
	up := &fakeUpstream{failBoard: true}
	data := NewAggregator(connectTo(up, nil)).Load(context.Background(), RouteLeaderboard, "")
	assert.Equal(t, Failed, data.Leaderboard.State)
	assert.Empty(t, data.Leaderboard.Value)
	assert.Equal(t, "Could not load leaderboard.", data.Notice)
}

func TestLoadPanicInOneCallIsIsolated(t *testing.T) {
	up := &fakeUpstream{panicStats: true}
	data := NewAggregator(connectTo(up, nil)).Load(context.Background(), RouteAccount, "tok")
	assert.Equal(t, Failed, data.Stats.State)
	assert.True(t, data.User.OK())
	assert.True(t, data.MySightings.OK())
}

func TestLoadPanicOutsideCallsFallsBackToEmptyShape(t *testing.T) {
	agg := NewAggregator(func(context.Context, string) Upstream {
		panic("no upstream")
	})
	data := agg.Load(context.Background(), RouteAccount, "tok")
	assert.Equal(t, EmptyShape(RouteAccount), data)
}

func TestLoadUnknownRoute(t *testing.T) {
	up := &fakeUpstream{}
	data := NewAggregator(connectTo(up, nil)).Load(context.Background(), RouteKey("nope"), "tok")
	assert.Equal(t, PageData{Route: "nope"}, data)
	assert.EqualValues(t, 0, up.calls.Load())
}

func TestAccountFailuresAreIndependent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("each field fails only when its own call fails", prop.ForAll(
		func(failMe, failStats, failMine bool) bool {
			up := &fakeUpstream{failMe: failMe, failStats: failStats, failMine: failMine}
			data := NewAggregator(connectTo(up, nil)).Load(context.Background(), RouteAccount, "tok")
			return (data.User.State == Failed) == failMe &&
				(data.Stats.State == Failed) == failStats &&
				(data.MySightings.State == Failed) == failMine &&
				data.User.OK() != failMe &&
				data.Stats.OK() != failStats &&
				data.MySightings.OK() != failMine &&
				data.MySightings.Value != nil &&
				up.calls.Load() == 3
		},
		gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestFieldAccessors(t *testing.T) {
	f := loaded(3)
	v, ok := f.Get()
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.True(t, f.Requested())

	var none Field[int]
	assert.False(t, none.Requested())
	assert.False(t, none.OK())
	assert.Equal(t, "not-requested", none.State.String())
	assert.Equal(t, "failed", Failed.String())
}
