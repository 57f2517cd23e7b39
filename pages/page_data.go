package pages

import (
	"context"

	"github.com/jrsteele09/snap-species-web/backend"
	"github.com/jrsteele09/snap-species-web/internal/utils"
	"github.com/jrsteele09/snap-species-web/sessions"
)

// RouteKey names a page whose data the aggregator knows how to load.
type RouteKey string

const (
	RouteAccount     RouteKey = "account"
	RouteMap         RouteKey = "map"
	RouteLeaderboard RouteKey = "leaderboard"
)

const leaderboardNotice = "Could not load leaderboard."

// PageData is the per-route bundle of upstream resources. Fields the route
// does not use stay NotRequested.
type PageData struct {
	Route       RouteKey
	User        Field[*sessions.Identity]
	Stats       Field[*backend.Stats]
	MySightings Field[[]backend.Sighting]
	Sightings   Field[[]backend.Sighting]
	Leaderboard Field[[]backend.LeaderboardEntry]
	// Notice is a user-facing message about missing data.
	Notice string
}

// fieldLoader fetches one PageData field. mark sets the field to its empty
// default in the given state; load fills it from upstream.
type fieldLoader struct {
	name string
	mark func(d *PageData, state FieldState)
	load func(ctx context.Context, up Upstream, d *PageData) error
}

type routeSpec struct {
	authenticated bool
	fields        []fieldLoader
}

var (
	userField = fieldLoader{
		name: "user",
		mark: func(d *PageData, s FieldState) { d.User = Field[*sessions.Identity]{State: s} },
		load: func(ctx context.Context, up Upstream, d *PageData) error {
			profile, err := up.Me(ctx)
			if err != nil {
				return err
			}
			d.User = loaded(sessions.IdentityFromProfile(profile))
			return nil
		},
	}
	statsField = fieldLoader{
		name: "stats",
		mark: func(d *PageData, s FieldState) { d.Stats = Field[*backend.Stats]{State: s} },
		load: func(ctx context.Context, up Upstream, d *PageData) error {
			stats, err := up.MyStats(ctx)
			if err != nil {
				return err
			}
			d.Stats = loaded(stats)
			return nil
		},
	}
	mySightingsField = fieldLoader{
		name: "my_sightings",
		mark: func(d *PageData, s FieldState) {
			d.MySightings = Field[[]backend.Sighting]{State: s, Value: []backend.Sighting{}}
		},
		load: func(ctx context.Context, up Upstream, d *PageData) error {
			sightings, err := up.MySightings(ctx)
			if err != nil {
				return err
			}
			d.MySightings = loaded(utils.NonNil(sightings))
			return nil
		},
	}
	sightingsField = fieldLoader{
		name: "sightings",
		mark: func(d *PageData, s FieldState) {
			d.Sightings = Field[[]backend.Sighting]{State: s, Value: []backend.Sighting{}}
		},
		load: func(ctx context.Context, up Upstream, d *PageData) error {
			sightings, err := up.Sightings(ctx)
			if err != nil {
				return err
			}
			d.Sightings = loaded(utils.NonNil(sightings))
			return nil
		},
	}
	leaderboardField = fieldLoader{
		name: "leaderboard",
		mark: func(d *PageData, s FieldState) {
			d.Leaderboard = Field[[]backend.LeaderboardEntry]{State: s, Value: []backend.LeaderboardEntry{}}
		},
		load: func(ctx context.Context, up Upstream, d *PageData) error {
			entries, err := up.Leaderboard(ctx)
			if err != nil {
				return err
			}
			d.Leaderboard = loaded(utils.NonNil(entries))
			return nil
		},
	}
)

var routes = map[RouteKey]routeSpec{
	RouteAccount:     {authenticated: true, fields: []fieldLoader{userField, statsField, mySightingsField}},
	RouteMap:         {fields: []fieldLoader{sightingsField}},
	RouteLeaderboard: {fields: []fieldLoader{leaderboardField}},
}

// EmptyShape is route's bundle with every field it uses at its empty default.
func EmptyShape(route RouteKey) PageData {
	return shape(route, Empty)
}

func shape(route RouteKey, state FieldState) PageData {
	d := PageData{Route: route}
	for _, f := range routes[route].fields {
		f.mark(&d, state)
	}
	return d
}
