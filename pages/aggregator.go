package pages

import (
	"context"
	"fmt"

	"github.com/jrsteele09/snap-species-web/backend"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Upstream is the read side of the backend as seen by one request.
type Upstream interface {
	Me(ctx context.Context) (*backend.Profile, error)
	MyStats(ctx context.Context) (*backend.Stats, error)
	MySightings(ctx context.Context) ([]backend.Sighting, error)
	Sightings(ctx context.Context) ([]backend.Sighting, error)
	Leaderboard(ctx context.Context) ([]backend.LeaderboardEntry, error)
}

// Connector returns an Upstream that attaches token as a bearer credential
// when it is non-empty.
type Connector func(ctx context.Context, token string) Upstream

func FromClient(client *backend.Client) Connector {
	return func(ctx context.Context, token string) Upstream {
		return client.Session(ctx, token)
	}
}

// Aggregator loads the data bundle for a page. It never fails: upstream
// errors degrade the affected field and are only logged.
type Aggregator struct {
	connect Connector
}

func NewAggregator(connect Connector) *Aggregator {
	return &Aggregator{connect: connect}
}

// Load fetches every field route needs concurrently and waits for all of
// them. Routes marked authenticated return their empty shape without any
// upstream call when token is empty.
func (a *Aggregator) Load(ctx context.Context, route RouteKey, token string) (data PageData) {
	plan, ok := routes[route]
	if !ok {
		return PageData{Route: route}
	}
	if plan.authenticated && token == "" {
		return EmptyShape(route)
	}

	logger := zerolog.Ctx(ctx).With().Str("route", string(route)).Logger()
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("page data load aborted")
			data = EmptyShape(route)
		}
	}()

	up := a.connect(ctx, token)
	data = PageData{Route: route}

	// A plain Group: one failure must not cancel its siblings.
	var g errgroup.Group
	for _, f := range plan.fields {
		g.Go(func() error {
			if err := loadField(ctx, f, up, &data); err != nil {
				f.mark(&data, Failed)
				logger.Warn().Err(err).Str("field", f.name).Msg("upstream call failed")
			}
			return nil
		})
	}
	_ = g.Wait()

	if data.Leaderboard.State == Failed {
		data.Notice = leaderboardNotice
	}
	return data
}

func loadField(ctx context.Context, f fieldLoader, up Upstream, d *PageData) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", f.name, r)
		}
	}()
	return f.load(ctx, up, d)
}
