package cmd

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/rlstats/rocketleague"
)

// maxConcurrency bounds the requests a fan-out keeps in flight
const maxConcurrency = 4

// fetchSkillLeaderboards calls SkillLeaderboard for each playlist on an
// errgroup. The client itself stays synchronous; every call is independent.
func fetchSkillLeaderboards(ctx context.Context, client rocketleague.API, platform rocketleague.Platform, playlists []rocketleague.Playlist) (map[rocketleague.Playlist]*rocketleague.Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	// Use mutex to protect concurrent writes
	var mu sync.Mutex
	results := make(map[rocketleague.Playlist]*rocketleague.Result, len(playlists))

	for _, playlist := range playlists {
		g.Go(func() error {
			result, err := client.SkillLeaderboard(ctx, platform, playlist)
			if err != nil {
				return err
			}

			mu.Lock()
			results[playlist] = result
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Raw responses that made it are not handed out
		for _, result := range results {
			if result.Response != nil {
				result.Response.Body.Close()
			}
		}
		return nil, err
	}

	return results, nil
}
