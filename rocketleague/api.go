package rocketleague

import (
	"context"
)

// API defines the interface for Rocket League stats operations
type API interface {
	// Population returns the number of players online per platform and playlist
	Population(ctx context.Context) (*Result, error)

	// Regions returns the regions and the platforms available in each
	Regions(ctx context.Context) (*Result, error)

	// SkillLeaderboard returns the top players of a ranked playlist
	SkillLeaderboard(ctx context.Context, platform Platform, playlist Playlist) (*Result, error)

	// StatsLeaderboard returns the stat leaderboards, all of them for StatNone
	StatsLeaderboard(ctx context.Context, platform Platform, stat StatType) (*Result, error)

	// PlayerSkills returns ranked skills for one or up to 100 players
	PlayerSkills(ctx context.Context, platform Platform, players ...PlayerID) (*Result, error)

	// PlayerTitles returns the titles of a single player
	PlayerTitles(ctx context.Context, platform Platform, player PlayerID) (*Result, error)

	// StatsValueForUser returns one stat for one or up to 100 players
	StatsValueForUser(ctx context.Context, platform Platform, stat StatType, players ...PlayerID) (*Result, error)

	// StatsValuesForUser returns every stat for the given players, merged per player
	StatsValuesForUser(ctx context.Context, platform Platform, players ...PlayerID) (PlayerStats, error)
}

var _ API = (*Client)(nil)

// Population calls GET /population/
func (c *Client) Population(ctx context.Context) (*Result, error) {
	return c.call(ctx, EndpointPopulation, Params{})
}

// Regions calls GET /regions/
func (c *Client) Regions(ctx context.Context) (*Result, error) {
	return c.call(ctx, EndpointRegions, Params{})
}

// SkillLeaderboard calls GET /<platform>/leaderboard/skills/<playlist>/
func (c *Client) SkillLeaderboard(ctx context.Context, platform Platform, playlist Playlist) (*Result, error) {
	return c.call(ctx, EndpointSkillLeaderboard, Params{
		Platform: platform,
		Playlist: playlist,
	})
}

// StatsLeaderboard calls GET /<platform>/leaderboard/stats/[<stat>/]
func (c *Client) StatsLeaderboard(ctx context.Context, platform Platform, stat StatType) (*Result, error) {
	return c.call(ctx, EndpointStatsLeaderboard, Params{
		Platform: platform,
		StatType: stat,
	})
}

// PlayerSkills calls GET /<platform>/playerskills/<player>/ for a single
// player and POST /<platform>/playerskills/ for several.
func (c *Client) PlayerSkills(ctx context.Context, platform Platform, players ...PlayerID) (*Result, error) {
	return c.call(ctx, EndpointPlayerSkills, Params{
		Platform: platform,
		Players:  players,
	})
}

// PlayerTitles calls GET /<platform>/playertitles/<player>/
func (c *Client) PlayerTitles(ctx context.Context, platform Platform, player PlayerID) (*Result, error) {
	return c.PlayerTitlesOf(ctx, platform, player)
}

// PlayerTitlesOf is the one-or-many form of PlayerTitles: the list goes
// through the same player ID validation as the multi-player endpoints, and
// since titles only accept a single player, two or more IDs fail with
// ErrSingleValueRequired and none with ErrEmptyInput, before any request.
func (c *Client) PlayerTitlesOf(ctx context.Context, platform Platform, players ...PlayerID) (*Result, error) {
	return c.call(ctx, EndpointPlayerTitles, Params{
		Platform: platform,
		Players:  players,
	})
}

// StatsValueForUser calls GET /<platform>/leaderboard/stats/<stat>/<player>/
// for a single player and POST /<platform>/leaderboard/stats/<stat>/ for several.
func (c *Client) StatsValueForUser(ctx context.Context, platform Platform, stat StatType, players ...PlayerID) (*Result, error) {
	return c.call(ctx, EndpointStatsValueForUser, Params{
		Platform: platform,
		StatType: stat,
		Players:  players,
	})
}
