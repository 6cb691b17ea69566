package rocketleague

import (
	"context"
	"fmt"
)

// ServerErrorBody is the HTML body the API returns when a stat lookup breaks
// on its side, e.g. for Xbox gamertags containing spaces.
const ServerErrorBody = "<h1>Server Error (500)</h1>"

// StatsValuesForUser fetches every stat type for the players, one request per
// stat type in StatTypes order, and merges the rows per player. Sub-calls that
// come back as ServerErrorBody are left out of the result. Sub-calls always
// decode their body, even on a debug-response client; on a debug-request
// client nothing is sent and the result is empty.
func (c *Client) StatsValuesForUser(ctx context.Context, platform Platform, players ...PlayerID) (PlayerStats, error) {
	mode := ModeDefault
	if c.mode == ModeDebugRequest {
		mode = ModeDebugRequest
	}

	stats := make(PlayerStats)

	for _, stat := range StatTypes {
		result, err := c.callWithMode(ctx, EndpointStatsValueForUser, Params{
			Platform: platform,
			StatType: stat,
			Players:  players,
		}, mode)
		if err != nil {
			return nil, err
		}

		if !result.Sent() {
			continue
		}

		if result.Text == ServerErrorBody {
			c.logger.Warn().
				Str("platform", platform.String()).
				Str("stat_type", stat.String()).
				Msg("Stats API returned a server error, skipping stat type")
			continue
		}

		var rows []StatValue
		if err := result.Decode(&rows); err != nil {
			return nil, fmt.Errorf("failed to get %s for players: %w", stat, err)
		}

		stats.merge(platform, rows)
	}

	return stats, nil
}

// merge folds rows into the map keyed by each row's platform identity
func (s PlayerStats) merge(platform Platform, rows []StatValue) {
	for _, row := range rows {
		key := row.Identity(platform)
		if _, ok := s[key]; !ok {
			s[key] = make(map[StatType]int64)
		}
		s[key][row.StatType] = row.Value
	}
}
