package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/s0up4200/rlstats/rocketleague"
)

// allPlaylists selects every ranked playlist in leaderboard commands
const allPlaylists = "all"

func parsePlatform(s string) (rocketleague.Platform, error) {
	p, err := rocketleague.ParsePlatform(s)
	if err != nil {
		return "", withSuggestion(err, s, rocketleague.PlatformNames())
	}
	return p, nil
}

func parseStatType(s string) (rocketleague.StatType, error) {
	st, err := rocketleague.ParseStatType(s)
	if err != nil {
		return "", withSuggestion(err, s, statNames())
	}
	return st, nil
}

// parsePlaylists resolves a playlist argument; "all" or an empty string
// selects every ranked playlist.
func parsePlaylists(s string) ([]rocketleague.Playlist, error) {
	if s == "" || strings.EqualFold(s, allPlaylists) {
		return rocketleague.Playlists, nil
	}
	p, err := rocketleague.ParsePlaylist(s)
	if err != nil {
		return nil, withSuggestion(err, s, append(playlistNames(), allPlaylists))
	}
	return []rocketleague.Playlist{p}, nil
}

// withSuggestion appends the closest valid name to a parameter error
func withSuggestion(err error, input string, candidates []string) error {
	if !errors.Is(err, rocketleague.ErrInvalidParameter) {
		return err
	}
	if s := suggest(input, candidates); s != "" {
		return fmt.Errorf("%w (did you mean %q?)", err, s)
	}
	return err
}

// suggest returns the best fuzzy match for input, or "" when nothing is close
func suggest(input string, candidates []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

func statNames() []string {
	names := make([]string, len(rocketleague.StatTypes))
	for i, s := range rocketleague.StatTypes {
		names[i] = s.String()
	}
	return names
}

func playlistNames() []string {
	names := make([]string, len(rocketleague.Playlists))
	for i, p := range rocketleague.Playlists {
		names[i] = p.Name()
	}
	return names
}
