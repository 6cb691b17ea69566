package rocketleague

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Platform identifies a gaming platform as it appears in API paths
type Platform string

const (
	PlatformSteam       Platform = "steam"
	PlatformPlayStation Platform = "ps4"
	PlatformXbox        Platform = "xboxone"
	PlatformSwitch      Platform = "switch"
)

// Platforms lists every supported platform in catalog order
var Platforms = []Platform{
	PlatformSteam,
	PlatformPlayStation,
	PlatformXbox,
	PlatformSwitch,
}

var platformAliases = map[string]Platform{
	"steam":       PlatformSteam,
	"ps4":         PlatformPlayStation,
	"playstation": PlatformPlayStation,
	"xboxone":     PlatformXbox,
	"xbox":        PlatformXbox,
	"switch":      PlatformSwitch,
}

// ParsePlatform resolves a platform slug or its friendly name
func ParsePlatform(s string) (Platform, error) {
	if p, ok := platformAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return "", invalidParam(ParamPlatform, s)
}

// PlatformNames returns every name ParsePlatform accepts, sorted
func PlatformNames() []string {
	names := make([]string, 0, len(platformAliases))
	for name := range platformAliases {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsValid reports whether p is a supported platform
func (p Platform) IsValid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

func (p Platform) String() string {
	return string(p)
}

// StatType is a per-player statistic tracked by the leaderboards
type StatType string

const (
	// StatNone means no stat type filter
	StatNone    StatType = ""
	StatAssists StatType = "assists"
	StatGoals   StatType = "goals"
	StatMVPs    StatType = "mvps"
	StatSaves   StatType = "saves"
	StatShots   StatType = "shots"
	StatWins    StatType = "wins"
)

// StatTypes lists every stat type in the order the API documents them
var StatTypes = []StatType{
	StatAssists,
	StatGoals,
	StatMVPs,
	StatSaves,
	StatShots,
	StatWins,
}

// ParseStatType resolves a stat type name. An empty string yields StatNone.
func ParseStatType(s string) (StatType, error) {
	st := StatType(strings.ToLower(strings.TrimSpace(s)))
	if st == StatNone || st.IsValid() {
		return st, nil
	}
	return "", invalidParam(ParamStatType, s)
}

// IsValid reports whether s is one of the known stat types. StatNone is not.
func (s StatType) IsValid() bool {
	for _, known := range StatTypes {
		if s == known {
			return true
		}
	}
	return false
}

func (s StatType) String() string {
	return string(s)
}

// Playlist is a ranked playlist code
type Playlist int

const (
	PlaylistRankedDuels        Playlist = 10
	PlaylistRankedDoubles      Playlist = 11
	PlaylistRankedSoloStandard Playlist = 12
	PlaylistRankedStandard     Playlist = 13
)

// Playlists lists every ranked playlist
var Playlists = []Playlist{
	PlaylistRankedDuels,
	PlaylistRankedDoubles,
	PlaylistRankedSoloStandard,
	PlaylistRankedStandard,
}

var playlistNames = map[Playlist]string{
	PlaylistRankedDuels:        "duels",
	PlaylistRankedDoubles:      "doubles",
	PlaylistRankedSoloStandard: "solo-standard",
	PlaylistRankedStandard:     "standard",
}

// ParsePlaylist accepts a playlist code ("10") or its short name ("duels")
func ParsePlaylist(s string) (Playlist, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if p := Playlist(n); p.IsValid() {
			return p, nil
		}
		return 0, invalidParam(ParamPlaylist, s)
	}
	for p, name := range playlistNames {
		if name == s {
			return p, nil
		}
	}
	return 0, invalidParam(ParamPlaylist, s)
}

// IsValid reports whether p is a known ranked playlist
func (p Playlist) IsValid() bool {
	_, ok := playlistNames[p]
	return ok
}

// Name returns the short name of the playlist, or "unknown"
func (p Playlist) Name() string {
	if name, ok := playlistNames[p]; ok {
		return name
	}
	return "unknown"
}

func (p Playlist) String() string {
	return strconv.Itoa(int(p))
}

// PlayerID identifies a player either by numeric platform ID or by name
type PlayerID struct {
	id      uint64
	name    string
	numeric bool
}

// ID returns a numeric player identifier such as a Steam ID
func ID(id uint64) PlayerID {
	return PlayerID{id: id, numeric: true}
}

// Name returns a player identifier for platforms keyed by display name
func Name(name string) PlayerID {
	return PlayerID{name: name}
}

// ParsePlayerID treats all-digit input as a numeric ID and anything else as a name
func ParsePlayerID(s string) PlayerID {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return ID(n)
	}
	return Name(s)
}

// IsNumeric reports whether the identifier is a numeric ID
func (p PlayerID) IsNumeric() bool {
	return p.numeric
}

func (p PlayerID) String() string {
	if p.numeric {
		return strconv.FormatUint(p.id, 10)
	}
	return p.name
}

// MarshalJSON encodes numeric IDs as JSON numbers and names as strings
func (p PlayerID) MarshalJSON() ([]byte, error) {
	if p.numeric {
		return []byte(strconv.FormatUint(p.id, 10)), nil
	}
	return json.Marshal(p.name)
}

// UnmarshalJSON accepts either a JSON number or a JSON string
func (p *PlayerID) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = Name(name)
		return nil
	}
	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("player id must be a number or string: %w", err)
	}
	*p = ID(n)
	return nil
}

// PlayerIDs converts raw strings into identifiers with ParsePlayerID
func PlayerIDs(values ...string) []PlayerID {
	ids := make([]PlayerID, len(values))
	for i, v := range values {
		ids[i] = ParsePlayerID(v)
	}
	return ids
}

// Region is one entry of the regions endpoint
type Region struct {
	Region    string `json:"region"`
	Platforms string `json:"platforms"`
}

// PlatformList splits the comma separated platform names
func (r Region) PlatformList() []string {
	if r.Platforms == "" {
		return nil
	}
	return strings.Split(r.Platforms, ",")
}

// PopulationEntry is the player count of one playlist on one platform
type PopulationEntry struct {
	NumPlayers int      `json:"NumPlayers"`
	PlaylistID Playlist `json:"PlaylistID"`
}

// Population maps platform display names ("Steam", "PS4") to playlist counts
type Population map[string][]PopulationEntry

// Total sums the players across every playlist of a platform
func (p Population) Total(platform string) int {
	total := 0
	for _, entry := range p[platform] {
		total += entry.NumPlayers
	}
	return total
}

// Skill is a player's rating in a single playlist
type Skill struct {
	Playlist      Playlist `json:"playlist"`
	Skill         int      `json:"skill"`
	Tier          int      `json:"tier"`
	TierMax       int      `json:"tier_max"`
	Division      int      `json:"division"`
	MatchesPlayed int      `json:"matches_played"`
}

// PlayerSkillSet is one player's entry in the player skills response
type PlayerSkillSet struct {
	UserID       int64   `json:"user_id"`
	UserName     string  `json:"user_name"`
	PlayerSkills []Skill `json:"player_skills"`
}

// ForPlaylist returns the skill for the given playlist, if the player has one
func (s PlayerSkillSet) ForPlaylist(p Playlist) (Skill, bool) {
	for _, skill := range s.PlayerSkills {
		if skill.Playlist == p {
			return skill, true
		}
	}
	return Skill{}, false
}

// SkillEntry is one row of a skill leaderboard
type SkillEntry struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Skill    int    `json:"skill"`
	Tier     int    `json:"tier"`
}

// Title is a title earned by a player
type Title struct {
	Title string `json:"title"`
}

// StatValue is a single stat for a single player
type StatValue struct {
	StatType StatType `json:"stat_type"`
	UserID   int64    `json:"user_id"`
	UserName string   `json:"user_name"`
	Value    int64    `json:"value"`
}

// Identity returns the key the API uses to identify the player on the given
// platform: the numeric user ID on Steam and the user name everywhere else.
func (v StatValue) Identity(p Platform) string {
	if p == PlatformSteam {
		return strconv.FormatInt(v.UserID, 10)
	}
	return v.UserName
}

// PlayerStats maps a player identity to every stat collected for them
type PlayerStats map[string]map[StatType]int64
