package rocketleague

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// Param names a request parameter an endpoint takes
type Param string

const (
	ParamPlatform Param = "platform"
	ParamPlaylist Param = "playlist"
	ParamStatType Param = "stat_type"
	ParamPlayerID Param = "player_id"
)

// Endpoint identifies one of the stats API endpoints
type Endpoint int

const (
	EndpointPopulation Endpoint = iota
	EndpointRegions
	EndpointSkillLeaderboard
	EndpointStatsLeaderboard
	EndpointPlayerSkills
	EndpointPlayerTitles
	EndpointStatsValueForUser
)

// EndpointDescriptor is the static description of an endpoint
type EndpointDescriptor struct {
	Name    string
	Path    string
	Methods []string
	// Params is ordered; it drives both validation and path segment order
	Params []Param
	// Optional lists params that may be left at their zero value
	Optional []Param
}

// AllowsMethod reports whether the endpoint accepts the HTTP method
func (d EndpointDescriptor) AllowsMethod(method string) bool {
	return slices.Contains(d.Methods, method)
}

// Has reports whether the endpoint takes the parameter
func (d EndpointDescriptor) Has(p Param) bool {
	return slices.Contains(d.Params, p)
}

// IsOptional reports whether the parameter may be omitted
func (d EndpointDescriptor) IsOptional(p Param) bool {
	return slices.Contains(d.Optional, p)
}

// AllowsMultiplePlayers reports whether several player IDs can be sent in one POST
func (d EndpointDescriptor) AllowsMultiplePlayers() bool {
	return d.Has(ParamPlayerID) && d.AllowsMethod(http.MethodPost)
}

var catalog = map[Endpoint]EndpointDescriptor{
	// GET /api/v1/population/
	EndpointPopulation: {
		Name:    "population",
		Path:    "population",
		Methods: []string{http.MethodGet},
	},
	// GET /api/v1/regions/
	EndpointRegions: {
		Name:    "regions",
		Path:    "regions",
		Methods: []string{http.MethodGet},
	},
	// GET /api/v1/<platform>/leaderboard/skills/<playlist>/
	EndpointSkillLeaderboard: {
		Name:    "skill_leaderboard",
		Path:    "leaderboard/skills",
		Methods: []string{http.MethodGet},
		Params:  []Param{ParamPlatform, ParamPlaylist},
	},
	// GET /api/v1/<platform>/leaderboard/stats/[<stat_type>/]
	EndpointStatsLeaderboard: {
		Name:     "stats_leaderboard",
		Path:     "leaderboard/stats",
		Methods:  []string{http.MethodGet},
		Params:   []Param{ParamPlatform, ParamStatType},
		Optional: []Param{ParamStatType},
	},
	// GET  /api/v1/<platform>/playerskills/<player_id>/
	// POST /api/v1/<platform>/playerskills/
	EndpointPlayerSkills: {
		Name:    "player_skills",
		Path:    "playerskills",
		Methods: []string{http.MethodGet, http.MethodPost},
		Params:  []Param{ParamPlatform, ParamPlayerID},
	},
	// GET /api/v1/<platform>/playertitles/<player_id>/
	EndpointPlayerTitles: {
		Name:    "player_titles",
		Path:    "playertitles",
		Methods: []string{http.MethodGet},
		Params:  []Param{ParamPlatform, ParamPlayerID},
	},
	// GET  /api/v1/<platform>/leaderboard/stats/<stat_type>/<player_id>/
	// POST /api/v1/<platform>/leaderboard/stats/<stat_type>/
	EndpointStatsValueForUser: {
		Name:    "stats_value_for_user",
		Path:    "leaderboard/stats",
		Methods: []string{http.MethodGet, http.MethodPost},
		Params:  []Param{ParamPlatform, ParamStatType, ParamPlayerID},
	},
}

// Describe returns the descriptor of an endpoint
func Describe(e Endpoint) (EndpointDescriptor, bool) {
	d, ok := catalog[e]
	return d, ok
}

func (e Endpoint) String() string {
	if d, ok := catalog[e]; ok {
		return d.Name
	}
	return fmt.Sprintf("endpoint(%d)", int(e))
}

// Params carries the values for an endpoint call. Only the fields named by the
// endpoint descriptor are read.
type Params struct {
	Platform Platform
	Playlist Playlist
	StatType StatType
	Players  []PlayerID
}

// PlayerIDsBody is the JSON body of multi-player POST requests
type PlayerIDsBody struct {
	PlayerIDs []PlayerID `json:"player_ids"`
}

// RequestPlan is the fully resolved shape of a single request
type RequestPlan struct {
	Endpoint Endpoint
	Method   string
	URL      string
	Body     *PlayerIDsBody
}

// planRequest validates params in descriptor order and resolves method, URL and body
func planRequest(apiRoot string, e Endpoint, p Params) (RequestPlan, error) {
	desc, ok := catalog[e]
	if !ok {
		return RequestPlan{}, fmt.Errorf("unknown endpoint: %s", e)
	}

	method := http.MethodGet
	var players []PlayerID

	for _, param := range desc.Params {
		var err error
		switch param {
		case ParamPlatform:
			err = validatePlatform(p.Platform)
		case ParamPlaylist:
			err = validatePlaylist(p.Playlist)
		case ParamStatType:
			err = validateStatType(p.StatType)
			if err == nil && p.StatType == StatNone && !desc.IsOptional(ParamStatType) {
				err = invalidParam(ParamStatType, "")
			}
		case ParamPlayerID:
			method, players, err = resolvePlayerIDs(p.Players, desc.AllowsMultiplePlayers())
		}
		if err != nil {
			return RequestPlan{}, err
		}
	}

	plan := RequestPlan{
		Endpoint: e,
		Method:   method,
		URL:      buildURL(apiRoot, desc, p, method, players),
	}
	if method == http.MethodPost {
		plan.Body = &PlayerIDsBody{PlayerIDs: players}
	}

	return plan, nil
}

// buildURL produces <root>[<platform>/]<path>/[<playlist>/][<stat>/][<player>/].
// The player segment is only present for GET; a POST carries players in the body.
func buildURL(apiRoot string, desc EndpointDescriptor, p Params, method string, players []PlayerID) string {
	var segments []string
	if desc.Has(ParamPlatform) {
		segments = append(segments, string(p.Platform))
	}
	segments = append(segments, desc.Path)

	for _, param := range desc.Params {
		switch param {
		case ParamPlaylist:
			segments = append(segments, p.Playlist.String())
		case ParamStatType:
			if p.StatType != StatNone {
				segments = append(segments, string(p.StatType))
			}
		case ParamPlayerID:
			if method == http.MethodGet && len(players) == 1 {
				segments = append(segments, url.PathEscape(players[0].String()))
			}
		}
	}

	return apiRoot + strings.Join(segments, "/") + "/"
}
