package rocketleague

import (
	"net/http"
	"strings"
)

// MaxPlayerIDs is the largest number of players a single request may carry
const MaxPlayerIDs = 100

func validatePlatform(p Platform) error {
	if !p.IsValid() {
		return invalidParam(ParamPlatform, string(p))
	}
	return nil
}

// validateStatType accepts StatNone
func validateStatType(s StatType) error {
	if s != StatNone && !s.IsValid() {
		return invalidParam(ParamStatType, string(s))
	}
	return nil
}

func validatePlaylist(p Playlist) error {
	if !p.IsValid() {
		return invalidParam(ParamPlaylist, p.String())
	}
	return nil
}

// resolvePlayerIDs decides between a GET for one player and a POST for many.
// A single-element list is treated exactly like a scalar.
func resolvePlayerIDs(ids []PlayerID, allowMultiple bool) (string, []PlayerID, error) {
	switch {
	case len(ids) == 0:
		return "", nil, playerIDError(ErrEmptyInput)
	case len(ids) > MaxPlayerIDs:
		return "", nil, playerIDError(ErrTooManyInputs)
	case len(ids) == 1:
		if ids[0].String() == "" {
			return "", nil, playerIDError(ErrEmptyInput)
		}
		return http.MethodGet, ids[:1], nil
	}

	if !allowMultiple {
		return "", nil, playerIDError(ErrSingleValueRequired)
	}

	return http.MethodPost, ids, nil
}

func allowedValues(param Param) string {
	var values []string
	switch param {
	case ParamPlatform:
		for _, p := range Platforms {
			values = append(values, string(p))
		}
	case ParamStatType:
		for _, s := range StatTypes {
			values = append(values, string(s))
		}
	case ParamPlaylist:
		for _, p := range Playlists {
			values = append(values, p.String())
		}
	}
	return strings.Join(values, ", ")
}
