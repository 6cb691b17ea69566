package rocketleague

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePlatform(t *testing.T) {
	for _, p := range Platforms {
		assert.NoError(t, validatePlatform(p), p)
	}

	for _, p := range []Platform{"", "foo", "playstation", "xbox", "STEAM"} {
		err := validatePlatform(p)
		assert.ErrorIs(t, err, ErrInvalidParameter, string(p))
	}
}

func TestValidateStatType(t *testing.T) {
	assert.NoError(t, validateStatType(StatNone))
	for _, s := range StatTypes {
		assert.NoError(t, validateStatType(s), s)
	}

	err := validateStatType("demolitions")
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Contains(t, err.Error(), "assists, goals, mvps, saves, shots, wins")
}

func TestValidatePlaylist(t *testing.T) {
	for _, p := range Playlists {
		assert.NoError(t, validatePlaylist(p), p.String())
	}

	for _, p := range []Playlist{0, 9, 14, -10} {
		assert.ErrorIs(t, validatePlaylist(p), ErrInvalidParameter, p.String())
	}
}

func TestResolvePlayerIDs(t *testing.T) {
	ids := func(n int) []PlayerID {
		out := make([]PlayerID, n)
		for i := range out {
			out[i] = ID(uint64(i + 1))
		}
		return out
	}

	tests := []struct {
		name          string
		ids           []PlayerID
		allowMultiple bool
		wantMethod    string
		wantIDs       []PlayerID
		wantErr       error
	}{
		{
			name:          "nil list",
			ids:           nil,
			allowMultiple: true,
			wantErr:       ErrEmptyInput,
		},
		{
			name:          "empty name",
			ids:           []PlayerID{Name("")},
			allowMultiple: true,
			wantErr:       ErrEmptyInput,
		},
		{
			name:          "single numeric id",
			ids:           []PlayerID{ID(76561198024807207)},
			allowMultiple: true,
			wantMethod:    http.MethodGet,
			wantIDs:       []PlayerID{ID(76561198024807207)},
		},
		{
			name:          "single name on single-only endpoint",
			ids:           []PlayerID{Name("Intact")},
			allowMultiple: false,
			wantMethod:    http.MethodGet,
			wantIDs:       []PlayerID{Name("Intact")},
		},
		{
			name:          "two ids",
			ids:           ids(2),
			allowMultiple: true,
			wantMethod:    http.MethodPost,
			wantIDs:       ids(2),
		},
		{
			name:          "exactly the maximum",
			ids:           ids(MaxPlayerIDs),
			allowMultiple: true,
			wantMethod:    http.MethodPost,
			wantIDs:       ids(MaxPlayerIDs),
		},
		{
			name:          "one over the maximum",
			ids:           ids(MaxPlayerIDs + 1),
			allowMultiple: true,
			wantErr:       ErrTooManyInputs,
		},
		{
			name:          "too many wins over single-only",
			ids:           ids(MaxPlayerIDs + 1),
			allowMultiple: false,
			wantErr:       ErrTooManyInputs,
		},
		{
			name:          "multiple on single-only endpoint",
			ids:           ids(2),
			allowMultiple: false,
			wantErr:       ErrSingleValueRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, got, err := resolvePlayerIDs(tt.ids, tt.allowMultiple)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMethod, method)
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}

func TestResolvePlayerIDsKeepsOrder(t *testing.T) {
	in := []PlayerID{ID(3), Name("b"), ID(1)}

	method, got, err := resolvePlayerIDs(in, true)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, in, got)
}

func TestParameterErrorMessages(t *testing.T) {
	err := invalidParam(ParamPlatform, "foo")
	assert.Equal(t, `invalid platform "foo": must be one of steam, ps4, xboxone, switch`, err.Error())

	err = playerIDError(ErrTooManyInputs)
	assert.Equal(t, "player_id: too many player IDs", err.Error())
}
