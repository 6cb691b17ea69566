package rocketleague

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL)}, opts...)
	client, err := NewClient("test-token", zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name     string
		opts     []Option
		wantErr  bool
		wantRoot string
		wantMode Mode
	}{
		{
			name:     "defaults",
			wantRoot: "https://api.rocketleague.com/api/v1/",
			wantMode: ModeDefault,
		},
		{
			name:     "custom base URL with trailing slash",
			opts:     []Option{WithBaseURL("http://localhost:8080/")},
			wantRoot: "http://localhost:8080/api/v1/",
			wantMode: ModeDefault,
		},
		{
			name:    "base URL without host",
			opts:    []Option{WithBaseURL("localhost")},
			wantErr: true,
		},
		{
			name:     "debug request",
			opts:     []Option{WithDebugRequest(true)},
			wantRoot: "https://api.rocketleague.com/api/v1/",
			wantMode: ModeDebugRequest,
		},
		{
			name:     "debug request wins over debug response",
			opts:     []Option{WithDebugResponse(true), WithDebugRequest(true)},
			wantRoot: "https://api.rocketleague.com/api/v1/",
			wantMode: ModeDebugRequest,
		},
		{
			name:     "debug response",
			opts:     []Option{WithDebugResponse(true)},
			wantRoot: "https://api.rocketleague.com/api/v1/",
			wantMode: ModeDebugResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient("token", logger, tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRoot, client.APIRoot())
			assert.Equal(t, tt.wantMode, client.Mode())
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("token", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("default timeout is left to the transport", func(t *testing.T) {
		client, err := NewClient("token", logger)
		require.NoError(t, err)
		assert.Zero(t, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("token", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("with user agent", func(t *testing.T) {
		client, err := NewClient("token", logger, WithUserAgent("rlstats/1.2.3"))
		require.NoError(t, err)
		assert.Equal(t, "rlstats/1.2.3", client.Headers().Get("User-Agent"))
	})

	t.Run("default user agent", func(t *testing.T) {
		client, err := NewClient("token", logger)
		require.NoError(t, err)
		assert.Equal(t, "go-rocket-league/"+Version, client.Headers().Get("User-Agent"))
	})
}

func TestRequestHeaders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/regions/", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Token test-token", r.Header.Get("Authorization"))
		assert.Equal(t, DefaultUserAgent(), r.Header.Get("User-Agent"))
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.Write([]byte(`[{"region":"EU","platforms":"Steam,PS4,XboxOne"}]`))
	})

	result, err := client.Regions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.True(t, result.IsJSON())

	var regions []Region
	require.NoError(t, result.Decode(&regions))
	require.Len(t, regions, 1)
	assert.Equal(t, "EU", regions[0].Region)
	assert.Equal(t, []string{"Steam", "PS4", "XboxOne"}, regions[0].PlatformList())
}

func TestPostBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/steam/playerskills/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"player_ids":[76561198024807207,"Intact"]}`, string(body))

		w.Write([]byte(`[]`))
	})

	_, err := client.PlayerSkills(context.Background(), PlatformSteam, ID(76561198024807207), Name("Intact"))
	require.NoError(t, err)
}

func TestDefaultModeDecoding(t *testing.T) {
	t.Run("non-2xx is returned, not raised", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Invalid token header. No credentials provided."}`))
		})

		result, err := client.Regions(context.Background())
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, result.StatusCode)
		assert.Equal(t, map[string]any{"detail": "Invalid token header. No credentials provided."}, result.JSON)

		var apiErr *APIError
		require.ErrorAs(t, result.Err(), &apiErr)
		assert.True(t, apiErr.IsUnauthorized())
	})

	t.Run("malformed JSON falls back to text", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(ServerErrorBody))
		})

		result, err := client.StatsValueForUser(context.Background(), PlatformXbox, StatAssists, Name("Liquid Cight"))
		require.NoError(t, err)
		assert.False(t, result.IsJSON())
		assert.Equal(t, ServerErrorBody, result.Text)
		assert.Equal(t, ServerErrorBody, result.Value())
		assert.Error(t, result.Decode(&[]StatValue{}))
	})

	t.Run("large ids keep their precision", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"user_id":76561198024807207,"user_name":"x","player_skills":[]}]`))
		})

		result, err := client.PlayerSkills(context.Background(), PlatformSteam, ID(76561198024807207))
		require.NoError(t, err)

		rows, ok := result.JSON.([]any)
		require.True(t, ok)
		row := rows[0].(map[string]any)
		assert.Equal(t, json.Number("76561198024807207"), row["user_id"])

		var skills []PlayerSkillSet
		require.NoError(t, result.Decode(&skills))
		assert.Equal(t, int64(76561198024807207), skills[0].UserID)
	})

	t.Run("null body is valid JSON", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`null`))
		})

		result, err := client.Population(context.Background())
		require.NoError(t, err)
		assert.True(t, result.IsJSON())
		assert.Nil(t, result.Value())
		assert.Empty(t, result.Text)

		var population Population
		require.NoError(t, result.Decode(&population))
		assert.Nil(t, population)
	})

	t.Run("2xx has no error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})

		result, err := client.Population(context.Background())
		require.NoError(t, err)
		assert.NoError(t, result.Err())
	})
}

func TestDebugResponseMode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid token header. No credentials provided."}`))
	}, WithDebugResponse(true))

	result, err := client.Regions(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result.Response)
	defer result.Response.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, result.Response.StatusCode)
	body, err := io.ReadAll(result.Response.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"detail":"Invalid token header. No credentials provided."}`, string(body))
	assert.Nil(t, result.JSON)
	assert.Error(t, result.Decode(&map[string]any{}))
}

func TestDebugRequestModeSkipsNetwork(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, WithDebugRequest(true))

	result, err := client.PlayerSkills(context.Background(), PlatformSteam, ID(1), ID(2))
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, http.MethodPost, result.Plan.Method)
	assert.Nil(t, result.Response)
	assert.NoError(t, result.Err())
}

func TestValidationHappensBeforeNetwork(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.PlayerSkills(context.Background(), "foo", ID(1))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = client.PlayerSkills(context.Background(), PlatformSteam)
	assert.ErrorIs(t, err, ErrEmptyInput)

	assert.False(t, called)
}

func TestTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := NewClient("token", zerolog.Nop(), WithBaseURL(baseURL))
	require.NoError(t, err)

	_, err = client.Population(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "population request failed")
}

func TestAPIError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &APIError{StatusCode: 404, Body: "Not Found"}
		assert.Equal(t, "rocket league API error: status 404: Not Found", err.Error())
		assert.True(t, err.IsNotFound())
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{401, true},
			{403, true},
			{404, false},
			{500, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			assert.Equal(t, tt.expected, err.IsUnauthorized())
		}
	})
}
