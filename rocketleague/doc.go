// Package rocketleague provides a client for the official Rocket League stats API.
//
// The API exposes a small, fixed set of endpoints: population, regions, the
// skill and stat leaderboards, player skills, player titles and per-player stat
// values. Every endpoint is described once in a static catalog; the client
// validates parameters against it, picks GET or POST, builds the URL path and
// the request body, and decodes the response.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := rocketleague.NewClient("your-api-token", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//
//	// One player: GET /api/v1/steam/playerskills/76561198024807207/
//	res, err := client.PlayerSkills(ctx, rocketleague.PlatformSteam, rocketleague.ID(76561198024807207))
//
//	// Several players: POST /api/v1/steam/playerskills/ {"player_ids": [...]}
//	res, err = client.PlayerSkills(ctx, rocketleague.PlatformSteam,
//		rocketleague.ID(76561198024807207), rocketleague.ID(76561198008869772))
//
//	var skills []rocketleague.PlayerSkillSet
//	if err := res.Decode(&skills); err != nil {
//		log.Fatal(err)
//	}
//
// # Player identifiers
//
// Steam players are identified by numeric ID, console players by name. A call
// takes between 1 and MaxPlayerIDs identifiers; a single identifier is sent as
// a path segment with GET, several are sent as a JSON body with POST.
//
// # Modes
//
// WithDebugRequest makes every call return only its RequestPlan (method, URL
// and body) without touching the network. WithDebugResponse returns the raw
// *http.Response instead of decoding it. By default the body is decoded as
// JSON, falling back to plain text.
//
// # Error Handling
//
// Validation failures wrap one of ErrInvalidParameter, ErrEmptyInput,
// ErrTooManyInputs or ErrSingleValueRequired in a *ParameterError and are
// returned before any request is made. Non-2xx responses are not errors;
// Result.Err converts them into an *APIError when wanted.
package rocketleague
