package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/rlstats/output"
	"github.com/s0up4200/rlstats/rocketleague"
)

var populationCmd = &cobra.Command{
	Use:   "population",
	Short: "Show the number of players online per platform and playlist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		result, err := client.Population(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd, client, result)
	},
}

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the regions and the platforms available in each",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		result, err := client.Regions(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd, client, result)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show skill and stat leaderboards",
}

var leaderboardSkillsCmd = &cobra.Command{
	Use:   "skills <platform> [playlist|all]",
	Short: "Show the skill leaderboard of a ranked playlist",
	Long: `Show the skill leaderboard of a ranked playlist.

Playlists can be given by code (10-13) or name (duels, doubles,
solo-standard, standard). Without a playlist, or with "all", every ranked
playlist is fetched concurrently.`,
	Example: `  rlstats leaderboard skills steam doubles
  rlstats leaderboard skills ps4 all -q '.standard[0]'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLeaderboardSkills,
}

func runLeaderboardSkills(cmd *cobra.Command, args []string) error {
	platform, err := parsePlatform(args[0])
	if err != nil {
		return err
	}

	var arg string
	if len(args) > 1 {
		arg = args[1]
	}
	playlists, err := parsePlaylists(arg)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	if len(playlists) == 1 {
		result, err := client.SkillLeaderboard(cmd.Context(), platform, playlists[0])
		if err != nil {
			return err
		}
		return render(cmd, client, result)
	}

	results, err := fetchSkillLeaderboards(cmd.Context(), client, platform, playlists)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(playlists))
	named := make(map[string]*rocketleague.Result, len(results))
	for _, p := range playlists {
		names = append(names, p.Name())
		named[p.Name()] = results[p]
	}
	return renderNamed(cmd, client, names, named)
}

var leaderboardStatsCmd = &cobra.Command{
	Use:   "stats <platform> [stat-type]",
	Short: "Show the stat leaderboards, or a single one",
	Long: `Show the stat leaderboards of a platform. Without a stat type every
leaderboard (assists, goals, mvps, saves, shots, wins) is returned.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, err := parsePlatform(args[0])
		if err != nil {
			return err
		}

		stat := rocketleague.StatNone
		if len(args) > 1 {
			if stat, err = parseStatType(args[1]); err != nil {
				return err
			}
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		result, err := client.StatsLeaderboard(cmd.Context(), platform, stat)
		if err != nil {
			return err
		}
		return render(cmd, client, result)
	},
}

var skillsCmd = &cobra.Command{
	Use:   "skills <platform> <player>...",
	Short: "Show the ranked skills of up to 100 players",
	Long: `Show the ranked skills of one or more players. Steam players are given by
numeric ID, console players by name. Several players are fetched in a single
request.`,
	Example: `  rlstats skills steam 76561198024807207
  rlstats skills xboxone "Liquid Cight" Kronovi -o table`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, err := parsePlatform(args[0])
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		result, err := client.PlayerSkills(cmd.Context(), platform, rocketleague.PlayerIDs(args[1:]...)...)
		if err != nil {
			return err
		}
		return render(cmd, client, result)
	},
}

var titlesCmd = &cobra.Command{
	Use:   "titles <platform> <player>",
	Short: "Show the titles of a single player",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, err := parsePlatform(args[0])
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		// More than one player is rejected by the client
		result, err := client.PlayerTitlesOf(cmd.Context(), platform, rocketleague.PlayerIDs(args[1:]...)...)
		if err != nil {
			return err
		}
		return render(cmd, client, result)
	},
}

var statCmd = &cobra.Command{
	Use:   "stat <platform> <stat-type> <player>...",
	Short: "Show one stat for up to 100 players",
	Example: `  rlstats stat steam goals 76561198024807207 76561198008869772
  rlstats stat ps4 saves Kaydop`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, err := parsePlatform(args[0])
		if err != nil {
			return err
		}
		stat, err := parseStatType(args[1])
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		result, err := client.StatsValueForUser(cmd.Context(), platform, stat, rocketleague.PlayerIDs(args[2:]...)...)
		if err != nil {
			return err
		}
		return render(cmd, client, result)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <platform> <player>...",
	Short: "Show every stat for up to 100 players, merged per player",
	Long: `Fetch every stat type for the given players and merge the values per
player. Steam players are keyed by ID, console players by name. Stat types the
API fails to serve are left out.`,
	Example: `  rlstats stats steam 76561198024807207
  rlstats stats xboxone "Liquid Cight" -o table`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, err := parsePlatform(args[0])
		if err != nil {
			return err
		}
		players := rocketleague.PlayerIDs(args[1:]...)

		client, err := newClient()
		if err != nil {
			return err
		}

		// The merged result has no single request to show
		if client.Mode() == rocketleague.ModeDebugRequest {
			plans := make(map[string]planView, len(rocketleague.StatTypes))
			for _, stat := range rocketleague.StatTypes {
				plan, err := client.Plan(rocketleague.EndpointStatsValueForUser, rocketleague.Params{
					Platform: platform,
					StatType: stat,
					Players:  players,
				})
				if err != nil {
					return err
				}
				plans[stat.String()] = newPlanView(client, plan)
			}
			return output.Write(cmd.OutOrStdout(), plans, output.Options{Compact: cfg.Output.Compact})
		}

		stats, err := client.StatsValuesForUser(cmd.Context(), platform, players...)
		if err != nil {
			return err
		}
		return writeValue(cmd, stats)
	},
}

func init() {
	leaderboardCmd.AddCommand(leaderboardSkillsCmd)
	leaderboardCmd.AddCommand(leaderboardStatsCmd)

	rootCmd.AddCommand(populationCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(titlesCmd)
	rootCmd.AddCommand(statCmd)
	rootCmd.AddCommand(statsCmd)
}
