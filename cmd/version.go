package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/s0up4200/rlstats/rocketleague"
)

// repository is the GitHub repository releases are published to
const repository = "s0up4200/rlstats"

var checkOnly bool

// releaseSource finds the latest release. Tests replace it.
var releaseSource = func(ctx context.Context) (*selfupdate.Release, bool, error) {
	return selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repository))
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "rlstats %s (built %s)\n", version, buildTime)
		fmt.Fprintf(out, "client %s, API v%s\n", rocketleague.SemVer(), rocketleague.APIVersion)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update rlstats to the latest release",
	Args:  cobra.NoArgs,
	RunE:  runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	release, found, err := releaseSource(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return errors.New("no release found for this platform")
	}

	latest, err := semver.ParseTolerant(release.Version())
	if err != nil {
		return fmt.Errorf("release has an invalid version %q: %w", release.Version(), err)
	}

	out := cmd.OutOrStdout()
	if latest.LTE(current) {
		fmt.Fprintf(out, "rlstats %s is up to date.\n", current)
		return nil
	}

	if checkOnly {
		fmt.Fprintf(out, "rlstats %s is available (current %s).\n", latest, current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}

	logger.Info().
		Str("current", current.String()).
		Str("latest", latest.String()).
		Str("asset", release.AssetName).
		Msg("Updating")

	if err := selfupdate.UpdateTo(cmd.Context(), release.AssetURL, release.AssetName, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	fmt.Fprintf(out, "Updated rlstats to %s.\n", latest)
	return nil
}

func init() {
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update is available")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}
