package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/99designs/keyring"
	"github.com/spf13/cobra"

	"github.com/s0up4200/rlstats/config"
)

// promptToken reads a token without echo from a terminal. Tests replace it.
var promptToken = func(prompt string) (string, error) {
	return keyring.TerminalPrompt(prompt)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the API token stored in the OS keyring",
}

var authLoginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Store an API token in the OS keyring",
	Long: `Store an API token in the OS keyring. The token is read from the argument,
from a hidden prompt on a terminal, or from the first line of stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			var err error
			token, err = readToken(cmd.InOrStdin())
			if err != nil {
				return err
			}
		}

		if err := config.SaveToken(token); err != nil {
			return err
		}

		logger.Info().Msg("API token saved to keyring")
		fmt.Fprintln(cmd.OutOrStdout(), "Token saved.")
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the API token from the OS keyring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.DeleteToken(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Token removed.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the API token comes from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if cfg.API.Token != "" {
			fmt.Fprintf(out, "Token %s set via flag, environment or config file.\n", maskToken(cfg.API.Token))
			return nil
		}

		token, err := config.LoadToken()
		switch {
		case errors.Is(err, config.ErrNoToken):
			fmt.Fprintln(out, "No token configured.")
			return nil
		case err != nil:
			return err
		}

		fmt.Fprintf(out, "Token %s stored in keyring.\n", maskToken(token))
		return nil
	},
}

// readToken prompts on a terminal and reads a line otherwise
func readToken(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		return promptToken("API token: ")
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	token := strings.TrimSpace(line)
	if token == "" {
		return "", errors.New("no token given")
	}
	return token, nil
}

// maskToken keeps the first and last characters of long tokens
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	rootCmd.AddCommand(authCmd)
}
