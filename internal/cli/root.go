// Package cli implements profilectl, an operator command line over the
// player profile service. It opens the configured store directly; there is
// no server to talk to.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/playerprofile/internal/server"
	"github.com/dmitrijs2005/playerprofile/internal/server/config"
	"github.com/spf13/cobra"
)

// newApp is a seam for tests.
var newApp = server.NewApp

// state is shared by every command of one invocation.
type state struct {
	configPath string
	tokenFile  string
	output     string
	verbose    bool

	app    *server.App
	reader *bufio.Reader
}

func (s *state) out(cmd *cobra.Command) *Output {
	return NewOutput(s.output, cmd.OutOrStdout())
}

// close releases the app opened by PersistentPreRunE. Safe to call twice.
func (s *state) close() error {
	if s.app == nil {
		return nil
	}
	err := s.app.Close()
	s.app = nil
	return err
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *state) {
	st := &state{
		tokenFile: defaultTokenFile(),
		output:    "text",
	}

	rootCmd := &cobra.Command{
		Use:   "profilectl",
		Short: "Operator CLI for the player profile service",
		Long: `profilectl registers accounts, opens sessions and edits player profiles
directly against the configured store. Settings come from the same sources as
the daemon: defaults, .env, PROFILE_* variables and the JSON file given with --config.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(st.configPath)
			if err != nil {
				return err
			}
			if !st.verbose {
				cfg.LogLevel = "error"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			var logOut io.Writer = cmd.ErrOrStderr()
			st.app, err = newApp(cmd.Context(), cfg, logOut)
			if err != nil {
				return err
			}
			st.reader = bufio.NewReader(cmd.InOrStdin())
			return st.app.Migrate(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return st.close()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&st.configPath, "config", "c", "", "JSON config file")
	rootCmd.PersistentFlags().StringVar(&st.tokenFile, "token-file", st.tokenFile, "Session token file")
	rootCmd.PersistentFlags().StringVarP(&st.output, "output", "o", st.output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "Log service activity to stderr")

	rootCmd.AddCommand(newMigrateCmd(st))
	rootCmd.AddCommand(newRegisterCmd(st))
	rootCmd.AddCommand(newLoginCmd(st))
	rootCmd.AddCommand(newLogoutCmd(st))
	rootCmd.AddCommand(newWhoamiCmd(st))
	rootCmd.AddCommand(newProfileCmd(st))
	rootCmd.AddCommand(newCareerCmd(st))
	rootCmd.AddCommand(newSweepCmd(st))

	return rootCmd, st
}

// execute runs cmd and closes the app afterwards. cobra skips
// PersistentPostRunE when RunE fails, so the close cannot live there alone.
func execute(ctx context.Context, cmd *cobra.Command, st *state) error {
	err := cmd.ExecuteContext(ctx)
	return errors.Join(err, st.close())
}

// Execute runs the root command
func Execute() {
	cmd, st := newRootCmd()
	if err := execute(context.Background(), cmd, st); err != nil {
		os.Exit(1)
	}
}

func newMigrateCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			// PersistentPreRunE has already migrated.
			st.out(cmd).PrintMessage("schema is up to date")
			return nil
		},
	}
}

func newSweepCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired sessions now",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := st.app.Sessions.SweepExpired(cmd.Context())
			if err != nil {
				return err
			}
			st.out(cmd).PrintMessage(fmt.Sprintf("%d expired session(s) removed", n))
			return nil
		},
	}
}
