package cli

import (
	"fmt"

	"github.com/dmitrijs2005/playerprofile/internal/common"
	"github.com/dmitrijs2005/playerprofile/internal/server/models"
	"github.com/spf13/cobra"
)

// readSecret prompts for a secret on the terminal. The services take the
// secret as a string, so the returned value is an immutable copy.
func readSecret(cmd *cobra.Command) (string, error) {
	b, err := GetSecret(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return string(b), nil
}

// currentToken returns the saved token or a hint to log in.
func currentToken(st *state) (string, error) {
	tok, err := loadToken(st.tokenFile)
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", fmt.Errorf("%w: run `profilectl login` first", common.ErrUnauthenticated)
	}
	return tok, nil
}

func newRegisterCmd(st *state) *cobra.Command {
	var in models.AccountInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.ErrOrStderr()
			for _, q := range []struct {
				v      *string
				prompt string
			}{
				{&in.Username, "Username"},
				{&in.FirstName, "First name"},
				{&in.LastName, "Last name"},
				{&in.DateOfBirth, "Date of birth (YYYY-MM-DD)"},
				{&in.City, "City"},
				{&in.Country, "Country"},
				{&in.Email, "Email"},
			} {
				if err := ask(st.reader, w, q.v, q.prompt); err != nil {
					return err
				}
			}

			secret, err := readSecret(cmd)
			if err != nil {
				return err
			}
			in.Secret = secret

			account, err := st.app.Portal.Register(cmd.Context(), in)
			if err != nil {
				return err
			}

			st.out(cmd).Print(account)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Username, "user", "", "Username")
	f.StringVar(&in.FirstName, "first-name", "", "First name")
	f.StringVar(&in.LastName, "last-name", "", "Last name")
	f.StringVar(&in.DateOfBirth, "dob", "", "Date of birth, YYYY-MM-DD")
	f.StringVar(&in.Club, "club", "", "Club")
	f.StringVar(&in.School, "school", "", "School")
	f.StringVar(&in.Address1, "address1", "", "Address line 1")
	f.StringVar(&in.Address2, "address2", "", "Address line 2")
	f.StringVar(&in.City, "city", "", "City")
	f.StringVar(&in.Country, "country", "", "Country")
	f.StringVar(&in.Telephone, "telephone", "", "Telephone")
	f.StringVar(&in.Email, "email", "", "Email")

	return cmd
}

func newLoginCmd(st *state) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Open a session and save its token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ask(st.reader, cmd.ErrOrStderr(), &user, "Username"); err != nil {
				return err
			}
			secret, err := readSecret(cmd)
			if err != nil {
				return err
			}

			tok, err := st.app.Portal.Login(cmd.Context(), user, secret)
			if err != nil {
				return err
			}

			if err := saveToken(st.tokenFile, tok.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			st.out(cmd).Print(tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username")
	return cmd
}

func newLogoutCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := loadToken(st.tokenFile)
			if err != nil {
				return err
			}
			if tok != "" {
				if err := st.app.Portal.Logout(cmd.Context(), tok); err != nil {
					return err
				}
			}
			if err := removeToken(st.tokenFile); err != nil {
				return err
			}
			st.out(cmd).PrintMessage("logged out")
			return nil
		},
	}
}

func newWhoamiCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account of the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := currentToken(st)
			if err != nil {
				return err
			}
			account, err := st.app.Portal.Account(cmd.Context(), tok)
			if err != nil {
				return err
			}
			st.out(cmd).Print(account)
			return nil
		},
	}
}
