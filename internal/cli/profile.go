package cli

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/playerprofile/internal/server/models"
	"github.com/spf13/cobra"
)

func newProfileCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "General profile commands",
	}

	cmd.AddCommand(newProfileSetCmd(st))
	cmd.AddCommand(newProfileShowCmd(st))

	return cmd
}

func newProfileSetCmd(st *state) *cobra.Command {
	var (
		in           models.GeneralProfileInput
		height       int
		weight       int
		headshotPath string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the general profile, replacing the previous one",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := currentToken(st)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("height") {
				in.HeightCm = &height
			}
			if cmd.Flags().Changed("weight") {
				in.WeightKg = &weight
			}

			var headshot []byte
			if headshotPath != "" {
				headshot, err = os.ReadFile(headshotPath)
				if err != nil {
					return fmt.Errorf("read headshot: %w", err)
				}
			}

			p, err := st.app.Portal.SaveGeneralProfile(cmd.Context(), tok, in, headshot)
			if err != nil {
				return err
			}

			st.out(cmd).Print(p)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.BirthCountry, "birth-country", "", "Country of birth")
	f.StringVar(&in.PassportCountry, "passport-country", "", "Passport country")
	f.IntVar(&height, "height", 0, "Height in cm")
	f.IntVar(&weight, "weight", 0, "Weight in kg")
	f.StringVar(&in.PreferredFoot, "foot", "", "Preferred foot: left, right, both")
	f.StringVar(&in.Position, "position", "", "Playing position")
	f.StringVar(&headshotPath, "headshot", "", "Headshot image file (PNG, JPEG, GIF or WebP)")

	return cmd
}

func newProfileShowCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the general profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := currentToken(st)
			if err != nil {
				return err
			}

			p, err := st.app.Portal.GeneralProfile(cmd.Context(), tok)
			if err != nil {
				return err
			}
			if p == nil {
				st.out(cmd).PrintMessage("no profile saved yet")
				return nil
			}

			url, err := st.app.Portal.HeadshotURL(cmd.Context(), tok)
			if err != nil {
				return err
			}

			st.out(cmd).Print(ProfileView{Profile: p, HeadshotURL: url})
			return nil
		},
	}
}
