package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/playerprofile/internal/server/models"
	"github.com/dmitrijs2005/playerprofile/internal/server/services"
)

// ProfileView is a general profile together with its resolved headshot URL.
type ProfileView struct {
	Profile     *models.GeneralProfile
	HeadshotURL string
}

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *models.Account:
		o.printAccount(v)
	case *services.SessionToken:
		fmt.Fprintf(o.w, "Logged in as %s until %s\n", v.AccountID, v.ExpiresAt.Local().Format("2006-01-02 15:04"))
	case *models.GeneralProfile:
		o.printProfile(v, "")
	case ProfileView:
		o.printProfile(v.Profile, v.HeadshotURL)
	case *models.CareerEntry:
		o.printCareer([]*models.CareerEntry{v})
	case []*models.CareerEntry:
		o.printCareer(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printAccount(a *models.Account) {
	fmt.Fprintf(o.w, "Account: %s (%s)\n", a.Username, a.ID)
	fmt.Fprintf(o.w, "Name: %s %s\n", a.FirstName, a.LastName)
	fmt.Fprintf(o.w, "Born: %s\n", a.DateOfBirth)
	if a.Club != "" {
		fmt.Fprintf(o.w, "Club: %s\n", a.Club)
	}
	fmt.Fprintf(o.w, "Location: %s, %s\n", a.City, a.Country)
	fmt.Fprintf(o.w, "Email: %s\n", a.Email)
}

func (o *Output) printProfile(p *models.GeneralProfile, headshotURL string) {
	fmt.Fprintf(o.w, "Player: %s\n", p.Username)
	fmt.Fprintf(o.w, "Born in: %s, passport: %s\n", p.BirthCountry, p.PassportCountry)
	fmt.Fprintf(o.w, "Height: %d cm, weight: %d kg\n", p.HeightCm, p.WeightKg)
	fmt.Fprintf(o.w, "Position: %s (%s foot)\n", p.Position, p.PreferredFoot)
	if headshotURL != "" {
		fmt.Fprintf(o.w, "Headshot: %s\n", headshotURL)
	} else if p.HeadshotRef != "" {
		fmt.Fprintf(o.w, "Headshot: %s\n", p.HeadshotRef)
	}
}

func (o *Output) printCareer(entries []*models.CareerEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(o.w, "no career entries")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEASON\tTEAM\tCOMPETITION\tAPPS\tSTARTS\tSUBS\tG\tA\tYC\tRC\tSAVES")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			e.Season, e.Team, e.Competition, e.Appearances, e.Starts, e.SubstituteAppearances,
			e.Goals, e.Assists, e.YellowCards, e.RedCards, e.Saves)
	}
	_ = tw.Flush()
}
