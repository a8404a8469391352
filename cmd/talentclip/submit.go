package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/use-agent/talentclip/models"
)

// fieldFlags maps command-line flags to form fields.
var fieldFlags = []struct {
	flag  string
	field models.Field
	usage string
}{
	{"full-name", models.FieldFullName, "override the full name"},
	{"headline", models.FieldHeadline, "override the headline"},
	{"current-role", models.FieldCurrentRole, "override the current role"},
	{"current-company", models.FieldCurrentCompany, "override the current company"},
	{"profile-url", models.FieldProfileURL, "override the profile URL"},
	{"possible-role", models.FieldPossibleRole, "role this talent could fill (remembered)"},
	{"tags", models.FieldTags, "comma-separated tags (remembered)"},
	{"notes", models.FieldNotes, "free-form notes (remembered)"},
}

var errSubmitFailed = errors.New("submission failed")

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Collect the current profile and register it as a talent",
	Long: `Collect the current profile, apply overrides and post it to the talent API.

Possible role, tags and notes are remembered between runs until a
submission succeeds.

Examples:
  talentclip submit --possible-role "Backend Engineer" --tags "go, postgres"
  talentclip submit --html profile.html --url https://www.linkedin.com/in/someone --notes "referral"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, cmd, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ctl.Open(ctx); err != nil {
			slog.Warn("extraction incomplete", "error", err)
			printStatus(a.ctl.State().Status)
		}

		for _, ff := range fieldFlags {
			if !cmd.Flags().Changed(ff.flag) {
				continue
			}
			v, _ := cmd.Flags().GetString(ff.flag)
			if err := a.ctl.Edit(ctx, ff.field, v); err != nil {
				return err
			}
		}

		submitErr := a.ctl.Submit(ctx)
		state := a.ctl.State()
		printStatus(state.Status)
		if submitErr != nil {
			if state.Focus != "" {
				fmt.Fprintf(os.Stderr, "  set it with --%s\n", flagFor(state.Focus))
			}
			return errSubmitFailed
		}
		return nil
	},
}

func init() {
	addPageFlags(submitCmd)
	for _, ff := range fieldFlags {
		submitCmd.Flags().String(ff.flag, "", ff.usage)
	}
}

func flagFor(f models.Field) string {
	for _, ff := range fieldFlags {
		if ff.field == f {
			return ff.flag
		}
	}
	return string(f)
}

func printStatus(s models.Status) {
	if s.Message == "" {
		return
	}
	fmt.Fprintf(os.Stderr, "[%s] %s\n", s.Kind, s.Message)
}
