package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"jobtrack/internal/app"
	"jobtrack/internal/jt"

	"github.com/spf13/cobra"
)

// app command
var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Manage job applications",
}

var appAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an application",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := app.NewApplication{}
		in.Company, _ = cmd.Flags().GetString("company")
		in.CompanyID, _ = cmd.Flags().GetString("company-id")
		in.ContactID, _ = cmd.Flags().GetString("contact-id")
		in.Position, _ = cmd.Flags().GetString("position")
		in.Notes, _ = cmd.Flags().GetString("notes")
		in.URL, _ = cmd.Flags().GetString("url")
		in.Favorite, _ = cmd.Flags().GetBool("favorite")

		if s, _ := cmd.Flags().GetString("date"); s != "" {
			d, err := time.Parse(jt.DateLayout, s)
			if err != nil {
				return fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
			}
			in.Date = d
		}
		stages, _ := cmd.Flags().GetStringSlice("stage")
		for _, s := range stages {
			in.Stages = append(in.Stages, app.StageFromInput(s, ""))
		}

		return withApp(cmd, "AddApplication", func(ctx context.Context, a *app.JTApp) error {
			created, err := a.AddApplication(ctx, in)
			if created != nil {
				fmt.Printf("Added %s\n", created.ID)
				printStages(a, created)
			}
			return err
		})
	},
}

var appListCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetString("filter")

		return withApp(cmd, "ListApplications", func(ctx context.Context, a *app.JTApp) error {
			apps, err := a.ListApplications(ctx, filter)
			if err != nil {
				return err
			}
			if len(apps) == 0 {
				fmt.Println("No applications.")
				return nil
			}
			for _, x := range apps {
				fav := " "
				if x.Favorite {
					fav = "*"
				}
				fmt.Printf("%s %s  %-20s  %-24s  %s  %s\n",
					fav,
					x.ID,
					x.Company,
					x.Position,
					x.Date.Format(jt.DateLayout),
					x.CurrentStageName(),
				)
			}
			return nil
		})
	},
}

var appShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show an application and its stages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "ShowApplication", func(ctx context.Context, a *app.JTApp) error {
			x, err := a.ShowApplication(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s at %s\n", x.Position, x.Company)
			fmt.Printf("ID:       %s\n", x.ID)
			fmt.Printf("Applied:  %s\n", x.Date.Format(jt.DateLayout))
			if x.URL != "" {
				fmt.Printf("URL:      %s\n", x.URL)
			}
			if x.CompanySummary != nil && x.CompanySummary.Website != "" {
				fmt.Printf("Website:  %s\n", x.CompanySummary.Website)
			}
			if x.ContactSummary != nil {
				fmt.Printf("Contact:  %s %s\n", x.ContactSummary.Name, x.ContactSummary.Email)
			}
			if x.Notes != "" {
				fmt.Printf("Notes:    %s\n", x.Notes)
			}
			fmt.Println()
			printStages(a, x)
			return nil
		})
	},
}

var appEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var edit app.ApplicationEdit
		edit.Company = changedString(cmd, "company")
		edit.CompanyID = changedString(cmd, "company-id")
		edit.ContactID = changedString(cmd, "contact-id")
		edit.Position = changedString(cmd, "position")
		edit.Notes = changedString(cmd, "notes")
		edit.URL = changedString(cmd, "url")
		if s := changedString(cmd, "date"); s != nil {
			d, err := time.Parse(jt.DateLayout, *s)
			if err != nil {
				return fmt.Errorf("invalid date %q: want YYYY-MM-DD", *s)
			}
			edit.Date = &d
		}

		return withApp(cmd, "EditApplication", func(ctx context.Context, a *app.JTApp) error {
			updated, err := a.EditApplication(ctx, args[0], edit)
			if updated != nil {
				fmt.Printf("Updated %s\n", updated.ID)
			}
			return err
		})
	},
}

var appFavCmd = &cobra.Command{
	Use:   "fav ID",
	Short: "Toggle the favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "ToggleFavorite", func(ctx context.Context, a *app.JTApp) error {
			updated, err := a.ToggleFavorite(ctx, args[0])
			if updated != nil {
				fmt.Printf("Favorite: %v\n", updated.Favorite)
			}
			return err
		})
	},
}

var appArchiveCmd = &cobra.Command{
	Use:   "archive ID",
	Short: "Archive or unarchive an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "ArchiveApplication", func(ctx context.Context, a *app.JTApp) error {
			updated, changed, err := a.ArchiveApplication(ctx, args[0])
			if err != nil {
				return err
			}
			if !changed {
				fmt.Println("Archive state changed elsewhere; nothing written.")
				return nil
			}
			fmt.Printf("Archived: %v\n", updated.IsArchived)
			return nil
		})
	},
}

var appRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "DeleteApplication", func(ctx context.Context, a *app.JTApp) error {
			if err := a.DeleteApplication(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		})
	},
}

// stage command
var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Manage an application's stages",
}

var stageAddCmd = &cobra.Command{
	Use:   "add APP_ID KEY_OR_NAME",
	Short: "Append a stage from the catalog or by name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		icon, _ := cmd.Flags().GetString("icon")

		return withApp(cmd, "AddStage", func(ctx context.Context, a *app.JTApp) error {
			updated, err := a.AddStage(ctx, args[0], app.StageFromInput(args[1], icon))
			if updated != nil {
				printStages(a, updated)
			}
			return err
		})
	},
}

var stageRmCmd = &cobra.Command{
	Use:   "rm APP_ID INDEX",
	Short: "Remove a stage",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid stage index %q", args[1])
		}

		return withApp(cmd, "RemoveStage", func(ctx context.Context, a *app.JTApp) error {
			updated, err := a.RemoveStage(ctx, args[0], i)
			if updated != nil {
				printStages(a, updated)
			}
			return err
		})
	},
}

var stageToggleCmd = &cobra.Command{
	Use:   "toggle APP_ID INDEX",
	Short: "Mark a stage done, or undo it and every later stage",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid stage index %q", args[1])
		}

		return withApp(cmd, "ToggleStage", func(ctx context.Context, a *app.JTApp) error {
			updated, celebrate, err := a.ToggleStage(ctx, args[0], i)
			if updated != nil {
				printStages(a, updated)
			}
			if celebrate {
				fmt.Println("\nCongratulations!")
			}
			return err
		})
	},
}

var stageCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List predefined stages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "StageCatalog", func(ctx context.Context, a *app.JTApp) error {
			for _, t := range jt.StageCatalog() {
				fmt.Printf("%-14s %s %s\n", t.Key, a.Icons().Resolve(t.Icon), t.Name)
			}
			return nil
		})
	},
}

func printStages(a *app.JTApp, x *jt.Application) {
	for _, line := range a.RenderStages(x) {
		fmt.Println(line)
	}
}

// changedString returns the flag value only if it was set.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func init() {
	for _, c := range []*cobra.Command{appAddCmd, appEditCmd} {
		c.Flags().String("company", "", "Company name")
		c.Flags().String("company-id", "", "Linked company record")
		c.Flags().String("contact-id", "", "Linked contact record")
		c.Flags().String("position", "", "Position applied for")
		c.Flags().String("notes", "", "Free-form notes")
		c.Flags().String("url", "", "Job posting URL")
		c.Flags().String("date", "", "Application date (YYYY-MM-DD, default today)")
	}
	appAddCmd.Flags().Bool("favorite", false, "Mark as favorite")
	appAddCmd.Flags().StringSlice("stage", nil, "Stage key or name, repeatable (default: the standard pipeline)")
	appListCmd.Flags().StringP("filter", "f", "active", "active, favorite or archived")

	appCmd.AddCommand(appAddCmd)
	appCmd.AddCommand(appListCmd)
	appCmd.AddCommand(appShowCmd)
	appCmd.AddCommand(appEditCmd)
	appCmd.AddCommand(appFavCmd)
	appCmd.AddCommand(appArchiveCmd)
	appCmd.AddCommand(appRmCmd)

	stageAddCmd.Flags().String("icon", "", "Icon name (overrides the catalog icon)")

	stageCmd.AddCommand(stageAddCmd)
	stageCmd.AddCommand(stageRmCmd)
	stageCmd.AddCommand(stageToggleCmd)
	stageCmd.AddCommand(stageCatalogCmd)
}
