package main

import (
	"context"
	"fmt"

	"jobtrack/internal/app"
	"jobtrack/internal/jt"

	"github.com/spf13/cobra"
)

// company command
var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage companies",
}

var companyAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := &jt.Company{Name: args[0]}
		c.Phone, _ = cmd.Flags().GetString("phone")
		c.Email, _ = cmd.Flags().GetString("email")
		c.Website, _ = cmd.Flags().GetString("website")
		c.Notes, _ = cmd.Flags().GetString("notes")

		return withApp(cmd, "AddCompany", func(ctx context.Context, a *app.JTApp) error {
			created, err := a.AddCompany(ctx, c)
			if err != nil {
				return err
			}
			fmt.Printf("Added company %s\n", created.ID)
			return nil
		})
	},
}

var companyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "ListCompanies", func(ctx context.Context, a *app.JTApp) error {
			companies := a.ListCompanies(ctx)
			if len(companies) == 0 {
				fmt.Println("No companies.")
				return nil
			}
			for _, c := range companies {
				fmt.Printf("%s  %-24s  %s\n", c.ID, c.Name, c.Website)
			}
			return nil
		})
	},
}

var companyEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		edit := app.CompanyEdit{
			Name:    changedString(cmd, "name"),
			Phone:   changedString(cmd, "phone"),
			Email:   changedString(cmd, "email"),
			Website: changedString(cmd, "website"),
			Notes:   changedString(cmd, "notes"),
		}

		return withApp(cmd, "EditCompany", func(ctx context.Context, a *app.JTApp) error {
			if _, err := a.EditCompany(ctx, args[0], edit); err != nil {
				return err
			}
			fmt.Printf("Updated company %s\n", args[0])
			return nil
		})
	},
}

var companyRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "DeleteCompany", func(ctx context.Context, a *app.JTApp) error {
			if err := a.DeleteCompany(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted company %s\n", args[0])
			return nil
		})
	},
}

// contact command
var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage contacts",
}

var contactAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := &jt.Contact{Name: args[0]}
		c.Phone, _ = cmd.Flags().GetString("phone")
		c.Email, _ = cmd.Flags().GetString("email")
		c.Position, _ = cmd.Flags().GetString("position")
		c.Notes, _ = cmd.Flags().GetString("notes")

		return withApp(cmd, "AddContact", func(ctx context.Context, a *app.JTApp) error {
			created, err := a.AddContact(ctx, c)
			if err != nil {
				return err
			}
			fmt.Printf("Added contact %s\n", created.ID)
			return nil
		})
	},
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "ListContacts", func(ctx context.Context, a *app.JTApp) error {
			contacts := a.ListContacts(ctx)
			if len(contacts) == 0 {
				fmt.Println("No contacts.")
				return nil
			}
			for _, c := range contacts {
				fmt.Printf("%s  %-24s  %s\n", c.ID, c.Name, c.Email)
			}
			return nil
		})
	},
}

var contactEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		edit := app.ContactEdit{
			Name:     changedString(cmd, "name"),
			Phone:    changedString(cmd, "phone"),
			Email:    changedString(cmd, "email"),
			Position: changedString(cmd, "position"),
			Notes:    changedString(cmd, "notes"),
		}

		return withApp(cmd, "EditContact", func(ctx context.Context, a *app.JTApp) error {
			if _, err := a.EditContact(ctx, args[0], edit); err != nil {
				return err
			}
			fmt.Printf("Updated contact %s\n", args[0])
			return nil
		})
	},
}

var contactRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, "DeleteContact", func(ctx context.Context, a *app.JTApp) error {
			if err := a.DeleteContact(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted contact %s\n", args[0])
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{companyAddCmd, companyEditCmd} {
		c.Flags().String("phone", "", "Phone number")
		c.Flags().String("email", "", "Email address")
		c.Flags().String("website", "", "Website")
		c.Flags().String("notes", "", "Notes")
	}
	companyEditCmd.Flags().String("name", "", "Company name")

	for _, c := range []*cobra.Command{contactAddCmd, contactEditCmd} {
		c.Flags().String("phone", "", "Phone number")
		c.Flags().String("email", "", "Email address")
		c.Flags().String("position", "", "Job title")
		c.Flags().String("notes", "", "Notes")
	}
	contactEditCmd.Flags().String("name", "", "Contact name")

	companyCmd.AddCommand(companyAddCmd)
	companyCmd.AddCommand(companyListCmd)
	companyCmd.AddCommand(companyEditCmd)
	companyCmd.AddCommand(companyRmCmd)

	contactCmd.AddCommand(contactAddCmd)
	contactCmd.AddCommand(contactListCmd)
	contactCmd.AddCommand(contactEditCmd)
	contactCmd.AddCommand(contactRmCmd)
}
