package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"blogctl/internal/app"
	"blogctl/internal/blog"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "users.list")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Read(cmd.Context(), app.RoleFor("users"), func(ctx context.Context) error {
			page, err := a.API().Users.List(ctx, listParams(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, u := range page.Data {
				fmt.Fprintf(out, "%-24s  %-7s  %-32s  %s\n", u.ID, u.Role, u.Email, u.Name)
			}
			printPagination(out, page.Pagination, len(page.Data))
			return nil
		})
	},
}

var usersShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "users.show")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Read(cmd.Context(), app.RoleFor("users"), func(ctx context.Context) error {
			u, err := a.API().Users.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), u)
			return nil
		})
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create EMAIL",
	Short: "Create a user (the password is prompted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")
		password, err := promptPassword(cmd, "Password for "+args[0]+": ")
		if err != nil {
			return err
		}
		in := blog.UserCreateInput{
			Email:    args[0],
			Password: password,
			Name:     name,
			Role:     blog.Role(strings.ToUpper(role)),
		}

		a, err := newApp(cmd, "users.create")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Mutate(cmd.Context(), app.RoleFor("users"), "email="+in.Email, func(ctx context.Context) error {
			u, err := a.API().Users.Create(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s, %s)\n", u.Email, u.Role, u.ID)
			return nil
		})
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update a user; the email cannot be changed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := blog.UserUpdateInput{
			Name:   optionalString(cmd, "name"),
			Bio:    optionalString(cmd, "bio"),
			Avatar: optionalString(cmd, "avatar"),
		}
		if r := optionalString(cmd, "role"); r != nil {
			role := blog.Role(strings.ToUpper(*r))
			in.Role = &role
		}

		a, err := newApp(cmd, "users.update")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Mutate(cmd.Context(), app.RoleFor("users"), "id="+args[0], func(ctx context.Context) error {
			u, err := a.API().Users.Update(ctx, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated user %s (%s)\n", u.Email, u.Role)
			return nil
		})
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "users.delete")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Mutate(cmd.Context(), app.RoleFor("users"), "id="+args[0], func(ctx context.Context) error {
			if err := a.API().Users.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", args[0])
			return nil
		})
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd)
	addListFlags(usersListCmd, "search")
	usersCmd.AddCommand(usersShowCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCreateCmd.Flags().String("name", "", "Display name")
	usersCreateCmd.Flags().String("role", string(blog.RoleAuthor), "ADMIN, EDITOR or AUTHOR")
	usersCmd.AddCommand(usersUpdateCmd)
	usersUpdateCmd.Flags().String("name", "", "Display name")
	usersUpdateCmd.Flags().String("role", "", "ADMIN, EDITOR or AUTHOR")
	usersUpdateCmd.Flags().String("bio", "", "Biography")
	usersUpdateCmd.Flags().String("avatar", "", "Avatar URL")
	usersCmd.AddCommand(usersDeleteCmd)

	rootCmd.AddCommand(usersCmd)
}
