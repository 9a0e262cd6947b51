package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"blogctl/internal/api"
	"blogctl/internal/app"
	"blogctl/internal/blog"
)

// termView is the printable shape shared by categories and tags.
type termView struct {
	ID, Name, Slug, Description string
}

func categoryView(c *blog.Category) termView {
	return termView{ID: c.ID, Name: c.Name, Slug: c.Slug, Description: c.Description}
}

func tagView(t *blog.Tag) termView {
	return termView{ID: t.ID, Name: t.Name, Slug: t.Slug, Description: t.Description}
}

func printTerm(out io.Writer, v termView) {
	fmt.Fprintf(out, "%-24s  %-28s  %s\n", v.ID, v.Slug, v.Name)
	if v.Description != "" {
		fmt.Fprintf(out, "    %s\n", v.Description)
	}
}

// newTermCommand builds the list/show/create/update/delete tree for one
// taxonomy. area is the command name ("categories" or "tags").
func newTermCommand[T any](area, singular string, terms func(*api.API) *api.TermsAPI[T], view func(*T) termView) *cobra.Command {
	root := &cobra.Command{
		Use:   area,
		Short: "Manage " + area,
	}
	role := app.RoleFor(area)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + area,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, area+".list")
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Read(cmd.Context(), role, func(ctx context.Context) error {
				page, err := terms(a.API()).List(ctx, listParams(cmd))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for i := range page.Data {
					printTerm(out, view(&page.Data[i]))
				}
				printPagination(out, page.Pagination, len(page.Data))
				return nil
			})
		},
	}
	addListFlags(listCmd, "search")

	showCmd := &cobra.Command{
		Use:   "show SLUG",
		Short: "Show one " + singular + " (by slug, or by id with --id)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byID, _ := cmd.Flags().GetBool("id")

			a, err := newApp(cmd, area+".show")
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Read(cmd.Context(), role, func(ctx context.Context) error {
				var t *T
				var err error
				if byID {
					t, err = terms(a.API()).GetByID(ctx, args[0])
				} else {
					t, err = terms(a.API()).GetBySlug(ctx, args[0])
				}
				if err != nil {
					return err
				}
				printTerm(cmd.OutOrStdout(), view(t))
				return nil
			})
		},
	}
	showCmd.Flags().Bool("id", false, "Treat the argument as an id")

	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a " + singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug, _ := cmd.Flags().GetString("slug")
			description, _ := cmd.Flags().GetString("description")
			in := blog.TermInput{Name: args[0], Slug: slug, Description: description}

			a, err := newApp(cmd, area+".create")
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Mutate(cmd.Context(), role, "name="+in.Name, func(ctx context.Context) error {
				t, err := terms(a.API()).Create(ctx, in)
				if err != nil {
					return err
				}
				v := view(t)
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s (%s)\n", singular, v.Slug, v.ID)
				return nil
			})
		},
	}
	createCmd.Flags().String("slug", "", "URL slug (derived from the name when empty)")
	createCmd.Flags().String("description", "", "Description")

	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a " + singular + "; only the given flags are changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := blog.TermUpdateInput{
				Name:        optionalString(cmd, "name"),
				Slug:        optionalString(cmd, "slug"),
				Description: optionalString(cmd, "description"),
			}

			a, err := newApp(cmd, area+".update")
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Mutate(cmd.Context(), role, "id="+args[0], func(ctx context.Context) error {
				t, err := terms(a.API()).Update(ctx, args[0], in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", singular, view(t).Slug)
				return nil
			})
		},
	}
	updateCmd.Flags().String("name", "", "Name")
	updateCmd.Flags().String("slug", "", "URL slug")
	updateCmd.Flags().String("description", "", "Description")

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, area+".delete")
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Mutate(cmd.Context(), role, "id="+args[0], func(ctx context.Context) error {
				if err := terms(a.API()).Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", singular, args[0])
				return nil
			})
		},
	}

	root.AddCommand(listCmd, showCmd, createCmd, updateCmd, deleteCmd)
	return root
}

func init() {
	rootCmd.AddCommand(newTermCommand("categories", "category",
		func(a *api.API) *api.CategoriesAPI { return a.Categories }, categoryView))
	rootCmd.AddCommand(newTermCommand("tags", "tag",
		func(a *api.API) *api.TagsAPI { return a.Tags }, tagView))
}
