package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"blogctl/internal/app"
	"blogctl/internal/blog"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Manage posts",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "posts.list")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Read(cmd.Context(), app.RoleFor("posts"), func(ctx context.Context) error {
			page, err := a.API().Posts.List(ctx, listParams(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range page.Data {
				fmt.Fprintf(out, "%-24s  %-10s  %-32s  %s\n", p.ID, p.Status, p.Slug, p.Title)
			}
			printPagination(out, page.Pagination, len(page.Data))
			return nil
		})
	},
}

var postsShowCmd = &cobra.Command{
	Use:   "show SLUG",
	Short: "Show one post (by slug, or by id with --id)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		byID, _ := cmd.Flags().GetBool("id")

		a, err := newApp(cmd, "posts.show")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Read(cmd.Context(), app.RoleFor("posts"), func(ctx context.Context) error {
			var p *blog.Post
			if byID {
				p, err = a.API().Posts.GetByID(ctx, args[0])
			} else {
				p, err = a.API().Posts.GetBySlug(ctx, args[0])
			}
			if err != nil {
				return err
			}
			printPost(cmd.OutOrStdout(), p)
			return nil
		})
	},
}

var postsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a post",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := postCreateInput(cmd)
		if err != nil {
			return err
		}

		a, err := newApp(cmd, "posts.create")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Mutate(cmd.Context(), app.RoleFor("posts"), "title="+in.Title, func(ctx context.Context) error {
			p, err := a.API().Posts.Create(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created post %s (%s)\n", p.Slug, p.ID)
			return nil
		})
	},
}

var postsUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update a post; only the given flags are changed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := postUpdateInput(cmd)
		if err != nil {
			return err
		}

		a, err := newApp(cmd, "posts.update")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Mutate(cmd.Context(), app.RoleFor("posts"), "id="+args[0], func(ctx context.Context) error {
			p, err := a.API().Posts.Update(ctx, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated post %s (%s)\n", p.Slug, p.Status)
			return nil
		})
	},
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "posts.delete")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Mutate(cmd.Context(), app.RoleFor("posts"), "id="+args[0], func(ctx context.Context) error {
			if err := a.API().Posts.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted post %s\n", args[0])
			return nil
		})
	},
}

// contentFlag returns --content, or the contents of --content-file.
func contentFlag(cmd *cobra.Command) (string, bool, error) {
	if cmd.Flags().Changed("content-file") {
		path, _ := cmd.Flags().GetString("content-file")
		data, err := os.ReadFile(path)
		if err != nil {
			return "", false, fmt.Errorf("reading content file: %w", err)
		}
		return string(data), true, nil
	}
	if cmd.Flags().Changed("content") {
		v, _ := cmd.Flags().GetString("content")
		return v, true, nil
	}
	return "", false, nil
}

func postCreateInput(cmd *cobra.Command) (blog.PostCreateInput, error) {
	title, _ := cmd.Flags().GetString("title")
	if strings.TrimSpace(title) == "" {
		return blog.PostCreateInput{}, blog.ValidationError("Title is required")
	}
	content, _, err := contentFlag(cmd)
	if err != nil {
		return blog.PostCreateInput{}, err
	}
	slug, _ := cmd.Flags().GetString("slug")
	excerpt, _ := cmd.Flags().GetString("excerpt")
	cover, _ := cmd.Flags().GetString("cover-image")
	status, _ := cmd.Flags().GetString("status")
	categories, _ := cmd.Flags().GetStringSlice("category-id")
	tags, _ := cmd.Flags().GetStringSlice("tag-id")

	return blog.PostCreateInput{
		Title:       title,
		Slug:        slug,
		Excerpt:     excerpt,
		Content:     content,
		CoverImage:  cover,
		Status:      blog.PostStatus(strings.ToUpper(status)),
		CategoryIDs: categories,
		TagIDs:      tags,
	}, nil
}

func postUpdateInput(cmd *cobra.Command) (blog.PostUpdateInput, error) {
	in := blog.PostUpdateInput{
		Title:       optionalString(cmd, "title"),
		Slug:        optionalString(cmd, "slug"),
		Excerpt:     optionalString(cmd, "excerpt"),
		CoverImage:  optionalString(cmd, "cover-image"),
		CategoryIDs: optionalStrings(cmd, "category-id"),
		TagIDs:      optionalStrings(cmd, "tag-id"),
	}
	if s := optionalString(cmd, "status"); s != nil {
		status := blog.PostStatus(strings.ToUpper(*s))
		in.Status = &status
	}
	content, ok, err := contentFlag(cmd)
	if err != nil {
		return in, err
	}
	if ok {
		in.Content = &content
	}
	return in, nil
}

func addPostFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Post title")
	cmd.Flags().String("slug", "", "URL slug (derived from the title when empty)")
	cmd.Flags().String("excerpt", "", "Short summary")
	cmd.Flags().String("content", "", "HTML content")
	cmd.Flags().String("content-file", "", "Read HTML content from a file")
	cmd.Flags().String("cover-image", "", "Cover image URL")
	cmd.Flags().String("status", "", "DRAFT, PUBLISHED, SCHEDULED or ARCHIVED")
	cmd.Flags().StringSlice("category-id", nil, "Category ids (repeatable)")
	cmd.Flags().StringSlice("tag-id", nil, "Tag ids (repeatable)")
}

func init() {
	postsCmd.AddCommand(postsListCmd)
	addListFlags(postsListCmd, "status", "search", "category", "tag")
	postsCmd.AddCommand(postsShowCmd)
	postsShowCmd.Flags().Bool("id", false, "Treat the argument as a post id")
	postsCmd.AddCommand(postsCreateCmd)
	addPostFlags(postsCreateCmd)
	postsCmd.AddCommand(postsUpdateCmd)
	addPostFlags(postsUpdateCmd)
	postsCmd.AddCommand(postsDeleteCmd)

	rootCmd.AddCommand(postsCmd)
}
