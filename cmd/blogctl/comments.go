package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"blogctl/internal/api"
	"blogctl/internal/app"
	"blogctl/internal/blog"
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Moderate comments",
}

var commentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List comments for moderation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listComments(cmd, "comments.list", listParams(cmd))
	},
}

var commentsPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List comments awaiting moderation",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := listParams(cmd)
		params.Status = string(blog.CommentPending)
		return listComments(cmd, "comments.pending", params)
	},
}

func listComments(cmd *cobra.Command, operation string, params api.ListParams) error {
	a, err := newApp(cmd, operation)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Read(cmd.Context(), app.RoleFor("comments"), func(ctx context.Context) error {
		page, err := a.API().Comments.List(ctx, params)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i := range page.Data {
			printComment(out, &page.Data[i])
		}
		printPagination(out, page.Pagination, len(page.Data))
		return nil
	})
}

var commentsPostListCmd = &cobra.Command{
	Use:   "post-list SLUG",
	Short: "List the approved comments of a post as visitors see them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "comments.post-list")
		if err != nil {
			return err
		}
		defer a.Close()

		page, err := a.API().Comments.ListForPost(cmd.Context(), args[0], listParams(cmd))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i := range page.Data {
			printComment(out, &page.Data[i])
		}
		printPagination(out, page.Pagination, len(page.Data))
		return nil
	},
}

var commentsCreateCmd = &cobra.Command{
	Use:   "create SLUG",
	Short: "Post a public comment on a post; it starts as PENDING",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, _ := cmd.Flags().GetString("content")
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		url, _ := cmd.Flags().GetString("url")
		parent, _ := cmd.Flags().GetString("parent")
		in := blog.CommentInput{
			Content:     content,
			ParentID:    parent,
			AuthorName:  name,
			AuthorEmail: email,
			AuthorURL:   url,
		}

		a, err := newApp(cmd, "comments.create")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Record(cmd.Context(), "post="+args[0], func(ctx context.Context) error {
			c, err := a.API().Comments.Create(ctx, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Comment %s submitted for moderation\n", c.ID)
			return nil
		})
	},
}

// newModerationCommand builds approve and reject, which differ only in the
// status they set.
func newModerationCommand(use string, status blog.CommentStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: "Mark a comment " + string(status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, "comments."+use)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Mutate(cmd.Context(), app.RoleFor("comments"), "id="+args[0], func(ctx context.Context) error {
				c, err := a.API().Comments.UpdateStatus(ctx, args[0], status)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Comment %s is now %s\n", c.ID, c.Status)
				return nil
			})
		},
	}
}

var commentsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "comments.delete")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Mutate(cmd.Context(), app.RoleFor("comments"), "id="+args[0], func(ctx context.Context) error {
			if err := a.API().Comments.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted comment %s\n", args[0])
			return nil
		})
	},
}

func init() {
	commentsCmd.AddCommand(commentsListCmd)
	addListFlags(commentsListCmd, "status", "post-id")
	commentsCmd.AddCommand(commentsPendingCmd)
	addListFlags(commentsPendingCmd, "post-id")
	commentsCmd.AddCommand(commentsPostListCmd)
	addListFlags(commentsPostListCmd)
	commentsCmd.AddCommand(commentsCreateCmd)
	commentsCreateCmd.Flags().String("content", "", "Comment text")
	commentsCreateCmd.Flags().String("name", "", "Author name")
	commentsCreateCmd.Flags().String("email", "", "Author email")
	commentsCreateCmd.Flags().String("url", "", "Author website")
	commentsCreateCmd.Flags().String("parent", "", "Parent comment id for a reply")
	commentsCmd.AddCommand(newModerationCommand("approve", blog.CommentApproved))
	commentsCmd.AddCommand(newModerationCommand("reject", blog.CommentRejected))
	commentsCmd.AddCommand(commentsDeleteCmd)

	rootCmd.AddCommand(commentsCmd)
}
