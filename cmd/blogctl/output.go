package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"blogctl/internal/api"
	"blogctl/internal/app"
	"blogctl/internal/blog"
)

const dateFormat = "2006-01-02 15:04"

// addListFlags registers the pagination and filter flags shared by list commands.
func addListFlags(cmd *cobra.Command, filters ...string) {
	cmd.Flags().Int("page", 0, "Page number (server default when 0)")
	cmd.Flags().Int("limit", 0, "Items per page (server default when 0)")
	for _, f := range filters {
		cmd.Flags().String(f, "", "Filter by "+f)
	}
}

// listParams reads the flags registered by addListFlags. Filters that were
// not registered on cmd stay empty.
func listParams(cmd *cobra.Command) api.ListParams {
	str := func(name string) string {
		if cmd.Flags().Lookup(name) == nil {
			return ""
		}
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")
	return api.ListParams{
		Page:     page,
		Limit:    limit,
		Status:   strings.ToUpper(str("status")),
		Search:   str("search"),
		Category: str("category"),
		Tag:      str("tag"),
		PostID:   str("post-id"),
	}
}

// optionalString returns a pointer to the flag value when the flag was set.
func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func optionalStrings(cmd *cobra.Command, name string) *[]string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetStringSlice(name)
	return &v
}

func printPagination(out io.Writer, p blog.Pagination, shown int) {
	if p.TotalPages > 1 {
		fmt.Fprintf(out, "\nPage %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
		return
	}
	if shown == 0 {
		fmt.Fprintln(out, "Nothing found.")
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateFormat)
}

func printUser(out io.Writer, u *blog.User) {
	fmt.Fprintf(out, "ID:      %s\n", u.ID)
	fmt.Fprintf(out, "Email:   %s\n", u.Email)
	fmt.Fprintf(out, "Name:    %s\n", u.Name)
	fmt.Fprintf(out, "Role:    %s\n", u.Role)
	if u.Bio != "" {
		fmt.Fprintf(out, "Bio:     %s\n", app.PlainText(u.Bio))
	}
	fmt.Fprintf(out, "Created: %s\n", formatTime(u.CreatedAt))
}

func printPost(out io.Writer, p *blog.Post) {
	fmt.Fprintf(out, "ID:        %s\n", p.ID)
	fmt.Fprintf(out, "Title:     %s\n", p.Title)
	fmt.Fprintf(out, "Slug:      %s\n", p.Slug)
	fmt.Fprintf(out, "Status:    %s\n", p.Status)
	if p.Author.Name != "" {
		fmt.Fprintf(out, "Author:    %s\n", p.Author.Name)
	}
	if p.PublishedAt != nil {
		fmt.Fprintf(out, "Published: %s\n", formatTime(*p.PublishedAt))
	}
	fmt.Fprintf(out, "Updated:   %s\n", formatTime(p.UpdatedAt))
	if len(p.Categories) > 0 {
		fmt.Fprintf(out, "Categories: %s\n", joinTerms(p.Categories))
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(out, "Tags:      %s\n", joinTerms(p.Tags))
	}
	if p.ReadingTime > 0 {
		fmt.Fprintf(out, "Reading:   %d min\n", p.ReadingTime)
	}
	fmt.Fprintf(out, "\n%s\n", app.PlainText(p.Content))
}

func joinTerms(refs []blog.TermRef) string {
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return strings.Join(names, ", ")
}

func printMedia(out io.Writer, m *blog.Media) {
	fmt.Fprintf(out, "%-24s  %-28s  %-16s  %8s  %s\n", m.ID, m.OriginalName, m.MimeType, humanSize(m.Size), m.URL)
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func printComment(out io.Writer, c *blog.Comment) {
	where := ""
	if c.Post != nil {
		where = " on " + c.Post.Slug
	}
	status := ""
	if c.Status != "" {
		status = " [" + string(c.Status) + "]"
	}
	fmt.Fprintf(out, "%s  %s%s%s  %s\n", c.ID, c.AuthorName, where, status, formatTime(c.CreatedAt))
	fmt.Fprintf(out, "    %s\n", app.PlainText(c.Content))
}
