package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"blogctl/internal/app"
	"blogctl/internal/blog"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Manage the media library",
}

var mediaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List media",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "media.list")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Read(cmd.Context(), app.RoleFor("media"), func(ctx context.Context) error {
			page, err := a.API().Media.List(ctx, listParams(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i := range page.Data {
				printMedia(out, &page.Data[i])
			}
			printPagination(out, page.Pagination, len(page.Data))
			return nil
		})
	},
}

var mediaUploadCmd = &cobra.Command{
	Use:   "upload FILE...",
	Short: "Upload one or more files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, closeAll, err := openUploads(args)
		if err != nil {
			return err
		}
		defer closeAll()

		a, err := newApp(cmd, "media.upload")
		if err != nil {
			return err
		}
		defer a.Close()

		params := "files=" + strings.Join(args, ",")
		return a.Mutate(cmd.Context(), app.RoleFor("media"), params, func(ctx context.Context) error {
			out := cmd.OutOrStdout()
			if len(files) == 1 {
				m, err := a.API().Media.Upload(ctx, files[0])
				if err != nil {
					return err
				}
				printMedia(out, m)
				return nil
			}

			batch, err := a.API().Media.UploadMultiple(ctx, files)
			if err != nil {
				return err
			}
			for i := range batch.Uploads {
				printMedia(out, &batch.Uploads[i])
			}
			for _, f := range batch.Failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s: %s\n", f.FileName, f.Error)
			}
			fmt.Fprintf(out, "%d of %d uploaded\n", batch.Successful, batch.Total)
			if batch.FailedCount > 0 {
				return fmt.Errorf("%d of %d files failed to upload", batch.FailedCount, batch.Total)
			}
			return nil
		})
	},
}

var mediaDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a media item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "media.delete")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Mutate(cmd.Context(), app.RoleFor("media"), "id="+args[0], func(ctx context.Context) error {
			if err := a.API().Media.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted media %s\n", args[0])
			return nil
		})
	},
}

// openUploads opens every path for upload. The returned func closes them all.
func openUploads(paths []string) ([]blog.UploadFile, func(), error) {
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	files := make([]blog.UploadFile, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("opening %s: %w", p, err)
		}
		opened = append(opened, f)
		files = append(files, blog.UploadFile{
			Name:        filepath.Base(p),
			ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(p))),
			Content:     f,
		})
	}
	return files, closeAll, nil
}

func init() {
	mediaCmd.AddCommand(mediaListCmd)
	addListFlags(mediaListCmd, "search")
	mediaCmd.AddCommand(mediaUploadCmd)
	mediaCmd.AddCommand(mediaDeleteCmd)

	rootCmd.AddCommand(mediaCmd)
}
