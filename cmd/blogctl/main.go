package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"blogctl/internal/app"
	"blogctl/internal/blog"
	"blogctl/internal/config"
	"blogctl/internal/encryption"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", blog.Describe(err, "Something went wrong"))
		os.Exit(1)
	}
}

// newApp reads the config and creates a BlogApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "posts.create").
func newApp(cmd *cobra.Command, operation string) (*app.BlogApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("reading config (run 'blogctl config init' first): %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	a, err := app.NewBlogApp(cfg, operation, app.WithVerbose(verbose))
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:           "blogctl",
	Short:         "Blog admin console",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration and token encryption keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		apiURL, _ := cmd.Flags().GetString("api-url")
		cfg := config.NewConfig(apiURL, defaults.BaseDir)

		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		enc := encryption.NewAgeEncryptor(cfg.Encryption)
		if !enc.IsConfigured() {
			if err := enc.Setup(); err != nil {
				return fmt.Errorf("failed to create encryption keys: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Fprintf(out, "API URL:  %s\n", cfg.APIURL)
		fmt.Fprintf(out, "Base Dir: %s\n", cfg.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration from %s:\n\n", defaults.ConfigPath)
		fmt.Fprintf(out, "API URL:     %s (effective: %s)\n", cfg.APIURL, cfg.ResolveAPIURL())
		fmt.Fprintf(out, "Base Dir:    %s\n", cfg.BaseDir)
		fmt.Fprintf(out, "Log Dir:     %s\n", cfg.LogDir)
		fmt.Fprintf(out, "Token Store: %s\n", describeTokenStore(cfg.TokenStore))
		fmt.Fprintf(out, "Journal:     %s %s\n", cfg.Journal.Type, cfg.Journal.DataDir)
		return nil
	},
}

func describeTokenStore(ts config.TokenStoreConfig) string {
	switch ts.Type {
	case "redis":
		return fmt.Sprintf("redis %s (prefix %q)", ts.RedisAddr, ts.RedisPrefix)
	case "memory":
		return "memory"
	default:
		if ts.Encrypt {
			return fmt.Sprintf("filesystem %s (encrypted)", ts.Dir)
		}
		return fmt.Sprintf("filesystem %s", ts.Dir)
	}
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			var err error
			if email, err = promptLine(cmd, "Email: "); err != nil {
				return err
			}
		}
		password, err := promptPassword(cmd, "Password: ")
		if err != nil {
			return err
		}

		a, err := newApp(cmd, "login")
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Email, user.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "logout")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "whoami")
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.WhoAmI(cmd.Context())
		if err != nil {
			return err
		}
		printUser(cmd.OutOrStdout(), user)
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show content totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "dashboard")
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.Dashboard(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Posts:            %d (%d published, %d drafts)\n", stats.TotalPosts, stats.PublishedPosts, stats.DraftPosts)
		fmt.Fprintf(out, "Media:            %d\n", stats.TotalMedia)
		fmt.Fprintf(out, "Users:            %d\n", stats.TotalUsers)
		fmt.Fprintf(out, "Categories:       %d\n", stats.TotalCategories)
		fmt.Fprintf(out, "Tags:             %d\n", stats.TotalTags)
		fmt.Fprintf(out, "Pending comments: %d\n", stats.PendingComments)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View console operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd, "history")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.History(limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(ops) == 0 {
			fmt.Fprintln(out, "No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt != nil {
				duration = op.FinishedAt.Sub(op.StartedAt).Truncate(time.Millisecond).String()
			}
			fmt.Fprintf(out, "#%d  %-18s  %s  %-8s  %-8s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Local().Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
				op.Parameters,
			)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every API request")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configInitCmd.Flags().String("api-url", config.DefaultAPIURL, "Blog API root URL")

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringP("email", "e", "", "Account email (prompted when omitted)")
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
}
