package main

import (
	"fmt"
	"log/slog"
	"os"

	"netgro/internal/notifications"
	"netgro/internal/observability"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:     "open [route]",
	Aliases: []string{"route"},
	Short:   "Render a page: landing, auth/login, auth/register, feed, profile[/id], post/<id>",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := ""
		if len(args) == 1 {
			token = args[0]
		}
		return open(cmd, token)
	},
}

// open resolves token through the router and renders the page to stdout.
func open(cmd *cobra.Command, token string) error {
	r, detach := rt.NewRouter(newTextRenderer(os.Stdout))
	defer detach()
	_, err := r.Navigate(cmd.Context(), token)
	return err
}

var seedFixtureCmd = &cobra.Command{
	Use:   "seed-fixture",
	Short: "Load the bundled EduConnect sample members and posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := rt.SeedFixture(cmd.Context())
		if err != nil {
			return err
		}
		success("Seeded %d users, %d posts, %d comments, %d likes", res.Users, res.Posts, res.Comments, res.Likes)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [route]",
	Short: "Keep a page open and redraw it when other clients change the data (redis backend)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if rt.Redis == nil {
			return fmt.Errorf("watch needs STORAGE_BACKEND=redis, current backend is %s", rt.Config.StorageBackend)
		}
		ctx := cmd.Context()

		token := "feed"
		if len(args) == 1 {
			token = args[0]
		}
		r, detach := rt.NewRouter(newTextRenderer(os.Stdout))
		defer detach()
		if _, err := r.Navigate(ctx, token); err != nil {
			return err
		}

		err := rt.Notifier.StartSubscriber(ctx, func(ev notifications.Event) {
			if err := rt.Load(ctx); err != nil {
				observability.GlobalLogger.Warn("reload failed", slog.String("error", err.Error()))
				return
			}
			fmt.Println()
			color.New(color.FgHiBlack).Printf("── %s %s ──\n", ev.Type, ev.Action)
			if _, err := r.Refresh(ctx); err != nil {
				observability.GlobalLogger.Warn("refresh failed", slog.String("error", err.Error()))
			}
		})
		if err != nil {
			return err
		}

		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd, seedFixtureCmd, watchCmd)
}
