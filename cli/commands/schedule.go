package commands

import (
	"context"

	"content-planner/cli/runner"
	"content-planner/infrastructure/configuration"
	"content-planner/usecase"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addSchedule(topLevel *cobra.Command) {
	bo := &BackendOptions{}
	so := &runner.Schedule{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule a post on a calendar day",
		Example: `
calctl schedule --date 2026-01-22 --time 14:30 --title "Launch" \
  --image-url https://cdn.example.com/a.jpg --caption "We are live"
calctl schedule --now --image-url https://cdn.example.com/a.jpg --caption "Right now"
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			configuration.LoadEnvFromFile("config.env", ".env")
			configuration.Reload()

			ctx, err := bo.Context(context.Background())
			if err != nil {
				return err
			}
			so.Compose = usecase.NewComposeUsecase(bo.Client(), nil)
			so.Out = color.Output
			so.Location = configuration.C.App.Location()
			return so.Do(ctx, bo.UserID)
		},
	}

	AddBackendArgs(cmd, bo)
	cmd.Flags().StringVar(&so.Date, "date", "", "Day to schedule on as YYYY-MM-DD, defaults to today.")
	cmd.Flags().StringVar(&so.Time, "time", "", "Time of day as HH:MM, defaults to 09:00.")
	cmd.Flags().StringVar(&so.Title, "title", "", "Post title.")
	cmd.Flags().StringVar(&so.Platform, "platform", "", "instagram, tiktok, facebook, linkedin or x.")
	cmd.Flags().StringVar(&so.Format, "format", "", "feed, reel, story or video.")
	cmd.Flags().StringVar(&so.ImageURL, "image-url", "", "Media URL.")
	cmd.Flags().StringVar(&so.Caption, "caption", "", "Post caption.")
	cmd.Flags().BoolVar(&so.Now, "now", false, "Publish immediately instead of scheduling.")

	topLevel.AddCommand(cmd)
}
