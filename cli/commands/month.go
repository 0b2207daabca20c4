package commands

import (
	"context"

	"content-planner/cli/runner"
	"content-planner/infrastructure/configuration"
	"content-planner/usecase"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addMonth(topLevel *cobra.Command) {
	bo := &BackendOptions{}
	mo := &runner.Month{}

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show a month of the content calendar",
		Example: `
calctl month
calctl month --year 2026 --month 1
calctl month --csv january.csv
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			configuration.LoadEnvFromFile("config.env", ".env")
			configuration.Reload()

			ctx, err := bo.Context(context.Background())
			if err != nil {
				return err
			}
			app := configuration.C.App
			mo.Calendar = usecase.NewCalendarUsecase(bo.Client(), nil, 0, app.Location(), nil)
			mo.Out = color.Output
			return mo.Do(ctx, bo.UserID)
		},
	}

	AddBackendArgs(cmd, bo)
	cmd.Flags().IntVar(&mo.Year, "year", 0, "Year to show, defaults to the current year.")
	cmd.Flags().IntVar(&mo.Month, "month", 0, "Month to show as 1-12, defaults to the current month.")
	cmd.Flags().StringVar(&mo.CSVPath, "csv", "", "Also write the month's posts to this CSV file.")
	cmd.Flags().IntVar(&mo.Visible, "visible", usecase.DefaultVisiblePosts, "Posts listed per day before collapsing into +N more.")

	topLevel.AddCommand(cmd)
}
