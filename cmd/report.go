package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cartload/internal/config"
	"cartload/internal/ui"
	"cartload/internal/warehouse"
)

var (
	reportLimit int
	reportList  bool
)

// digestViews are the views shown when no view name is given.
var digestViews = []string{
	"avg_meal_price",
	"total_sales",
	"percent_converted",
	"sales_by_year",
}

var reportCmd = &cobra.Command{
	Use:   "report [view]",
	Short: "Query the analytical views",
	Long: `Query one analytical view by name, or print the summary digest
(average meal price, total sales, conversion rate, and sales by year) when no
view is named. Use --list to see every available view.`,
	Args: cobra.MaximumNArgs(1),
	RunE: executeReport,
}

func executeReport(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if reportList {
		for _, view := range warehouse.Views {
			fmt.Println(view.Name)
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.MySQL.Username == "" {
		return fmt.Errorf("no MySQL username configured; run 'cartload setup' first")
	}

	if err := resolvePassword(cfg); err != nil {
		return err
	}

	service := warehouse.NewService(warehouse.Config{
		Host:     cfg.MySQL.Host,
		Port:     cfg.MySQL.Port,
		Database: cfg.MySQL.Database,
		Username: cfg.MySQL.Username,
		Password: cfg.MySQL.Password,
	})

	spinner := ui.NewSpinner(fmt.Sprintf("Connecting to %s:%d", cfg.MySQL.Host, cfg.MySQL.Port))
	spinner.Start()
	if err := service.Connect(); err != nil {
		spinner.Stop(false, "Connection failed")
		return err
	}
	spinner.Stop(true, fmt.Sprintf("Connected to %s/%s", cfg.MySQL.Host, cfg.MySQL.Database))
	defer service.Close()

	names := digestViews
	if len(args) == 1 {
		names = []string{args[0]}
	}

	for _, name := range names {
		columns, rows, err := service.QueryView(cmd.Context(), name, reportLimit)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(ui.RenderTable(name, columns, rows))
	}

	return nil
}

func init() {
	reportCmd.Flags().IntVarP(&reportLimit, "limit", "n", 0, "Maximum rows per view (0 = no limit)")
	reportCmd.Flags().BoolVar(&reportList, "list", false, "List the available views and exit")

	rootCmd.AddCommand(reportCmd)
}
