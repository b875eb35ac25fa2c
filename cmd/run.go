package cmd

import (
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cartload/internal/config"
	"cartload/internal/pipeline"
	"cartload/internal/ui"
	"cartload/internal/warehouse"
	"cartload/pkg/models"
)

var (
	runYes       bool
	runSkipViews bool
	runDatabase  string
	runInvoices  string
	runOrders    string
	runSalesTeam string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch the source datasets and rebuild the warehouse",
	Long: `Run the full pipeline: fetch the invoice, order-lead, and sales-team
datasets, stage them, drop and recreate the target database, load the four
tables, and create the analytical views.

The target database is rebuilt from scratch on every run.`,
	RunE: executeRun,
}

func executeRun(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyRunOverrides(cfg)

	if cfg.MySQL.Username == "" {
		return fmt.Errorf("no MySQL username configured; run 'cartload setup' first")
	}

	if err := resolvePassword(cfg); err != nil {
		return err
	}

	warehouseConfig := warehouse.Config{
		Host:     cfg.MySQL.Host,
		Port:     cfg.MySQL.Port,
		Database: cfg.MySQL.Database,
		Username: cfg.MySQL.Username,
		Password: cfg.MySQL.Password,
	}
	if err := warehouse.ValidateConfig(warehouseConfig); err != nil {
		return err
	}

	ui.ShowHeader("Cartload Pipeline")
	fmt.Printf("  Target:   %s:%d/%s\n", cfg.MySQL.Host, cfg.MySQL.Port, cfg.MySQL.Database)
	fmt.Printf("  Invoices: %s\n", cfg.Sources.Invoices)
	fmt.Printf("  Orders:   %s\n", cfg.Sources.OrderLeads)
	fmt.Printf("  Reps:     %s\n", cfg.Sources.SalesTeam)
	fmt.Println()

	if !runYes {
		confirmed, err := ui.Confirm(
			fmt.Sprintf("This drops and recreates database '%s'. Continue?", cfg.MySQL.Database),
			false,
		)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Run cancelled.")
			return nil
		}
	}

	service := warehouse.NewService(warehouseConfig)
	defer service.Close()

	opts := pipeline.Options{SkipViews: runSkipViews}
	progress := ui.NewProgressBar(opts.StageCount())

	stage := 0
	opts.OnStage = func(name string) {
		stage++
		progress.Update(stage, name, true)
	}

	runner := pipeline.NewRunner(service, opts)

	summary, err := runner.Run(cmd.Context(), cfg.Sources)
	if err != nil {
		fmt.Println()
		return err
	}
	progress.Finish()

	printSummary(summary)
	return nil
}

// resolvePassword fills in the MySQL password: config value first, then the
// CARTLOAD_MYSQL_PASSWORD environment (via viper), and only then an
// interactive prompt, so non-interactive runs never block on stdin.
func resolvePassword(cfg *models.Config) error {
	if cfg.MySQL.Password != "" {
		return nil
	}

	if password := viper.GetString("mysql.password"); password != "" {
		cfg.MySQL.Password = password
		return nil
	}

	prompt := &survey.Password{
		Message: fmt.Sprintf("MySQL password for %s:", cfg.MySQL.Username),
	}
	return survey.AskOne(prompt, &cfg.MySQL.Password, survey.WithValidator(survey.Required))
}

func applyRunOverrides(cfg *models.Config) {
	if runDatabase != "" {
		cfg.MySQL.Database = runDatabase
	}
	if runInvoices != "" {
		cfg.Sources.Invoices = runInvoices
	}
	if runOrders != "" {
		cfg.Sources.OrderLeads = runOrders
	}
	if runSalesTeam != "" {
		cfg.Sources.SalesTeam = runSalesTeam
	}
}

func printSummary(summary *pipeline.Summary) {
	fmt.Println()
	fmt.Println("Source audit:")
	for _, audit := range summary.Audits {
		fmt.Println(ui.RenderAudit(audit.Table, audit.Rows, audit.Missing, audit.Duplicates))
	}

	fmt.Println()
	fmt.Println("Rows loaded:")
	fmt.Printf("  %-14s %6d\n", "orders", summary.Load.Orders)
	fmt.Printf("  %-14s %6d\n", "invoice", summary.Load.Invoices)
	fmt.Printf("  %-14s %6d\n", "salesteam", summary.Load.SalesTeam)
	fmt.Printf("  %-14s %6d\n", "customer_order", summary.Load.CustomerLinks)

	fmt.Println()
	if summary.Views > 0 {
		ui.ShowSuccess(fmt.Sprintf("Created %d views in %s", summary.Views, summary.Duration.Round(time.Millisecond)))
	} else {
		ui.ShowSuccess(fmt.Sprintf("Loaded in %s (views skipped)", summary.Duration.Round(time.Millisecond)))
	}
}

func init() {
	runCmd.Flags().BoolVarP(&runYes, "yes", "y", false, "Skip the confirmation prompt")
	runCmd.Flags().BoolVar(&runSkipViews, "skip-views", false, "Load the tables but do not create views")
	runCmd.Flags().StringVar(&runDatabase, "database", "", "Override the target database name")
	runCmd.Flags().StringVar(&runInvoices, "invoices", "", "Override the invoices dataset URL or path")
	runCmd.Flags().StringVar(&runOrders, "orders", "", "Override the order-leads dataset URL or path")
	runCmd.Flags().StringVar(&runSalesTeam, "salesteam", "", "Override the sales-team dataset URL or path")

	rootCmd.AddCommand(runCmd)
}
