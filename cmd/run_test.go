package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartload/internal/pipeline"
	"cartload/internal/warehouse"
	"cartload/pkg/models"
)

func TestRunCommandFlags(t *testing.T) {
	assert.NotNil(t, runCmd.Flags().Lookup("yes"))
	assert.NotNil(t, runCmd.Flags().Lookup("skip-views"))
	assert.NotNil(t, runCmd.Flags().Lookup("database"))
	assert.NotNil(t, runCmd.Flags().Lookup("invoices"))
	assert.NotNil(t, runCmd.Flags().Lookup("orders"))
	assert.NotNil(t, runCmd.Flags().Lookup("salesteam"))
}

func TestApplyRunOverrides(t *testing.T) {
	cfg := &models.Config{}
	cfg.ApplyDefaults()

	runDatabase = "supermarket_staging"
	runInvoices = "/data/Invoices.csv"
	t.Cleanup(func() {
		runDatabase = ""
		runInvoices = ""
	})

	applyRunOverrides(cfg)

	assert.Equal(t, "supermarket_staging", cfg.MySQL.Database)
	assert.Equal(t, "/data/Invoices.csv", cfg.Sources.Invoices)
	// Untouched flags leave config values alone.
	assert.Equal(t, models.DefaultOrderLeadsURL, cfg.Sources.OrderLeads)
	assert.Equal(t, models.DefaultSalesTeamURL, cfg.Sources.SalesTeam)
}

func TestResolvePasswordPrefersConfigValue(t *testing.T) {
	viper.Set("mysql.password", "from-env")
	t.Cleanup(func() { viper.Set("mysql.password", "") })

	cfg := &models.Config{MySQL: models.MySQL{Username: "etl", Password: "from-config"}}
	require.NoError(t, resolvePassword(cfg))
	assert.Equal(t, "from-config", cfg.MySQL.Password)
}

func TestResolvePasswordFallsBackToViper(t *testing.T) {
	// CARTLOAD_MYSQL_PASSWORD reaches viper through AutomaticEnv; setting the
	// key directly exercises the same lookup without touching the process env.
	viper.Set("mysql.password", "from-env")
	t.Cleanup(func() { viper.Set("mysql.password", "") })

	cfg := &models.Config{MySQL: models.MySQL{Username: "etl"}}
	require.NoError(t, resolvePassword(cfg))
	assert.Equal(t, "from-env", cfg.MySQL.Password)
}

func TestProgressCoversEveryStage(t *testing.T) {
	// The run command sizes its progress bar from the pipeline's stage count.
	assert.Equal(t, 9, pipeline.Options{}.StageCount())
	assert.Equal(t, 8, pipeline.Options{SkipViews: true}.StageCount())
}

func TestReportDigestViewsExist(t *testing.T) {
	// Every digest view must be a declared warehouse view.
	for _, name := range digestViews {
		found := false
		for _, view := range warehouse.Views {
			if view.Name == name {
				found = true
				break
			}
		}
		assert.True(t, found, "digest view %q is not declared", name)
	}
}
