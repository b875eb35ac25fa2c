package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cartload/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "cartload",
	Short: "Load supermarket sales data into MySQL",
	Long: "Cartload - A CLI tool that ingests the supermarket meal, order, and " +
		"sales-team datasets, stages them into a relational schema in MySQL, and " +
		"publishes the analytical views on top.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(fmt.Sprintf("%s/.cartload", home))
	}

	viper.SetEnvPrefix("CARTLOAD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is okay; setup creates one
	}
}
