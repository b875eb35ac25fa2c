package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"cartload/internal/config"
	"cartload/pkg/models"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Initial configuration setup",
	Run:   runSetup,
}

func runSetup(cmd *cobra.Command, args []string) {
	fmt.Println("Setting up Cartload...")
	fmt.Println()

	// Check if config already exists
	if config.Exists() {
		var overwrite bool
		prompt := &survey.Confirm{
			Message: "Configuration already exists. Do you want to overwrite it?",
			Default: false,
		}
		survey.AskOne(prompt, &overwrite)
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return
		}
	}

	cfg := &models.Config{}

	fmt.Println("MySQL Configuration")
	fmt.Println("-------------------")

	mysqlQs := []*survey.Question{
		{
			Name: "host",
			Prompt: &survey.Input{
				Message: "MySQL host:",
				Default: "localhost",
			},
			Validate: survey.Required,
		},
		{
			Name: "port",
			Prompt: &survey.Input{
				Message: "MySQL port:",
				Default: "3306",
			},
			Validate: validatePort,
		},
		{
			Name: "database",
			Prompt: &survey.Input{
				Message: "Target database:",
				Default: "supermarket",
			},
			Validate: survey.Required,
		},
		{
			Name: "username",
			Prompt: &survey.Input{
				Message: "Username:",
			},
			Validate: survey.Required,
		},
		{
			Name: "password",
			Prompt: &survey.Password{
				Message: "Password (leave blank to be prompted on each run):",
			},
		},
	}

	answers := struct {
		Host     string
		Port     string
		Database string
		Username string
		Password string
	}{}

	if err := survey.Ask(mysqlQs, &answers); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	port, _ := strconv.Atoi(answers.Port)
	cfg.MySQL = models.MySQL{
		Host:     answers.Host,
		Port:     port,
		Database: answers.Database,
		Username: answers.Username,
		Password: answers.Password,
	}

	fmt.Println()
	fmt.Println("Source Datasets")
	fmt.Println("---------------")

	var customSources bool
	prompt := &survey.Confirm{
		Message: "Use the published dataset URLs? (answer no to point at local files or mirrors)",
		Default: true,
	}
	survey.AskOne(prompt, &customSources)

	if !customSources {
		sourceQs := []*survey.Question{
			{
				Name: "invoices",
				Prompt: &survey.Input{
					Message: "Invoices dataset (URL or path):",
					Default: models.DefaultInvoicesURL,
				},
				Validate: survey.Required,
			},
			{
				Name: "orderleads",
				Prompt: &survey.Input{
					Message: "Order leads dataset (URL or path):",
					Default: models.DefaultOrderLeadsURL,
				},
				Validate: survey.Required,
			},
			{
				Name: "salesteam",
				Prompt: &survey.Input{
					Message: "Sales team dataset (URL or path):",
					Default: models.DefaultSalesTeamURL,
				},
				Validate: survey.Required,
			},
		}

		sources := struct {
			Invoices   string
			OrderLeads string `survey:"orderleads"`
			SalesTeam  string `survey:"salesteam"`
		}{}

		if err := survey.Ask(sourceQs, &sources); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		cfg.Sources = models.Sources{
			Invoices:   sources.Invoices,
			OrderLeads: sources.OrderLeads,
			SalesTeam:  sources.SalesTeam,
		}
	}

	cfg.ApplyDefaults()

	if err := config.Save(cfg); err != nil {
		fmt.Printf("Error saving configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Configuration saved to:", config.GetConfigFile())
	fmt.Println()
	fmt.Println("You can now load the warehouse using: cartload run")
}

func validatePort(val interface{}) error {
	str, ok := val.(string)
	if !ok {
		return fmt.Errorf("port must be a string")
	}
	port, err := strconv.Atoi(str)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
