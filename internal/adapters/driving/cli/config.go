package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/filingwatch/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Sets a configuration value and saves the settings file.

Keys:
  identity           contact string sent as the User-Agent (required by SEC)
  form_types         comma-separated submission types (e.g. "8-K,8-K/A")
  rate_limit         requests per second against EDGAR
  retry_max          attempts per request
  workers            fetch worker pool size
  run_timeout        per-run time budget (e.g. "15m")
  data_dir           directory for the database
  mapping_file       path to the SEC company ticker table (JSON)
  schedule.enabled   "true" or "false"
  schedule.interval  time between scheduled runs (e.g. "6h")`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	identity := settings.Identity
	if identity == "" {
		identity = "(not set)"
	}
	mapping := settings.MappingFile
	if mapping == "" {
		mapping = "(enrichment disabled)"
	}

	cmd.Printf("identity:           %s\n", identity)
	cmd.Printf("form_types:         %s\n", strings.Join(settings.FormTypes, ","))
	cmd.Printf("rate_limit:         %g req/s\n", settings.RateLimit)
	cmd.Printf("retry_max:          %d\n", settings.RetryMax)
	cmd.Printf("workers:            %d\n", settings.Workers)
	cmd.Printf("run_timeout:        %s\n", settings.RunTimeout)
	cmd.Printf("data_dir:           %s\n", settings.DataDir)
	cmd.Printf("mapping_file:       %s\n", mapping)
	cmd.Printf("schedule.enabled:   %t\n", settings.Schedule.Enabled)
	cmd.Printf("schedule.interval:  %s\n", settings.Schedule.Interval)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsPath == "" {
		return errors.New("settings path not configured")
	}
	key, value := args[0], args[1]

	if err := applySetting(key, value); err != nil {
		return err
	}

	if err := file.Save(settingsPath, settings); err != nil {
		return err
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

// applySetting mutates the package settings for one key.
func applySetting(key, value string) error {
	switch key {
	case "identity":
		settings.Identity = value
	case "form_types":
		parts := strings.Split(value, ",")
		forms := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				forms = append(forms, p)
			}
		}
		if len(forms) == 0 {
			return errors.New("form_types needs at least one form")
		}
		settings.FormTypes = forms
	case "rate_limit":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("rate_limit must be a positive number, got %q", value)
		}
		settings.RateLimit = f
	case "retry_max":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("retry_max must be a positive integer, got %q", value)
		}
		settings.RetryMax = n
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("workers must be a positive integer, got %q", value)
		}
		settings.Workers = n
	case "run_timeout":
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("run_timeout must be a positive duration, got %q", value)
		}
		settings.RunTimeout = d
	case "data_dir":
		settings.DataDir = value
	case "mapping_file":
		settings.MappingFile = value
	case "schedule.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("schedule.enabled must be true or false, got %q", value)
		}
		settings.Schedule.Enabled = b
	case "schedule.interval":
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("schedule.interval must be a positive duration, got %q", value)
		}
		settings.Schedule.Interval = d
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}
