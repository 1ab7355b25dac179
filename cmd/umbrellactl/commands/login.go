package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/policyops/umbrella/internal/constants"
	"github.com/policyops/umbrella/pkg/umbrella"
	"github.com/policyops/umbrella/pkg/umbrellaclient"
)

// cliConfig is the on-disk shape of ~/.umbrellactl/config.yml.
type cliConfig struct {
	APIURL    string `yaml:"api_url,omitempty"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	Output    string `yaml:"output,omitempty"`
}

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		apiKey    string
		apiSecret string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store Umbrella API credentials",
		Long: `Verify an Umbrella API key and secret and store them in the config file.

The credentials are checked with a live token exchange before being saved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoginCommand(apiKey, apiSecret)
		},
	}

	cmd.Flags().StringVar(&apiKey, "key", "", "Umbrella API key")
	cmd.Flags().StringVar(&apiSecret, "secret", "", "Umbrella API secret")

	return cmd
}

func runLoginCommand(apiKey, apiSecret string) error {
	if apiKey == "" {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("API key: ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}

		apiKey = strings.TrimSpace(line)
	}

	if apiSecret == "" {
		fmt.Print("API secret: ")

		secretBytes, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read API secret: %w", err)
		}

		apiSecret = string(secretBytes)

		fmt.Println()
	}

	config := &umbrella.Config{
		BaseURL:   viper.GetString("api_url"),
		APIKey:    apiKey,
		APISecret: apiSecret,
	}

	client, err := umbrellaclient.New(context.Background(), config)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	// A listing is the cheapest call that exercises the token exchange.
	_, err = client.DestinationLists().List(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("failed to verify credentials: %w", err)
	}

	err = saveConfig(&cliConfig{
		APIURL:    viper.GetString("api_url"),
		APIKey:    apiKey,
		APISecret: apiSecret,
	})
	if err != nil {
		return err
	}

	_, _ = os.Stdout.WriteString("Credentials verified and saved\n")

	return nil
}

func saveConfig(config *cliConfig) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	configDir := filepath.Join(home, ".umbrellactl")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yml")

	err = os.WriteFile(configPath, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
