// Package commands implements the umbrellactl subcommands.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/policyops/umbrella/internal/constants"
	"github.com/policyops/umbrella/pkg/umbrella"
	"github.com/policyops/umbrella/pkg/umbrellaclient"
)

// Common static errors used throughout the commands package.
var (
	ErrNotLoggedIn          = errors.New("not logged in, run 'umbrellactl login' first")
	ErrInvalidListID        = errors.New("destination list ID must be an integer")
	ErrInvalidDestinationID = errors.New("destination ID must be an integer")
	ErrInvalidAccessType    = errors.New("access must be 'allow' or 'block'")
	ErrNoDestinations       = errors.New("provide destinations as arguments or with --from-file")
)

// CreateClient builds an API client from the resolved configuration.
func CreateClient() (umbrella.Client, error) {
	apiKey := viper.GetString("api_key")
	apiSecret := viper.GetString("api_secret")

	if apiKey == "" || apiSecret == "" {
		return nil, ErrNotLoggedIn
	}

	config := &umbrella.Config{
		BaseURL:   viper.GetString("api_url"),
		APIKey:    apiKey,
		APISecret: apiSecret,
		Debug:     viper.GetBool("verbose"),
	}

	client, err := umbrellaclient.New(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// parseListID parses a destination list ID argument.
func parseListID(arg string) (int, error) {
	listID, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidListID, arg)
	}

	return listID, nil
}

// outputJSON writes the value to stdout as indented JSON.
func outputJSON(value interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode as JSON: %w", err)
	}

	return nil
}

// outputYAML writes the value to stdout as YAML.
func outputYAML(value interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(constants.JSONIndentSize)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode as YAML: %w", err)
	}

	return nil
}

// formatEpoch renders a Unix timestamp for table output.
func formatEpoch(epoch int64) string {
	if epoch == 0 {
		return ""
	}

	return time.Unix(epoch, 0).UTC().Format("2006-01-02 15:04:05")
}

// outputDestinationList renders a single destination list in the configured
// output format.
func outputDestinationList(list *umbrella.DestinationList) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return outputJSON(list)
	case constants.FormatYAML:
		return outputYAML(list)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")

		_ = table.Append("ID", strconv.Itoa(list.ID))
		_ = table.Append("Name", list.Name)
		_ = table.Append("Access", list.Access)
		_ = table.Append("Global", strconv.FormatBool(list.IsGlobal))

		if list.Meta != nil {
			_ = table.Append("Destinations", strconv.Itoa(list.Meta.DestinationCount))
		}

		if list.CreatedAt != 0 {
			_ = table.Append("Created", formatEpoch(list.CreatedAt))
		}

		if list.ModifiedAt != 0 {
			_ = table.Append("Modified", formatEpoch(list.ModifiedAt))
		}

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}
