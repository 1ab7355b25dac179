package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/policyops/umbrella/internal/constants"
	"github.com/policyops/umbrella/pkg/umbrella"
)

// NewDestinationsCommand creates the destinations command group.
func NewDestinationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "destinations",
		Aliases: []string{"destination", "dest"},
		Short:   "Manage destinations within a list",
		Long:    "List, add, and remove domains, URLs, and IPs in a destination list",
	}

	cmd.AddCommand(newDestinationsListCommand())
	cmd.AddCommand(newDestinationsAddCommand())
	cmd.AddCommand(newDestinationsRemoveCommand())

	return cmd
}

func newDestinationsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list LIST_ID",
		Short: "List destinations",
		Long:  "List every destination in a destination list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseListID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			destinations, err := client.DestinationLists().ListDestinations(context.Background(), listID, nil)
			if err != nil {
				return fmt.Errorf("failed to list destinations of list %d: %w", listID, err)
			}

			return outputDestinations(destinations)
		},
	}
}

func outputDestinations(destinations []umbrella.Destination) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return outputJSON(destinations)
	case constants.FormatYAML:
		return outputYAML(destinations)
	default:
		return outputDestinationsTable(destinations)
	}
}

func outputDestinationsTable(destinations []umbrella.Destination) error {
	if len(destinations) == 0 {
		_, _ = os.Stdout.WriteString("No destinations found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Destination", "Type", "Comment")

	for _, destination := range destinations {
		_ = table.Append(strconv.Itoa(destination.ID), destination.Destination, destination.Type, destination.Comment)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// DestinationsAddOptions holds the options for adding destinations.
type DestinationsAddOptions struct {
	FromFile string
}

func newDestinationsAddCommand() *cobra.Command {
	var opts DestinationsAddOptions

	cmd := &cobra.Command{
		Use:   "add LIST_ID [DESTINATION...]",
		Short: "Add destinations to a list",
		Long: `Add domains, URLs, or IP addresses to a destination list.

Destinations are given as arguments or read one per line from a file.
Large inputs are submitted in batches automatically.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDestinationsAddCommand(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.FromFile, "from-file", "f", "", "file with one destination per line")

	return cmd
}

func runDestinationsAddCommand(args []string, opts DestinationsAddOptions) error {
	listID, err := parseListID(args[0])
	if err != nil {
		return err
	}

	destinations := args[1:]

	if opts.FromFile != "" {
		fromFile, err := readDestinationsFile(opts.FromFile)
		if err != nil {
			return err
		}

		destinations = append(destinations, fromFile...)
	}

	if len(destinations) == 0 {
		return ErrNoDestinations
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}

	list, err := client.DestinationLists().AddDestinations(context.Background(), listID, destinations)
	if err != nil {
		return fmt.Errorf("failed to add destinations to list %d: %w", listID, err)
	}

	count := ""
	if list.Meta != nil {
		count = strconv.Itoa(list.Meta.DestinationCount)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Added %d destinations to list '%s' (now %s total)\n",
		len(destinations), list.Name, count)

	return nil
}

func readDestinationsFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening destinations file: %w", err)
	}

	defer func() { _ = file.Close() }()

	var destinations []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		destinations = append(destinations, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading destinations file: %w", err)
	}

	return destinations, nil
}

func newDestinationsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove LIST_ID DESTINATION_ID...",
		Aliases: []string{"rm"},
		Short:   "Remove destinations from a list",
		Long:    "Remove destinations from a destination list by their numeric IDs",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseListID(args[0])
			if err != nil {
				return err
			}

			destinationIDs := make([]int, 0, len(args)-1)

			for _, arg := range args[1:] {
				id, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("%w: %q", ErrInvalidDestinationID, arg)
				}

				destinationIDs = append(destinationIDs, id)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			list, err := client.DestinationLists().RemoveDestinations(context.Background(), listID, destinationIDs)
			if err != nil {
				return fmt.Errorf("failed to remove destinations from list %d: %w", listID, err)
			}

			count := ""
			if list.Meta != nil {
				count = strconv.Itoa(list.Meta.DestinationCount)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Removed %d destinations from list '%s' (now %s total)\n",
				len(destinationIDs), list.Name, count)

			return nil
		},
	}
}
