package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/policyops/umbrella/internal/constants"
	"github.com/policyops/umbrella/pkg/umbrella"
)

// NewDestinationListsCommand creates the destination-lists command group.
func NewDestinationListsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "destination-lists",
		Aliases: []string{"destination-list", "dl", "lists"},
		Short:   "Manage destination lists",
		Long:    "List, create, rename, and delete Umbrella destination lists",
	}

	cmd.AddCommand(newDestinationListsListCommand())
	cmd.AddCommand(newDestinationListsCreateCommand())
	cmd.AddCommand(newDestinationListsGetCommand())
	cmd.AddCommand(newDestinationListsRenameCommand())
	cmd.AddCommand(newDestinationListsDeleteCommand())

	return cmd
}

func newDestinationListsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List destination lists",
		Long:  "List every destination list in the organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			lists, err := client.DestinationLists().List(context.Background(), nil)
			if err != nil {
				return fmt.Errorf("failed to list destination lists: %w", err)
			}

			return outputDestinationLists(lists)
		},
	}
}

func outputDestinationLists(lists []umbrella.DestinationList) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return outputJSON(lists)
	case constants.FormatYAML:
		return outputYAML(lists)
	default:
		return outputDestinationListsTable(lists)
	}
}

func outputDestinationListsTable(lists []umbrella.DestinationList) error {
	if len(lists) == 0 {
		_, _ = os.Stdout.WriteString("No destination lists found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Access", "Global", "Destinations")

	for _, list := range lists {
		destinationCount := ""
		if list.Meta != nil {
			destinationCount = strconv.Itoa(list.Meta.DestinationCount)
		}

		_ = table.Append(
			strconv.Itoa(list.ID),
			list.Name,
			list.Access,
			strconv.FormatBool(list.IsGlobal),
			destinationCount,
		)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// DestinationListCreateOptions holds the options for creating a destination list.
type DestinationListCreateOptions struct {
	Access   string
	IsGlobal bool
}

func newDestinationListsCreateCommand() *cobra.Command {
	var opts DestinationListCreateOptions

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a destination list",
		Long:  "Create a new destination list with the given name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDestinationListsCreateCommand(args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Access, "access", constants.AccessBlock, "access type (allow or block)")
	cmd.Flags().BoolVar(&opts.IsGlobal, "global", false, "apply the list to every policy")

	return cmd
}

func runDestinationListsCreateCommand(name string, opts DestinationListCreateOptions) error {
	if opts.Access != constants.AccessAllow && opts.Access != constants.AccessBlock {
		return fmt.Errorf("%w, got '%s'", ErrInvalidAccessType, opts.Access)
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}

	list, err := client.DestinationLists().Create(context.Background(), &umbrella.DestinationListCreateRequest{
		Name:     name,
		Access:   opts.Access,
		IsGlobal: opts.IsGlobal,
	})
	if err != nil {
		return fmt.Errorf("failed to create destination list '%s': %w", name, err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Created destination list '%s' with ID %d\n\n", list.Name, list.ID)

	return outputDestinationList(list)
}

func newDestinationListsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LIST_ID",
		Short: "Get destination list details",
		Long:  "Display detailed information about a specific destination list",
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

			list, err := client.DestinationLists().Get(context.Background(), listID)
			if err != nil {
				return fmt.Errorf("failed to get destination list %d: %w", listID, err)
			}

			return outputDestinationList(list)
		},
	}
}

func newDestinationListsRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename LIST_ID NEW_NAME",
		Short: "Rename a destination list",
		Long:  "Change the name of a destination list; other attributes are immutable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseListID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			list, err := client.DestinationLists().Update(context.Background(), listID, &umbrella.DestinationListUpdateRequest{
				Name: args[1],
			})
			if err != nil {
				return fmt.Errorf("failed to rename destination list %d: %w", listID, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Renamed destination list %d to '%s'\n", list.ID, list.Name)

			return nil
		},
	}
}

func newDestinationListsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete LIST_ID",
		Aliases: []string{"rm"},
		Short:   "Delete a destination list",
		Long:    "Delete a destination list and all destinations it contains",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseListID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			status, err := client.DestinationLists().Delete(context.Background(), listID)
			if err != nil {
				return fmt.Errorf("failed to delete destination list %d: %w", listID, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted destination list %d: %s\n", listID, status.Text)

			return nil
		},
	}
}
