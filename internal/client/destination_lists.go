package client

import (
	"context"
	"encoding/json"
	"fmt"

	internalhttp "github.com/policyops/umbrella/internal/http"
	"github.com/policyops/umbrella/pkg/umbrella"
)

// DestinationListsClient implements the umbrella.DestinationListsClient interface.
type DestinationListsClient struct {
	httpClient *internalhttp.Client
}

// NewDestinationListsClient creates a new destination lists client.
func NewDestinationListsClient(httpClient *internalhttp.Client) *DestinationListsClient {
	return &DestinationListsClient{httpClient: httpClient}
}

// List retrieves all destination lists in the organization, walking every
// page of the collection.
func (c *DestinationListsClient) List(ctx context.Context, params *umbrella.QueryParams) ([]umbrella.DestinationList, error) {
	lister := &pageLister[umbrella.DestinationList]{httpClient: c.httpClient}

	lists, err := umbrella.FetchAllPages(ctx, lister, "/destinationlists", params)
	if err != nil {
		return nil, fmt.Errorf("listing destination lists: %w", err)
	}

	return lists, nil
}

// Create creates a new destination list.
func (c *DestinationListsClient) Create(ctx context.Context, request *umbrella.DestinationListCreateRequest) (*umbrella.DestinationList, error) {
	resp, err := c.httpClient.Post(ctx, "/destinationlists", request)
	if err != nil {
		return nil, fmt.Errorf("creating destination list: %w", err)
	}

	return decodeData[umbrella.DestinationList](resp)
}

// Get retrieves a specific destination list.
func (c *DestinationListsClient) Get(ctx context.Context, listID int) (*umbrella.DestinationList, error) {
	resp, err := c.httpClient.Get(ctx, destinationListPath(listID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting destination list %d: %w", listID, err)
	}

	return decodeData[umbrella.DestinationList](resp)
}

// Update renames a destination list. The name is the only mutable attribute.
func (c *DestinationListsClient) Update(ctx context.Context, listID int, request *umbrella.DestinationListUpdateRequest) (*umbrella.DestinationList, error) {
	resp, err := c.httpClient.Patch(ctx, destinationListPath(listID), request)
	if err != nil {
		return nil, fmt.Errorf("updating destination list %d: %w", listID, err)
	}

	return decodeData[umbrella.DestinationList](resp)
}

// Delete deletes a destination list and returns the server's status envelope.
func (c *DestinationListsClient) Delete(ctx context.Context, listID int) (*umbrella.Status, error) {
	resp, err := c.httpClient.Delete(ctx, destinationListPath(listID))
	if err != nil {
		return nil, fmt.Errorf("deleting destination list %d: %w", listID, err)
	}

	var result umbrella.StatusResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return &result.Status, nil
}

// ListDestinations retrieves all destinations within a destination list,
// walking every page of the collection.
func (c *DestinationListsClient) ListDestinations(ctx context.Context, listID int, params *umbrella.QueryParams) ([]umbrella.Destination, error) {
	lister := &pageLister[umbrella.Destination]{httpClient: c.httpClient}

	destinations, err := umbrella.FetchAllPages(ctx, lister, destinationListPath(listID)+"/destinations", params)
	if err != nil {
		return nil, fmt.Errorf("listing destinations of list %d: %w", listID, err)
	}

	return destinations, nil
}

// AddDestinations adds destinations to a destination list, submitting them in
// chunks. The returned list reflects the state after the final chunk; its
// meta carries the updated destination count.
func (c *DestinationListsClient) AddDestinations(ctx context.Context, listID int, destinations []string) (*umbrella.DestinationList, error) {
	path := destinationListPath(listID) + "/destinations"

	list, err := umbrella.SubmitChunks(ctx, destinations, umbrella.BatchSize,
		func(ctx context.Context, chunk []string) (*umbrella.Response[umbrella.DestinationList], error) {
			payload := make([]umbrella.DestinationAddRequest, 0, len(chunk))
			for _, destination := range chunk {
				payload = append(payload, umbrella.DestinationAddRequest{Destination: destination})
			}

			resp, err := c.httpClient.Post(ctx, path, payload)
			if err != nil {
				return nil, err
			}

			return decodeResponse[umbrella.DestinationList](resp)
		})
	if err != nil {
		return nil, fmt.Errorf("adding destinations to list %d: %w", listID, err)
	}

	return list, nil
}

// RemoveDestinations removes destinations from a destination list by their
// numeric destination IDs, submitting them in chunks.
func (c *DestinationListsClient) RemoveDestinations(ctx context.Context, listID int, destinationIDs []int) (*umbrella.DestinationList, error) {
	path := destinationListPath(listID) + "/destinations/remove"

	list, err := umbrella.SubmitChunks(ctx, destinationIDs, umbrella.BatchSize,
		func(ctx context.Context, chunk []int) (*umbrella.Response[umbrella.DestinationList], error) {
			resp, err := c.httpClient.DeleteWithBody(ctx, path, chunk)
			if err != nil {
				return nil, err
			}

			return decodeResponse[umbrella.DestinationList](resp)
		})
	if err != nil {
		return nil, fmt.Errorf("removing destinations from list %d: %w", listID, err)
	}

	return list, nil
}

// pageLister adapts the transport to the generic pagination helpers.
type pageLister[T any] struct {
	httpClient *internalhttp.Client
}

// ListPage fetches a single page of a listing endpoint.
func (l *pageLister[T]) ListPage(ctx context.Context, path string, params *umbrella.QueryParams) (*umbrella.ListResponse[T], error) {
	resp, err := l.httpClient.Get(ctx, path, params.ToValues())
	if err != nil {
		return nil, err
	}

	var result umbrella.ListResponse[T]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return &result, nil
}

func destinationListPath(listID int) string {
	return fmt.Sprintf("/destinationlists/%d", listID)
}

// decodeResponse unmarshals a data envelope.
func decodeResponse[T any](resp *internalhttp.Response) (*umbrella.Response[T], error) {
	var result umbrella.Response[T]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return &result, nil
}

// decodeData unmarshals a data envelope and returns the payload.
func decodeData[T any](resp *internalhttp.Response) (*T, error) {
	result, err := decodeResponse[T](resp)
	if err != nil {
		return nil, err
	}

	return &result.Data, nil
}
