// Package umbrella provides types, interfaces, and helpers for working with
// the Cisco Umbrella Policies v2 API.
//
// # Overview
//
// The umbrella package defines the domain types (DestinationList,
// Destination) and the DestinationListsClient interface covering destination
// list resources. A concrete implementation is provided by the
// umbrellaclient package, which wires configuration, transport, and OAuth2
// client-credentials authentication. Most consumers should import
// umbrellaclient to construct a client and then interact with the interfaces
// exposed here.
//
// # Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/policyops/umbrella/pkg/umbrellaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := umbrellaclient.NewWithCredentials(ctx, "key", "secret")
//	  if err != nil { log.Fatal(err) }
//
//	  lists, err := cli.DestinationLists().List(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = lists
//	}
//
// # Pagination and batching
//
// List operations return complete result sets: the client walks 1-based pages
// of PageSize items and stops at the first short page. Bulk destination
// operations split their input into chunks of BatchSize items and submit one
// request per chunk, returning the last response's data. The FetchAllPages,
// PaginationIterator, Chunk, and SubmitChunks helpers implement these rules
// and are usable directly against any conforming endpoint.
//
// # Errors
//
// Failed exchanges are represented by AuthError (a failed credential
// exchange, or repeated token expiry), HTTPError (any other non-2xx
// response, body kept verbatim), NetworkError (transport failure before any
// status was received), and ChunkError (a chunked submission that failed
// partway, with the count of chunks already applied). Helpers such as
// IsNotFound and IsUnauthorized make it easy to branch on common cases.
package umbrella
