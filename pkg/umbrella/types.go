package umbrella

// DestinationList represents a named, access-typed collection of destinations.
type DestinationList struct {
	ID                   int                  `json:"id"                             yaml:"id"`
	OrganizationID       int                  `json:"organizationId,omitempty"       yaml:"organizationId,omitempty"`
	Name                 string               `json:"name"                           yaml:"name"`
	Access               string               `json:"access"                         yaml:"access"`
	IsGlobal             bool                 `json:"isGlobal"                       yaml:"isGlobal"`
	IsMspDefault         bool                 `json:"isMspDefault"                   yaml:"isMspDefault"`
	MarkedForDeletion    bool                 `json:"markedForDeletion"              yaml:"markedForDeletion"`
	ThirdpartyCategoryID int                  `json:"thirdpartyCategoryId,omitempty" yaml:"thirdpartyCategoryId,omitempty"`
	BundleTypeID         int                  `json:"bundleTypeId,omitempty"         yaml:"bundleTypeId,omitempty"`
	CreatedAt            int64                `json:"createdAt,omitempty"            yaml:"createdAt,omitempty"`
	ModifiedAt           int64                `json:"modifiedAt,omitempty"           yaml:"modifiedAt,omitempty"`
	Meta                 *DestinationListMeta `json:"meta,omitempty"                 yaml:"meta,omitempty"`
}

// DestinationListMeta carries per-type destination counts for a list.
type DestinationListMeta struct {
	DestinationCount int `json:"destinationCount" yaml:"destinationCount"`
	DomainCount      int `json:"domainCount"      yaml:"domainCount"`
	URLCount         int `json:"urlCount"         yaml:"urlCount"`
	IPv4Count        int `json:"ipv4Count"        yaml:"ipv4Count"`
	ApplicationCount int `json:"applicationCount" yaml:"applicationCount"`
}

// Destination represents a domain, URL, or IP entry within a destination list.
// The numeric ID is what RemoveDestinations takes, so list-then-remove round
// trips need no conversion.
type Destination struct {
	ID          int    `json:"id"                  yaml:"id"`
	Destination string `json:"destination"         yaml:"destination"`
	Type        string `json:"type,omitempty"      yaml:"type,omitempty"`
	Comment     string `json:"comment,omitempty"   yaml:"comment,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// Status represents the status envelope returned by the API.
type Status struct {
	Code int    `json:"code" yaml:"code"`
	Text string `json:"text" yaml:"text"`
}

// ListMeta carries pagination counters on list responses.
type ListMeta struct {
	Page  int `json:"page"  yaml:"page"`
	Limit int `json:"limit" yaml:"limit"`
	Total int `json:"total" yaml:"total"`
}

// Response represents a single-object API response envelope.
type Response[T any] struct {
	Status *Status `json:"status,omitempty"`
	Data   T       `json:"data"`
}

// ListResponse represents one page of a paginated list endpoint.
type ListResponse[T any] struct {
	Status *Status   `json:"status,omitempty"`
	Meta   *ListMeta `json:"meta,omitempty"`
	Data   []T       `json:"data"`
}

// StatusResponse represents a response that carries only a status envelope,
// such as destination list deletion.
type StatusResponse struct {
	Status Status `json:"status"`
}

// DestinationListCreateRequest is the payload for creating a destination list.
type DestinationListCreateRequest struct {
	Name     string `json:"name"`
	IsGlobal bool   `json:"isGlobal"`
	Access   string `json:"access"`
}

// DestinationListUpdateRequest is the payload for renaming a destination list.
type DestinationListUpdateRequest struct {
	Name string `json:"name"`
}

// DestinationAddRequest is one entry of the bulk add-destinations payload.
type DestinationAddRequest struct {
	Destination string `json:"destination"`
	Comment     string `json:"comment,omitempty"`
}
