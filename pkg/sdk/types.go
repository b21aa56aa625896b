package dimreg

import (
	"encoding/json"
	"time"

	domdim "github.com/kailas-cloud/dimreg/internal/domain/dimension"
	dimensionuc "github.com/kailas-cloud/dimreg/internal/usecase/dimension"
)

// PutRequest is a dimension definition to create or replace.
type PutRequest struct {
	Name     string
	Priority int
	Schema   json.RawMessage
	// FunctionName is raw JSON: a string, null, or absent (nil).
	// Any other JSON type is rejected.
	FunctionName json.RawMessage
}

// Dimension is a stored dimension tagged with the tenant's mandatory flag.
type Dimension struct {
	Name           string
	Priority       int
	Schema         json.RawMessage
	FunctionName   *string // nil when the dimension references no function
	CreatedBy      string
	CreatedAt      time.Time
	LastModifiedBy string
	LastModifiedAt time.Time
	Mandatory      bool
}

// PutResult is the outcome of one item in PutMany.
type PutResult struct {
	Name      string
	Dimension Dimension
	Err       error
}

// FunctionName encodes name for PutRequest.FunctionName.
func FunctionName(name string) json.RawMessage {
	b, _ := json.Marshal(name)
	return b
}

func (r PutRequest) toInternal() dimensionuc.CreateRequest {
	return dimensionuc.CreateRequest{
		Name:         r.Name,
		Priority:     r.Priority,
		Schema:       r.Schema,
		FunctionName: r.FunctionName,
	}
}

func fromInternal(d domdim.WithMandatory) Dimension {
	a := d.Audit()
	out := Dimension{
		Name:           d.Name(),
		Priority:       d.Priority(),
		Schema:         d.Schema(),
		CreatedBy:      a.CreatedBy,
		CreatedAt:      a.CreatedAt,
		LastModifiedBy: a.LastModifiedBy,
		LastModifiedAt: a.LastModifiedAt,
		Mandatory:      d.Mandatory,
	}
	if name, ok := d.Function().Name(); ok {
		out.FunctionName = &name
	}
	return out
}
