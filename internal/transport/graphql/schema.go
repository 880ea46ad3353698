package graphql

import (
	_ "embed"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/trace/otel"
)

//go:embed schema.graphql
var Schema string

// NewSchema parses the schema and binds it to r. It fails when a field has no resolver.
func NewSchema(r *Resolver) (*graphqlgo.Schema, error) {
	return graphqlgo.ParseSchema(Schema, r,
		graphqlgo.Tracer(otel.DefaultTracer()),
		graphqlgo.MaxDepth(8),
	)
}
