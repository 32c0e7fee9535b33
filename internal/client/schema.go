package client

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const reviewResultSchemaURL = "review_result.schema.json"

//go:embed review_result.schema.json
var reviewResultSchema []byte

var compiledReviewSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(reviewResultSchema))
	if err != nil {
		return nil, fmt.Errorf("parse review schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(reviewResultSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add review schema: %w", err)
	}
	return c.Compile(reviewResultSchemaURL)
})

// validateReviewBody checks a response body against the ReviewResult schema.
func validateReviewBody(body []byte) error {
	sch, err := compiledReviewSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}
