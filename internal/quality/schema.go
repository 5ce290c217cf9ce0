package quality

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var (
	//go:embed schemas/vectorizer.schema.json
	vectorizerSchema []byte
	//go:embed schemas/classifier.schema.json
	classifierSchema []byte
)

// ValidationError lists every schema violation of an artifact.
type ValidationError struct {
	Artifact string
	Errors   []FieldError
}

// FieldError is a single violation at a JSON field path.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid %s artifact:", e.Artifact)
	for _, fe := range e.Errors {
		fmt.Fprintf(&sb, " %s: %s;", fe.Field, fe.Message)
	}
	return strings.TrimSuffix(sb.String(), ";")
}

func validate(artifact string, schema, document []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("validating %s artifact: %w", artifact, err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Artifact: artifact}
	for _, re := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   re.Field(),
			Message: re.Description(),
		})
	}
	return verr
}
