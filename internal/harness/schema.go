package harness

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed scenario.cue
var schemaSource string

var (
	schemaOnce sync.Once
	schemaDef  cue.Value
	schemaCtx  *cue.Context
	schemaErr  error
)

// compileSchema builds the embedded scenario schema once.
// The schema is part of the binary; a compile failure is a programming
// error surfaced on first use rather than a panic at init.
func compileSchema() (cue.Value, *cue.Context, error) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		root := schemaCtx.CompileString(schemaSource, cue.Filename("scenario.cue"))
		if err := root.Err(); err != nil {
			schemaErr = fmt.Errorf("compile scenario schema: %w", err)
			return
		}
		schemaDef = root.LookupPath(cue.ParsePath("#Scenario"))
		if err := schemaDef.Err(); err != nil {
			schemaErr = fmt.Errorf("lookup #Scenario: %w", err)
		}
	})
	return schemaDef, schemaCtx, schemaErr
}

// validateSchema unifies a decoded scenario document with the #Scenario
// definition and validates the result. Wrong field types, missing
// required fields and fields not in the schema all fail here.
func validateSchema(doc map[string]any) error {
	def, ctx, err := compileSchema()
	if err != nil {
		return err
	}

	val := ctx.Encode(doc)
	if err := val.Err(); err != nil {
		return fmt.Errorf("encode scenario document: %w", err)
	}

	unified := def.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema violation: %w", err)
	}

	return nil
}
