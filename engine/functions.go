package engine

import (
	"database/sql"
	"database/sql/driver"
	"fmt"

	sqlite "modernc.org/sqlite"

	"github.com/viant/pepdex/annot"
)

// RegisterAnnotationFunctions registers decode_annotations with the driver so
// it is available on new connections opened after this call. The function
// decodes the BLOB annotations column of the proteins table back into its
// textual form, which keeps the stored payload compact while still allowing
// ad-hoc SQL inspection.
// Note: existing open connections will not see new functions.
func RegisterAnnotationFunctions(_ *sql.DB) error {
	// Idempotent registration; driver rejects duplicates but we ignore errors silently here.
	_ = sqlite.RegisterDeterministicScalarFunction("decode_annotations", 1, decodeAnnotationsImpl)
	return nil
}

func decodeAnnotationsImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("decode_annotations: expected 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case nil:
		return "", nil
	case []byte:
		return annot.Decode(v)
	default:
		return nil, fmt.Errorf("decode_annotations: unsupported argument type %T; want BLOB", args[0])
	}
}
