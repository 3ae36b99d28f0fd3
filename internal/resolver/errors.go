package resolver

import (
	"fmt"

	"seqfetch/internal/accession"
)

// ResolutionError reports that a series could not be resolved because the
// remote catalog was unreachable after retries. Empty results are not errors.
type ResolutionError struct {
	Series accession.Series
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Series, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }
