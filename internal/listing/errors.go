package listing

import "fmt"

// PartialHydrationError reports detail fetches that failed during assembly.
// Err holds the first failure for strict assembly and every failure (combined)
// for tolerant assembly. Fetches abandoned because strict assembly was
// cancelled are not counted in Failed.
type PartialHydrationError struct {
	Failed int
	Total  int
	Err    error
}

func (e *PartialHydrationError) Error() string {
	return fmt.Sprintf("hydrate %d of %d entries failed: %v", e.Failed, e.Total, e.Err)
}

func (e *PartialHydrationError) Unwrap() error { return e.Err }
