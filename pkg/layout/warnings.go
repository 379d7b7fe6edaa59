package layout

import "fmt"

// WarningCode identifies a non-fatal layout condition. Warnings never
// abort a layout: the engine always returns the best layout it found and
// reports what it had to do to get there.
type WarningCode string

const (
	// WarnCapacity means the ring radius was auto-increased because the
	// configured radius could not fit the sibling count at minimum spacing.
	WarnCapacity WarningCode = "CAPACITY"

	// WarnConvergence means relaxation hit the iteration cap before the
	// largest per-iteration adjustment fell below the threshold. The
	// best-found layout is returned, possibly with residual overlaps.
	WarnConvergence WarningCode = "CONVERGENCE"
)

// Warning is an informational layout condition surfaced to the caller,
// typically shown as a toast or log line by the surrounding UI.
type Warning struct {
	Code    WarningCode `json:"code"`
	NodeID  string      `json:"node_id,omitempty"` // parent of the affected sibling group
	Message string      `json:"message"`
}

func capacityWarning(parentID string, from, to float64) Warning {
	return Warning{
		Code:    WarnCapacity,
		NodeID:  parentID,
		Message: fmt.Sprintf("radius auto-increased from %.0f to %.0f to fit children of %s", from, to, parentID),
	}
}

func convergenceWarning(parentID string, iterations int, residual float64) Warning {
	return Warning{
		Code:    WarnConvergence,
		NodeID:  parentID,
		Message: fmt.Sprintf("spacing relaxation for children of %s did not converge after %d iterations (residual %.2fpx)", parentID, iterations, residual),
	}
}
