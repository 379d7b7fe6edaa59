package export

import (
	"encoding/json"

	"github.com/kosirm/mindmap-writer-sub008/pkg/geom"
	"github.com/kosirm/mindmap-writer-sub008/pkg/layout"
)

// PositionMap is the JSON artifact consumed by rendering layers: every
// visible node's center, plus the non-fatal warnings the layout produced.
// It is derived state - a snapshot, never a source of truth.
type PositionMap struct {
	Orientation string                `json:"orientation"`
	Radius      float64               `json:"radius,omitempty"`
	Positions   map[string]geom.Point `json:"positions"`
	Warnings    []layout.Warning      `json:"warnings,omitempty"`
}

// FromResult builds the JSON artifact for a layout result.
func FromResult(res *layout.Result) PositionMap {
	return PositionMap{
		Orientation: res.Orientation.String(),
		Radius:      res.Radius,
		Positions:   res.Positions,
		Warnings:    res.Warnings,
	}
}

// MarshalPositions serializes a layout result as indented JSON. Output is
// deterministic: encoding/json emits map keys in sorted order.
func MarshalPositions(res *layout.Result) ([]byte, error) {
	return json.MarshalIndent(FromResult(res), "", "  ")
}
