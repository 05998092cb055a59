package tilegrid

import (
	"fmt"
	"os"
)

// DiagnosticKind identifies the recoverable condition a Diagnostic reports.
type DiagnosticKind uint8

const (
	// DiagEmptyLayer reports a layer with a nil or zero-row grid. The layer's
	// container is still created and attached, just left empty.
	DiagEmptyLayer DiagnosticKind = iota
	// DiagMissingTexture reports a tile index whose computed key has no
	// region in the texture source. The cell is dropped from the tree.
	DiagMissingTexture
)

// Diagnostic describes a recoverable problem encountered while compiling a
// grid. Diagnostics never abort the build; they exist so hosts can route,
// suppress, or assert on them.
type Diagnostic struct {
	Kind  DiagnosticKind
	Layer string // layer name
	Row   int    // grid row (DiagMissingTexture only)
	Col   int    // grid column (DiagMissingTexture only)
	Tile  int    // original tile index (DiagMissingTexture only)
	Key   string // computed texture key (DiagMissingTexture only)
}

// String formats the diagnostic as a human-readable one-liner.
func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagEmptyLayer:
		return fmt.Sprintf("layer %q has no grid data, rendering empty", d.Layer)
	case DiagMissingTexture:
		return fmt.Sprintf("layer %q cell (%d,%d): no texture for key %q (tile index %d), cell dropped",
			d.Layer, d.Col, d.Row, d.Key, d.Tile)
	}
	return fmt.Sprintf("unknown diagnostic kind %d", d.Kind)
}

// DiagnosticFunc receives recoverable compile problems. Hosts can set
// Config.Diagnostics to capture them; when unset, diagnostics are logged
// to stderr.
type DiagnosticFunc func(Diagnostic)

// logDiagnostic is the default sink: one line to stderr per diagnostic.
func logDiagnostic(d Diagnostic) {
	_, _ = fmt.Fprintf(os.Stderr, "[tilegrid] %s\n", d)
}
