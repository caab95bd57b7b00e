//go:build js && wasm

// Command wasm exposes the traffic automaton to the browser via WebAssembly.
// After loading, it registers a global JavaScript function:
//
//	runSimulation(jsonString) -> jsonString
//
// The input is a JSON-encoded SimulationInput and the output a JSON-encoded
// SimulationLog, the same contract the CLI uses. A page script typically
// feeds each row's velocity grid to a canvas heat map, coloring cells by
// speed and leaving the -1 sentinel cells dark, one animation frame per tick.
package main

import (
	"syscall/js"

	"github.com/cxd309/nasch-engine/internal/engine"
)

func main() {
	js.Global().Set("runSimulation", js.FuncOf(runSimulation))
	select {} // keep the WASM module alive until the page is closed
}

func runSimulation(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"error": "no input provided"}
	}

	result, err := engine.RunJSON(args[0].String())
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return result
}
