// Package ui contains the Bubble Tea program that hosts the style dropdown.
// The Model type focuses on message orchestration while dedicated helpers own
// navigation, type-ahead input, rendering and engine updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, window resizes, engine events).
//   - Key handling (internal/ui/navigation.go) opens and closes the dropdown,
//     moves the cursor and turns Enter into a selector.UserChanged event.
//     Filter helpers (internal/ui/input.go) keep type-ahead isolated from the
//     rest of the key map.
//
// State ownership:
//   - The selector.Selector owns rows, the active selection and the edit gate.
//     The model never mutates them directly; it only dispatches events.
//   - Expanded-list state (cursor, filter, viewport) lives in
//     internal/ui/state.List and is rebuilt from the selector's rows whenever
//     they change.
//   - The model is the selector's Shell: Refocus collapses the list and hands
//     focus back to the document canvas.
//
// Engine interactions:
//   - Engine events arrive on a channel; Update waits for them with
//     waitForEngineEvent and feeds each one through the dispatcher, which
//     forwards catalog, state and permission changes to the selector.
package ui
