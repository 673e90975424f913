// Package ui contains the Bubble Tea program that renders the personalisation
// picker. The Model never mutates navigation state itself; it translates key
// presses into navigation actions and redraws whatever the controller reports.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, window size, spinner ticks, action results).
//   - Key handlers (internal/ui/navigation.go, internal/ui/settings.go) call
//     dispatch, which applies the action to the navigation controller and turns
//     the returned effects into tea.Cmd values via the command bus.
//   - Effects run off the update loop and report back as command.ActionMsg,
//     which is dispatched like any other action. Cache flushes run inline so a
//     later category load can never observe entries from the previous
//     environment.
//
// State ownership:
//   - Navigation state (phase, environment, selected category, items) lives in
//     internal/navigation and is only read here through Controller.State.
//   - The visible list lives in internal/ui/state.Level, which tracks filtering,
//     the cursor, and viewport offsets. It is rebuilt whenever the controller's
//     Revision changes, so filter text never outlives the items it applied to.
//
// Harness replays messages synchronously for tests without a terminal.
package ui
