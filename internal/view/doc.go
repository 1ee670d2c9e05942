// Package view defines the view contract shared by containers, zones,
// dropdowns and modals.
//
// A view renders itself to a string (usually composed with lipgloss) and
// tears itself down on Close. Base supplies the teardown contract: release
// event bindings, close assigned sub-views, run the optional OnClose hook.
// Container holds a single replaceable child, and PeriodicRenderer keeps a
// clock-dependent view fresh.
package view
