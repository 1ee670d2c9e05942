// Package ui is the zonekit terminal demo: a Bubble Tea program whose screen
// is a zone.Manager with three zones.
//
// # Zones
//
//   - header: app name, the section shown in main, API root, offline
//     sources and theme
//   - main: the task list with its status dropdown, or the profile card
//   - footer: relative sync time, notices and key hints, re-rendered every
//     second by a view.PeriodicRenderer
//
// Tab swaps the main zone's factory. The factory being replaced stops its
// stream in CloseZone and the new one starts its own in CreateZone, so only
// the visible resource is polled.
//
// # Resources
//
//	GET /api/statuses                 dropdown options
//	GET /api/tasks?status=&since=     filterable, streamed
//	GET|PUT|DELETE /api/profile       singular, edited in a modal
//
// The status filter is computed from the dropdown selection and since from
// the clock, so every streamed fetch sends the current values.
//
// # Event Flow
//
//  1. Streams fetch on poll goroutines; collection and model events make
//     the bound views re-render their content.
//  2. Views call the repainter, which queues at most one repaintMsg.
//  3. The program loop handles repaintMsg and View composes the zones'
//     latest content without re-rendering.
//  4. Saves and deletes run as tea.Cmds and report back with messages;
//     the dialog answers a save with Hide or ShowError.
//
// # Key Bindings
//
//   - tab: Tasks/Profile
//   - f: focus the status filter (enter selects, esc leaves)
//   - r: refresh
//   - e: edit profile (ctrl+s save, esc cancel)
//   - x: delete profile
//   - T: cycle theme
//   - q or Ctrl+C: quit
//
// Theme and status filter are persisted through package prefs.
package ui
