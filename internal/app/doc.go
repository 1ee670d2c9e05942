// Package app is the composition root of the zonekit demo.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          api_bind, poll_seconds, log_file
//	       ├─────> tea.LogToFile()        log output leaves the terminal
//	       ├─────> prefs.Load()           theme and status filter
//	       ├─────> resource.NewClient()   JSON over HTTP
//	       └─────> ui.Run()               blocks until quit or ctx done
//
// There is no background poller here: each zone factory streams its own
// resource while it is displayed and reports outcomes to a state.Store.
//
// # Error Handling
//
// Fatal (returned from Run):
//   - unreadable or invalid config file
//   - log file that cannot be opened
//   - malformed api_bind
//
// Recoverable (logged, streams continue):
//   - fetch, save and delete failures
//   - preferences that cannot be read or written
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{PollEvery: 5}); err != nil {
//		log.Fatalf("zonekit failed: %v", err)
//	}
package app
