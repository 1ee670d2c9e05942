// Package logtail reads the end of zonekit's own log file for the log view.
//
// # Reading
//
// Tail reads fixed-size blocks backwards from the end of the file until it
// has maxLines whole lines, so a long-running log costs no more to tail
// than a fresh one:
//
//	lines, err := logtail.Tail(cfg.LogPath(), 200)
//
// TailEntries parses the same lines into Entry values.
//
// A missing file is not an error; the log is created lazily.
//
// # Parsing
//
// The standard logger writes "<prefix> 2006/01/02 15:04:05 <message>".
// Parse splits that shape into an Entry and flags messages that report a
// failure so the view can highlight them. Lines without a timestamp are
// returned Raw with the original text as the message.
package logtail
