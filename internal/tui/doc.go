// Package tui implements the interactive dashboard: a Bubble Tea
// application with two screens.
//
// The dashboard screen lists every bot the backend knows about with its
// live status, and carries the start/stop/pause controls. The form
// screen edits one bot's typed configuration parameters with live
// validation and a color preview, and can import and export the values
// as JSON.
//
// AppModel coordinates the screens and owns the cross-cutting state:
// the backend connectivity indicator (fed by the monitor package via
// ConnectionChangedMsg) and the toast stack (fed by notify.ToastMsg,
// usually through a notify.ProgramNotifier attached to the API client).
package tui
