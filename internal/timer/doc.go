// Package timer schedules cancellable one-shot jobs and delivers them to
// the event loop that owns the state they touch.
//
// A [Scheduler] arms a [Clock] timer and, when it fires, posts the job
// through a user supplied function (a bubbletea Program.Send, or [Loop.Post]).
// The job runs on the owning loop, so handlers and timer firings never
// overlap. A [Handle] cancelled before its job runs suppresses the job even
// if the clock already fired.
package timer
