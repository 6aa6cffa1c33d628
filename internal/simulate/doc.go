// Package simulate drives pagination controllers headlessly.
//
// A Recorder stands in for both the host screen and its list view and
// records every callback and UI command as an Event. Scripts of steps
// (scroll, near, finish:N, reset:K, ...) replay user and host behavior
// against a Recorder, and the built-in scenarios check the load/finish
// contract end to end.
package simulate
