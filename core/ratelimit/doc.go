// Package ratelimit implements fixed-window request quotas keyed by client id.
//
// Each client gets at most MaxAttempts accepted requests per WindowSeconds.
// The window starts on the client's first request and resets entirely when it
// elapses, as opposed to a sliding window. Time is read through the clock
// package so the window boundary is testable.
package ratelimit
