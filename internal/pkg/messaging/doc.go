// Package messaging provides a small API for publishing and consuming
// messages.
//
// The goal is to keep business code independent from the underlying messaging
// system. The only implementation here is NATS, but use-case code relies on
// the interfaces in this package so the broker can be swapped.
package messaging
