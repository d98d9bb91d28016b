// Package deque implements persistent double-ended queues.
//
// Both variants keep the elements in two persistent stacks, one per end, and
// every operation returns a new deque while leaving the receiver valid.
// The zero value of either type is an empty deque.
//
// Deque rebuilds both stacks at once when one of them grows more than three
// times longer than the other. Operations are amortized O(1) but a single
// call can cost O(n): popping from the short end twice right after a run of
// pushes at the other end pays for the whole rebuild.
//
// RealTime spreads the same rebuild over the following operations. Each half
// carries an explicit rotation phase, and every operation advances the
// pending rotation by a fixed number of element moves, enough to finish
// before the short half can run dry. No call does more than O(1) work, at a
// higher constant cost per operation than Deque.
package deque
