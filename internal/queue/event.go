// Package queue defines message payloads exchanged over the message broker
// and the background consumer that applies them.
package queue

// RacketViewedEvent is published after a racket detail page is served. The
// publisher is fire-and-forget: a lost event costs one view count and
// nothing else.
type RacketViewedEvent struct {
	RacketID uint64 `json:"racket_id"`
	ViewedAt string `json:"viewed_at"`
}

// ViewedQueueName is the durable queue carrying RacketViewedEvent messages.
const ViewedQueueName = "racket.viewed"
