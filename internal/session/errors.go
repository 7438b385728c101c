package session

import "errors"

var (
	// ErrRoomFull rejects a join against a queue that already has its
	// full complement of players.
	ErrRoomFull = errors.New("room full")
	// ErrQueueClosed rejects operations against a disposed queue.
	ErrQueueClosed = errors.New("queue closed")
	// ErrMatchNotFound reports an unknown match identifier.
	ErrMatchNotFound = errors.New("match not found")
)
