package memory

import "context"

// Queue is a channel-backed stand-in for the Redis judge queue.
type Queue struct {
	ch chan string
}

func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan string, size)}
}

func (q *Queue) Enqueue(ctx context.Context, submissionID string) error {
	select {
	case q.ch <- submissionID:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) Dequeue(ctx context.Context) (string, error) {
	select {
	case id := <-q.ch:
		return id, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
