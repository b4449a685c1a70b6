package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameQueueDefersNestedRequests(t *testing.T) {
	var q FrameQueue
	var calls []string

	var tick func()
	tick = func() {
		calls = append(calls, "tick")
		q.RequestFrame(tick)
	}
	q.RequestFrame(tick)

	assert.Equal(t, 1, q.RunFrame())
	assert.Equal(t, []string{"tick"}, calls)
	assert.Equal(t, 1, q.Pending())

	assert.Equal(t, 1, q.RunFrame())
	assert.Len(t, calls, 2)
}

func TestFrameQueueCancel(t *testing.T) {
	var q FrameQueue
	ran := 0
	a := q.RequestFrame(func() { ran++ })
	q.RequestFrame(func() { ran += 10 })

	assert.NotZero(t, a)
	q.CancelFrame(a)
	q.CancelFrame(a)
	q.CancelFrame(9999)

	assert.Equal(t, 1, q.RunFrame())
	assert.Equal(t, 10, ran)
	assert.Equal(t, 0, q.RunFrame())
}
