package app

import (
	"sync"

	"millionaire-quiz/internal/domain"
)

// ResultFeed fans appended result records out to live subscribers.
type ResultFeed struct {
	mu          sync.Mutex
	subscribers map[chan domain.ResultRecord]struct{}
}

func newResultFeed() *ResultFeed {
	return &ResultFeed{
		subscribers: make(map[chan domain.ResultRecord]struct{}),
	}
}

func (f *ResultFeed) subscribe() (<-chan domain.ResultRecord, func()) {
	ch := make(chan domain.ResultRecord, 8)

	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

func (f *ResultFeed) publish(record domain.ResultRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers {
		select {
		case ch <- record:
		default:
			// Slow subscriber: drop its oldest pending record so publish never blocks.
			select {
			case <-ch:
			default:
			}
			ch <- record
		}
	}
}

func (f *ResultFeed) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers)
}
