package fs

import (
	"context"
	"sync"
)

// Loader produces directory snapshots asynchronously.
type Loader interface {
	Start(req LoadRequest)
	Cancel(token int)
}

// LoadRequest describes a directory read to perform.
type LoadRequest struct {
	Token    int
	Path     string
	Callback func(LoadResult)
}

// LoadResult is emitted by Loader once the read completes.
type LoadResult struct {
	Token    int
	Snapshot Snapshot
	Err      error
}

// NewAsyncLoader constructs the default goroutine-based loader.
func NewAsyncLoader() Loader {
	return &asyncLoader{
		jobs: make(map[int]context.CancelFunc),
		scan: ScanDirectory,
	}
}

type asyncLoader struct {
	mu   sync.Mutex
	jobs map[int]context.CancelFunc
	scan func(string) (Snapshot, error)
}

func (l *asyncLoader) Start(req LoadRequest) {
	if req.Token == 0 || req.Path == "" || req.Callback == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.mu.Lock()
	l.jobs[req.Token] = cancel
	l.mu.Unlock()

	go func() {
		defer func() {
			l.mu.Lock()
			delete(l.jobs, req.Token)
			l.mu.Unlock()
		}()

		snap, err := l.scan(req.Path)

		select {
		case <-ctx.Done():
			return
		default:
		}

		req.Callback(LoadResult{
			Token:    req.Token,
			Snapshot: snap,
			Err:      err,
		})
	}()
}

func (l *asyncLoader) Cancel(token int) {
	l.mu.Lock()
	if cancel, ok := l.jobs[token]; ok {
		cancel()
		delete(l.jobs, token)
	}
	l.mu.Unlock()
}
