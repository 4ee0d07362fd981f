package cloudsync

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/simplereplay/replay/internal/models"
)

var errQueueClosed = errors.New("write queue closed")

// writeResult is the outcome of one write
type writeResult struct {
	doc *models.Document
	err error
}

// writeJob is one full-document write. Jobs with an empty projectID create a
// new document.
type writeJob struct {
	projectID string
	doc       *models.Document
	ctx       context.Context
	// onDone runs on the lane goroutine before done is signalled
	onDone func(writeResult)
	done   chan writeResult
}

// lane runs the writes of one project id in FIFO order, one at a time
type lane struct {
	mu      sync.Mutex
	pending []*writeJob
	wake    chan struct{}
}

// writeQueue gives every project id its own single-writer lane
type writeQueue struct {
	store DocumentStore
	log   *logrus.Entry

	mu       sync.Mutex
	lanes    map[string]*lane
	closed   bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func newWriteQueue(store DocumentStore, log *logrus.Entry) *writeQueue {
	return &writeQueue{
		store:    store,
		log:      log,
		lanes:    make(map[string]*lane),
		stopChan: make(chan struct{}),
	}
}

// enqueue schedules a write and returns a channel that receives its result.
// The write runs detached from ctx cancellation.
func (q *writeQueue) enqueue(ctx context.Context, projectID string, doc *models.Document, onDone func(writeResult)) (<-chan writeResult, error) {
	job := &writeJob{
		projectID: projectID,
		doc:       doc,
		ctx:       context.WithoutCancel(ctx),
		onDone:    onDone,
		done:      make(chan writeResult, 1),
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil, errQueueClosed
	}
	l, ok := q.lanes[projectID]
	if !ok {
		l = &lane{wake: make(chan struct{}, 1)}
		q.lanes[projectID] = l
		q.wg.Add(1)
		go q.run(projectID, l)
	}
	l.mu.Lock()
	l.pending = append(l.pending, job)
	l.mu.Unlock()
	q.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return job.done, nil
}

// run is the lane loop
func (q *writeQueue) run(projectID string, l *lane) {
	defer q.wg.Done()

	log := q.log.WithField("project_id", projectID)
	log.Debug("Write lane starting")
	defer log.Debug("Write lane stopped")

	for {
		select {
		case <-l.wake:
			q.drain(l)
		case <-q.stopChan:
			// flush what was queued before Close
			q.drain(l)
			return
		}
	}
}

func (q *writeQueue) drain(l *lane) {
	for {
		l.mu.Lock()
		if len(l.pending) == 0 {
			l.mu.Unlock()
			return
		}
		job := l.pending[0]
		l.pending = l.pending[1:]
		l.mu.Unlock()

		q.execute(job)
	}
}

func (q *writeQueue) execute(job *writeJob) {
	var res writeResult
	if job.projectID == "" {
		res.doc, res.err = q.store.Create(job.ctx, job.doc)
	} else {
		res.doc, res.err = q.store.Merge(job.ctx, job.projectID, job.doc)
	}

	if job.onDone != nil {
		job.onDone(res)
	}
	job.done <- res
}

// close stops accepting writes, waits for queued writes to finish and stops
// every lane
func (q *writeQueue) close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.stopChan)
	q.mu.Unlock()

	q.wg.Wait()
}
