package viewmodel

import (
	"context"
	"sync"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

const messagesBuffer = 16

// scope ties the work of a view-model to its lifetime: Close cancels every
// operation still running and waits for it.
type scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	messages chan string
	logger   *types.Logger
}

func newScope(parent context.Context, logger *types.Logger) *scope {
	ctx, cancel := context.WithCancel(parent)
	return &scope{
		ctx:      ctx,
		cancel:   cancel,
		messages: make(chan string, messagesBuffer),
		logger:   logger,
	}
}

func (s *scope) launch(op func(ctx context.Context)) {
	if s.ctx.Err() != nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		op(s.ctx)
	}()
}

// Messages delivers the transient messages shown to the user (snackbar).
func (s *scope) Messages() <-chan string {
	return s.messages
}

// Wait blocks until every launched operation has returned.
func (s *scope) Wait() {
	s.wg.Wait()
}

func (s *scope) Close() {
	s.cancel()
	s.wg.Wait()
}

// post queues a message; when nobody reads them the oldest one is dropped.
func (s *scope) post(msg string) {
	for {
		select {
		case s.messages <- msg:
			return
		default:
		}
		select {
		case <-s.messages:
		default:
		}
	}
}

// fail logs err and turns it into the message shown to the user.
func (s *scope) fail(op string, err error) string {
	msg := errorz.Message(err)
	s.logger.Errorf("%s: %v", op, err)
	s.post(msg)
	return msg
}
