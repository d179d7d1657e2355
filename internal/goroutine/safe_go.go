package goroutine

import (
	"context"
	"runtime/debug"
	"sync"
)

// Logger интерфейс для логирования ошибок
type Logger interface {
	Errorf(format string, args ...interface{})
}

// Group запускает фоновые задачи с обработкой panic и позволяет дождаться их завершения.
type Group struct {
	logger Logger
	wg     sync.WaitGroup
}

// NewGroup создает новую группу
func NewGroup(logger Logger) *Group {
	return &Group{logger: logger}
}

// Go запускает горутину с обработкой panic
func (g *Group) Go(fn func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				g.logger.Errorf("Panic in goroutine: %v\nStack trace:\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}

// GoWithContext запускает горутину с контекстом, отвязанным от отмены родителя.
// Значения контекста (request id и т.п.) сохраняются.
func (g *Group) GoWithContext(ctx context.Context, fn func(context.Context)) {
	detached := context.WithoutCancel(ctx)
	g.Go(func() { fn(detached) })
}

// Wait блокируется, пока все запущенные задачи не завершатся.
func (g *Group) Wait() {
	g.wg.Wait()
}
