package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipekit/internal/domain"
	"recipekit/internal/importer"
)

type importOutcome struct {
	result *domain.ImportResult
	err    error
}

// streamImport runs the import in the background and relays its progress as
// server-sent events. The import shares the request context, so a client
// disconnect cancels the batch at the next chunk boundary.
func streamImport(c *gin.Context, svc importer.Service, input domain.RawImportInput) {
	ctx := c.Request.Context()
	progress := make(chan domain.BatchProgress, 8)
	done := make(chan importOutcome, 1)

	go func() {
		res, err := svc.Import(ctx, input, func(p domain.BatchProgress) {
			select {
			case progress <- p:
			case <-ctx.Done():
			}
		})
		done <- importOutcome{result: res, err: err}
	}()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Header().Set("Content-Type", "text/event-stream")

	for {
		select {
		case p := <-progress:
			emit(c, "progress", p)
		case out := <-done:
			drainProgress(c, progress)
			if out.err != nil {
				status, code, msg := MapDomainError(out.err)
				if status >= 500 {
					_ = c.Error(out.err)
				}
				emit(c, "error", APIError{Code: code, Message: msg})
				return
			}
			emit(c, "result", out.result)
			return
		case <-ctx.Done():
			// The import goroutine observes the same context and exits on its own.
			if ctx.Err() == context.Canceled {
				_ = c.Error(domain.ErrCancelled)
			}
			return
		}
	}
}

func drainProgress(c *gin.Context, progress <-chan domain.BatchProgress) {
	for {
		select {
		case p := <-progress:
			emit(c, "progress", p)
		default:
			return
		}
	}
}

func emit(c *gin.Context, event string, data interface{}) {
	c.SSEvent(event, data)
	c.Writer.Flush()
}
