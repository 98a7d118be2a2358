package middleware

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
)

func TestContainer_GetAllAndClear(t *testing.T) {
	var calls []string
	mw := func(name string) func(huma.Context, func(huma.Context)) {
		return func(ctx huma.Context, next func(huma.Context)) {
			calls = append(calls, name)
			next(ctx)
		}
	}

	c := NewContainer(mw("logger"))
	c.Add(mw("session"))

	first := c.GetAllAndClear()
	assert.Len(t, first, 2)

	second := c.GetAllAndClear()
	assert.Len(t, second, 1, "общие мидлвари остаются, группа очищена")

	first.Handler(func(huma.Context) { calls = append(calls, "handler") })(nil)
	assert.Equal(t, []string{"logger", "session", "handler"}, calls)
}
