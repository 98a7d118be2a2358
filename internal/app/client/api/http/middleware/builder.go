package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container собирает мидлвари для группы операций. Общие мидлвари
// попадают в каждую группу и выполняются первыми.
type Container struct {
	common huma.Middlewares
	group  huma.Middlewares
}

// NewContainer создает контейнер с общими мидлварями
func NewContainer(common ...func(ctx huma.Context, next func(huma.Context))) *Container {
	return &Container{common: common}
}

// Add добавляет мидлварь в текущую группу
func (mc *Container) Add(middleware func(ctx huma.Context, next func(huma.Context))) *Container {
	mc.group = append(mc.group, middleware)
	return mc
}

// GetAllAndClear возвращает общие мидлвари и мидлвари группы, затем начинает новую группу
func (mc *Container) GetAllAndClear() huma.Middlewares {
	result := make(huma.Middlewares, 0, len(mc.common)+len(mc.group))
	result = append(result, mc.common...)
	result = append(result, mc.group...)
	mc.group = nil
	return result
}
