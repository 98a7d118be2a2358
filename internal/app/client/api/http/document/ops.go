package document

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "documents-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/documents",
		Summary:     "Страница отфильтрованных документов",
		Tags:        []string{"documents"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "documents-create",
		Method:        http.MethodPost,
		Path:          "/api/v1/documents",
		Summary:       "Создать документ",
		Description:   "Без статуса документ получает статус ожидания. После создания список перечитывается с сервиса.",
		Tags:          []string{"documents"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "documents-find",
		Method:      http.MethodGet,
		Path:        "/api/v1/documents/{id}",
		Summary:     "Получить документ",
		Tags:        []string{"documents"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "documents-update",
		Method:      http.MethodPut,
		Path:        "/api/v1/documents/{id}",
		Summary:     "Обновить документ",
		Tags:        []string{"documents"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "documents-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/documents/{id}",
		Summary:     "Удалить документ",
		Tags:        []string{"documents"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) refreshOp() huma.Operation {
	return huma.Operation{
		OperationID: "documents-refresh",
		Method:      http.MethodPost,
		Path:        "/api/v1/documents/refresh",
		Summary:     "Перечитать документы с сервиса",
		Tags:        []string{"documents"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) exportOp() huma.Operation {
	return huma.Operation{
		OperationID: "documents-export",
		Method:      http.MethodGet,
		Path:        "/api/v1/documents/export",
		Summary:     "Выгрузить документы в XLSX",
		Description: "Выгружает документы, прошедшие фильтр, в выбранных колонках.",
		Tags:        []string{"documents", "export"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) enumsOp() huma.Operation {
	return huma.Operation{
		OperationID: "enums",
		Method:      http.MethodGet,
		Path:        "/api/v1/enums",
		Summary:     "Статусы и типы документов",
		Tags:        []string{"enums"},
		Middlewares: h.middleware,
	}
}
