package document

import (
	"context"
	"errors"
	"mime"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"doctracker/internal/app/client"
	"doctracker/internal/domain/document"
	"doctracker/internal/domain/export"
	"doctracker/internal/domain/view"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Service - операции клиента, доступные через API просмотра
type Service interface {
	List(ctx context.Context, req client.ListRequest) (view.View, error)
	GetDocument(ctx context.Context, id string) (*document.Record, error)
	CreateDocument(ctx context.Context, f document.Fields) (string, error)
	UpdateDocument(ctx context.Context, id string, f document.Fields) error
	DeleteDocument(ctx context.Context, id string) error
	Refresh(ctx context.Context) (document.Snapshot, error)
	Enums(ctx context.Context) (document.Enums, error)
	Export(ctx context.Context, req client.ExportRequest) (*export.Table, error)
}

type Handler struct {
	service    Service
	formatter  document.Formatter
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service Service, formatter document.Formatter, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		formatter:  formatter,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.exportOp(), h.export)
	huma.Register(api, h.refreshOp(), h.refresh)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.enumsOp(), h.enums)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	v, err := h.service.List(ctx, client.ListRequest{
		Criteria: criteria(input.Search, input.Bucket, input.Status),
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &listOutput{Body: newListResponse(h.formatter, v)}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	rec, err := h.service.GetDocument(ctx, input.ID)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &findOutput{Body: newDocumentBody(h.formatter, *rec)}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	f, err := input.Body.fields("create")
	if err != nil {
		return nil, toHTTPError(err)
	}

	id, err := h.service.CreateDocument(ctx, f)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &createOutput{Body: response{ID: id, Status: "Ok"}}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*output, error) {
	f, err := input.Body.fields("update")
	if err != nil {
		return nil, toHTTPError(err)
	}

	if err := h.service.UpdateDocument(ctx, input.ID, f); err != nil {
		return nil, toHTTPError(err)
	}
	return &output{Body: response{ID: input.ID, Status: "Ok"}}, nil
}

func (h *Handler) delete(ctx context.Context, input *findInput) (*output, error) {
	if err := h.service.DeleteDocument(ctx, input.ID); err != nil {
		return nil, toHTTPError(err)
	}
	return &output{Body: response{ID: input.ID, Status: "Ok"}}, nil
}

func (h *Handler) refresh(ctx context.Context, _ *struct{}) (*refreshOutput, error) {
	snap, err := h.service.Refresh(ctx)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &refreshOutput{Body: refreshResponse{
		Documents: snap.Len(),
		Version:   snap.Version(),
		FetchedAt: snap.FetchedAt(),
	}}, nil
}

func (h *Handler) enums(ctx context.Context, _ *struct{}) (*enumsOutput, error) {
	e, err := h.service.Enums(ctx)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &enumsOutput{Body: e}, nil
}

func (h *Handler) export(ctx context.Context, input *exportInput) (*exportOutput, error) {
	const op = "export"

	req := client.ExportRequest{Criteria: criteria(input.Search, input.Bucket, input.Status)}

	var err error
	if req.From, err = parseOptionalDate(op, "from", input.From); err != nil {
		return nil, toHTTPError(err)
	}
	if req.To, err = parseOptionalDate(op, "to", input.To); err != nil {
		return nil, toHTTPError(err)
	}
	if len(input.Columns) > 0 {
		if req.Columns, err = export.ParseColumns(input.Columns); err != nil {
			return nil, toHTTPError(err)
		}
	}

	table, err := h.service.Export(ctx, req)
	if err != nil {
		return nil, toHTTPError(err)
	}
	data, err := table.Bytes()
	if err != nil {
		h.log.Error("failed to build xlsx", slog.Any("error", err))
		return nil, huma.Error500InternalServerError("failed to build export")
	}

	h.log.Info("export prepared", slog.String("filename", table.Filename), slog.Int("rows", len(table.Rows)))
	return &exportOutput{
		ContentType:        xlsxContentType,
		ContentDisposition: mime.FormatMediaType("attachment", map[string]string{"filename": table.Filename}),
		Body:               data,
	}, nil
}

func criteria(search, bucket, status string) document.Criteria {
	c := document.Criteria{
		SearchText: search,
		Bucket:     document.ParseBucket(bucket),
		Status:     status,
	}
	if c.Status == "" {
		c.Status = document.StatusAll
	}
	return c
}

// toHTTPError переводит ошибку операции в ответ API
func toHTTPError(err error) error {
	var se huma.StatusError
	if errors.As(err, &se) {
		return err
	}

	switch {
	case errors.Is(err, document.ErrValidation):
		fields := document.InvalidFields(err)
		details := make([]error, 0, len(fields))
		for _, f := range fields {
			details = append(details, &huma.ErrorDetail{Location: f, Message: "invalid value"})
		}
		return huma.Error422UnprocessableEntity(err.Error(), details...)
	case errors.Is(err, document.ErrEmptyExport):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, document.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, document.ErrUnauthenticated):
		return huma.Error401Unauthorized(err.Error())
	case errors.Is(err, document.ErrNetwork):
		return huma.Error503ServiceUnavailable(err.Error())
	default:
		return huma.Error502BadGateway(err.Error())
	}
}
