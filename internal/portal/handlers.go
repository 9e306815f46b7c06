package portal

import (
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/cgmportal/handler"
	"github.com/dmitrymomot/cgmportal/internal/store"
	"github.com/dmitrymomot/cgmportal/pkg/dexa"
	"github.com/dmitrymomot/cgmportal/pkg/file"
	"github.com/dmitrymomot/cgmportal/pkg/logger"
	"github.com/dmitrymomot/cgmportal/pkg/targets"
	"github.com/dmitrymomot/cgmportal/pkg/toast"
	"github.com/dmitrymomot/cgmportal/pkg/validator"
)

type (
	uploadRequest struct {
		File *multipart.FileHeader `file:"file"`
	}
	dismissRequest struct {
		ID string `path:"id"`
	}
	modalRequest struct {
		Name string `path:"name"`
	}
	classifyRequest struct {
		Metric string   `query:"metric"`
		Value  *float64 `query:"value"`
	}
)

// index renders the page. A page load is a new browser document, so the
// session's mirror starts empty again.
func (p *Portal) index(ctx handler.Context, _ struct{}) handler.Response {
	return p.page(ctx, state(ctx))
}

func (p *Portal) page(ctx handler.Context, st *State) handler.Response {
	st.ResetDocument(ctx)

	uploads, err := p.store.ListUploads(ctx, st.ID, p.cfg.RecentUploads)
	if err != nil {
		return handler.Error(err)
	}
	labs, err := p.labs(ctx, st)
	if err != nil {
		return handler.Error(err)
	}

	return handler.Templ(pageView(pageData{
		AppName: p.cfg.AppName,
		Uploads: uploads,
		Fields:  dexa.Initialize(labs, p.now(), nil),
	}))
}

// events streams the session's notification patches. The snapshot first
// restores what the page should currently show.
func (p *Portal) events(ctx handler.Context, _ struct{}) handler.Response {
	st := state(ctx)
	return handler.SSE(func(stream handler.StreamContext) error {
		sub, snapshot := st.Attach(stream)
		defer sub.Close()

		for _, patch := range snapshot {
			if err := sendPatch(stream, patch); err != nil {
				return err
			}
		}
		for {
			select {
			case <-stream.Done():
				return nil
			case patch, ok := <-sub.Patches():
				if !ok {
					return nil
				}
				if err := sendPatch(stream, patch); err != nil {
					return err
				}
			}
		}
	})
}

func sendPatch(stream handler.StreamContext, patch toast.Patch) error {
	switch patch.Mode {
	case toast.ModeRemove:
		return stream.RemoveElements(patch.Selector)
	default:
		return stream.SendElements(patch.Elements,
			handler.WithTarget(patch.Selector),
			handler.WithPatchMode(handler.PatchAppend),
		)
	}
}

// upload stores a CGM export and records it for the session. Every
// failure reaches the user as an error notification.
func (p *Portal) upload(ctx handler.Context, req uploadRequest) handler.Response {
	st := state(ctx)
	res, err := p.uploads.Allow(ctx, st.ID)
	if err != nil {
		// A broken limiter store must not block uploads.
		p.log.WarnContext(ctx, "upload rate limit unavailable", logger.Error(err))
	} else if !res.Allowed {
		wait := res.RetryAfter(p.now()).Round(time.Second)
		return handler.Error(handler.NewPublicError(http.StatusTooManyRequests,
			fmt.Sprintf("Too many uploads, try again in %s", wait), nil))
	}
	if req.File == nil {
		return handler.Error(handler.NewPublicError(http.StatusBadRequest, "Choose a file to upload", file.ErrNilFileHeader))
	}
	if err := file.ValidateExport(req.File, p.cfg.Storage.MaxBytes, p.cfg.Storage.AllowedExtensions); err != nil {
		return handler.Error(p.uploadError(err))
	}

	id := p.newID()
	stored, err := p.storage.Save(ctx, req.File, file.Key(st.ID, id, req.File.Filename))
	if err != nil {
		return handler.Error(p.uploadError(err))
	}

	u := store.Upload{
		ID:          id,
		SessionID:   st.ID,
		Filename:    stored.Filename,
		StoragePath: stored.Key,
		URL:         stored.URL,
		Size:        stored.Size,
		MIMEType:    stored.MIMEType,
		CreatedAt:   p.now().UTC(),
	}
	if err := p.store.CreateUpload(ctx, u); err != nil {
		if derr := p.storage.Delete(ctx, stored.Key); derr != nil {
			p.log.WarnContext(ctx, "failed to remove orphaned upload",
				logger.UploadID(id),
				logger.Error(derr),
			)
		}
		return handler.Error(handler.NewPublicError(http.StatusInternalServerError, "The upload could not be saved", err))
	}
	st.SetLastUpload(u)

	p.log.InfoContext(ctx, "upload stored",
		logger.UploadID(u.ID),
		logger.Filename(u.Filename),
		logger.Component("upload"),
	)
	st.Notify(ctx, "Upload complete: "+u.Filename, toast.SeveritySuccess)

	uploads, err := p.store.ListUploads(ctx, st.ID, p.cfg.RecentUploads)
	if err != nil {
		p.log.WarnContext(ctx, "failed to list uploads", logger.Error(err))
		uploads = []store.Upload{u}
	}
	return handler.Templ(uploadSummaryView(uploads))
}

func (p *Portal) uploadError(err error) error {
	switch {
	case errors.Is(err, file.ErrEmptyFile):
		return handler.NewPublicError(http.StatusBadRequest, "The file is empty", err)
	case errors.Is(err, file.ErrFileTooLarge):
		return handler.NewPublicError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("The file is larger than %s", formatSize(p.cfg.Storage.MaxBytes)), err)
	case errors.Is(err, file.ErrExtensionNotAllowed):
		return handler.NewPublicError(http.StatusUnsupportedMediaType,
			"Unsupported file type. Accepted: "+strings.Join(p.cfg.Storage.AllowedExtensions, ", "), err)
	case errors.Is(err, file.ErrServiceUnavailable), errors.Is(err, file.ErrOperationTimeout):
		return handler.NewPublicError(http.StatusServiceUnavailable, "Storage is unavailable, try again shortly", err)
	default:
		return handler.NewPublicError(http.StatusInternalServerError, "The upload failed", err)
	}
}

// dismiss handles the notification's close control. Unknown or stale ids
// are ignored.
func (p *Portal) dismiss(ctx handler.Context, req dismissRequest) handler.Response {
	state(ctx).Toasts.Dismiss(ctx, req.ID)
	return handler.Empty()
}

type modal struct {
	title string
	body  func(p *Portal, ctx handler.Context, st *State) (func(b *strings.Builder), error)
}

func (p *Portal) registerModals() map[string]modal {
	return map[string]modal{
		"upload-help": {
			title: "Exporting CGM data",
			body: func(p *Portal, _ handler.Context, _ *State) (func(b *strings.Builder), error) {
				return uploadHelpBody(p.cfg.Storage.AllowedExtensions), nil
			},
		},
		"targets": {
			title: "Target ranges",
			body: func(p *Portal, _ handler.Context, _ *State) (func(b *strings.Builder), error) {
				return targetsBody(p.targets), nil
			},
		},
		"dexa": {
			title: "DEXA lab values",
			body: func(p *Portal, ctx handler.Context, st *State) (func(b *strings.Builder), error) {
				labs, err := p.labs(ctx, st)
				if err != nil {
					return nil, err
				}
				return dexaBody(dexa.Initialize(labs, p.now(), nil)), nil
			},
		},
	}
}

func (p *Portal) openModal(ctx handler.Context, req modalRequest) handler.Response {
	st := state(ctx)
	m, ok := p.modals[req.Name]
	if !ok {
		return handler.Error(handler.ErrNotFound)
	}
	body, err := m.body(p, ctx, st)
	if err != nil {
		return handler.Error(err)
	}
	st.SetModal(req.Name)
	p.log.DebugContext(ctx, "modal opened", logger.Modal(req.Name))
	return handler.Templ(modalRootView(modalView(req.Name, m.title, body)))
}

func (p *Portal) closeModal(ctx handler.Context, _ struct{}) handler.Response {
	state(ctx).SetModal("")
	return handler.Templ(modalRootView(nil))
}

// labs returns the session's lab values, loading saved ones on first use.
func (p *Portal) labs(ctx handler.Context, st *State) (dexa.Inputs, error) {
	if in, ok := st.Labs(); ok {
		return in, nil
	}
	in, err := p.store.GetLabs(ctx, st.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return dexa.Inputs{}, nil
	case err != nil:
		return dexa.Inputs{}, err
	}
	st.SetLabs(in)
	return in, nil
}

// dexaForm initializes the lab inputs. A plain navigation gets the page.
func (p *Portal) dexaForm(ctx handler.Context, _ struct{}) handler.Response {
	st := state(ctx)
	if !handler.IsDataStar(ctx.Request()) {
		return p.page(ctx, st)
	}
	labs, err := p.labs(ctx, st)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(dexaFormView(dexa.Initialize(labs, p.now(), nil)))
}

// saveDexa validates and saves the lab inputs. Invalid input re-renders the
// form with the messages next to the fields.
func (p *Portal) saveDexa(ctx handler.Context, in dexa.Inputs) handler.Response {
	st := state(ctx)
	now := p.now()

	if in.IsZero() {
		return handler.Error(handler.NewPublicError(http.StatusUnprocessableEntity, "Enter at least one lab value", nil))
	}

	if err := in.Validate(now); err != nil {
		verrs := validator.ExtractValidationErrors(err)
		if verrs == nil {
			return handler.Error(err)
		}
		errs := make(map[string]string, len(verrs))
		for _, field := range verrs.Fields() {
			errs[field] = verrs.Get(field)[0]
		}
		fields := dexa.Initialize(in, now, errs)
		st.Notify(ctx, firstFieldError(fields, verrs.First()), toast.SeverityError)
		return handler.Templ(dexaFormView(fields))
	}

	if err := p.store.SaveLabs(ctx, st.ID, in); err != nil {
		return handler.Error(handler.NewPublicError(http.StatusInternalServerError, "Lab values could not be saved", err))
	}
	st.SetLabs(in)
	st.Notify(ctx, "Lab values saved", toast.SeveritySuccess)
	return handler.Templ(dexaFormView(dexa.Initialize(in, now, nil)))
}

// firstFieldError phrases a validation failure with the field's label.
func firstFieldError(fields []dexa.Field, e validator.ValidationError) string {
	for _, f := range fields {
		if f.Name == e.Field {
			return f.Label + " " + e.Message
		}
	}
	return e.Text()
}

func (p *Portal) targetTable(_ handler.Context, _ struct{}) handler.Response {
	return handler.JSON(p.targets)
}

type classification struct {
	Metric targets.Metric `json:"metric"`
	Value  float64        `json:"value"`
	Tier   targets.Tier   `json:"tier"`
	Unit   string         `json:"unit,omitempty"`
}

func (p *Portal) classify(_ handler.Context, req classifyRequest) handler.Response {
	if req.Metric == "" || req.Value == nil {
		return handler.Error(handler.NewPublicError(http.StatusBadRequest, "metric and value are required", nil))
	}
	if math.IsNaN(*req.Value) || math.IsInf(*req.Value, 0) {
		return handler.Error(handler.NewPublicError(http.StatusBadRequest, "value must be a finite number", nil))
	}
	metric := targets.Metric(req.Metric)
	target, err := p.targets.Lookup(metric)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(classification{
		Metric: metric,
		Value:  *req.Value,
		Tier:   target.Classify(*req.Value),
		Unit:   target.Unit,
	})
}

func (p *Portal) recentUploads(ctx handler.Context, _ struct{}) handler.Response {
	st := state(ctx)
	uploads, err := p.store.ListUploads(ctx, st.ID, p.cfg.RecentUploads)
	if err != nil {
		return handler.Error(err)
	}
	if uploads == nil {
		uploads = []store.Upload{}
	}
	return handler.JSON(uploads, handler.WithJSONMeta(map[string]any{"count": len(uploads)}))
}
