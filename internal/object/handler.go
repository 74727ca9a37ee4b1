package object

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/magiccap/imagehost/internal/install"
	"github.com/magiccap/imagehost/internal/keygen"
	"github.com/magiccap/imagehost/internal/response"
	"github.com/magiccap/imagehost/internal/storage"
	"github.com/magiccap/imagehost/internal/telemetry"
)

// Gate authorizes an upload from its raw Authorization header value.
type Gate interface {
	Authorize(ctx context.Context, rawHeader string) (*install.Installation, error)
}

// Recorder persists bookkeeping rows for stored objects.
type Recorder interface {
	Record(ctx context.Context, up Upload) error
}

// Handler holds the HTTP handlers for the upload/retrieve data path.
type Handler struct {
	gate     Gate
	keys     *keygen.Generator
	store    storage.Storage
	records  Recorder
	reporter telemetry.Reporter
}

// NewHandler creates a new object Handler.
func NewHandler(gate Gate, keys *keygen.Generator, store storage.Storage, records Recorder, reporter telemetry.Reporter) *Handler {
	return &Handler{
		gate:     gate,
		keys:     keys,
		store:    store,
		records:  records,
		reporter: reporter,
	}
}

type uploadResponse struct {
	URL string `json:"url" example:"https://i.magiccap.me/abcdefgh.png"`
}

// Upload godoc
//
//	@Summary		Upload a file
//	@Description	Stores the uploaded file and returns its public URL. The second
//	@Description	token of the Authorization header must be a registered installation ID.
//	@Tags			objects
//	@Accept			mpfd
//	@Produce		json
//	@Param			Authorization	header		string	true	"<scheme> <installation-id>"
//	@Param			data			formData	file	true	"file to store"
//	@Success		200				{object}	uploadResponse
//	@Failure		400				{object}	map[string]string
//	@Failure		500				{object}	map[string]string
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	inst, err := h.gate.Authorize(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		if msg, ok := install.FailureMessage(err); ok {
			response.BadRequest(w, msg)
			return
		}
		h.reporter.CaptureRequest(r, fmt.Errorf("authorize upload: %w", err))
		response.InternalError(w)
		return
	}

	file, header, err := r.FormFile("data")
	if err != nil {
		response.BadRequest(w, "No data found.")
		return
	}
	defer file.Close()

	key := h.keys.Generate(header.Filename)
	contentType := header.Header.Get("Content-Type")

	if err := h.store.Put(r.Context(), key, file, header.Size, contentType); err != nil {
		h.reporter.CaptureRequest(r, fmt.Errorf("store object %q: %w", key, err))
		response.InternalError(w)
		return
	}

	err = h.records.Record(r.Context(), Upload{
		Key:            key,
		InstallationID: inst.ID,
		ContentType:    contentType,
		Size:           header.Size,
	})
	if err != nil {
		// The object is already durable and the URL below is valid, so a
		// bookkeeping failure is an operator problem, not a client error.
		h.reporter.CaptureRequest(r, fmt.Errorf("record upload %q: %w", key, err))
	}

	response.JSON(w, http.StatusOK, uploadResponse{URL: h.store.PublicURL(key)})
}

// Serve godoc
//
//	@Summary	Retrieve a stored file
//	@Tags		objects
//	@Produce	octet-stream
//	@Param		key	path	string	true	"object key"
//	@Success	200
//	@Failure	404	{string}	string	"Not found."
//	@Router		/{key} [get]
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	body, info, err := h.store.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Expected traffic noise, deliberately kept away from the reporter.
			response.NotFound(w)
			return
		}
		h.reporter.CaptureRequest(r, fmt.Errorf("open object %q: %w", key, err))
		response.InternalError(w)
		return
	}
	defer body.Close()

	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	// io.Copy moves one bounded chunk at a time, so a slow client throttles
	// the backend read instead of growing a buffer. A failed write (client
	// gone) ends the loop and the deferred Close releases the backend handle.
	if _, err := io.Copy(w, body); err != nil {
		slog.Debug("stream aborted", "key", key, "error", err)
	}
}
