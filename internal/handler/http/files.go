package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/service"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/models"
)

// maxUploadMemory bounds how much of a multipart upload is buffered in
// memory before spilling to a temporary file.
const maxUploadMemory = 32 << 20

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		log.Error().Msg("no authenticated user in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		log.Err(err).Msg("invalid multipart body")
		http.Error(w, "invalid multipart body", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Err(err).Msg("missing `file` form field")
		http.Error(w, "missing `file` form field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	isPrivate, _ := strconv.ParseBool(r.FormValue("is_private"))

	upload := models.FileUpload{
		OwnerID:      user.UserID,
		Filename:     header.Filename,
		Data:         file,
		Size:         header.Size,
		IsPrivate:    isPrivate,
		DownloadCode: r.FormValue("download_code"),
	}

	created, err := h.services.FileService.Upload(ctx, upload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTypeNotAllowed):
			log.Err(err).Str("filename", header.Filename).Msg("file type not allowed")
			http.Error(w, service.ErrFileTypeNotAllowed.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidDownloadCode):
			log.Err(err).Msg("invalid download code")
			http.Error(w, service.ErrInvalidDownloadCode.Error(), http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during file upload")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("file_id", created.FileID).Bool("private", created.IsPrivate).Msg("file uploaded")

	utils.WriteJSON(w, models.UploadResponse{FileID: created.FileID, DownloadCode: created.DownloadCode}, http.StatusOK)
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		log.Error().Msg("no authenticated user in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	files, err := h.services.FileService.List(ctx, user.UserID)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Msg("listing files failed")
		http.Error(w, http.StatusText(status), status)
		return
	}

	utils.WriteJSON(w, toFileInfoResponses(files), http.StatusOK)
}

func (h *Handler) fileInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	fileID, err := fileIDFromRequest(r)
	if err != nil {
		log.Err(err).Msg("invalid file id")
		http.Error(w, "invalid file id", http.StatusBadRequest)
		return
	}

	info, err := h.services.FileService.Info(ctx, fileID, callerFromContext(ctx), downloadCodeFromRequest(r))
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Int64("file_id", fileID).Msg("file info denied")
		http.Error(w, http.StatusText(status), status)
		return
	}

	utils.WriteJSON(w, toFileInfoResponse(info), http.StatusOK)
}

func (h *Handler) downloadFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	fileID, err := fileIDFromRequest(r)
	if err != nil {
		log.Err(err).Msg("invalid file id")
		http.Error(w, "invalid file id", http.StatusBadRequest)
		return
	}

	info, body, err := h.services.FileService.Download(ctx, fileID, callerFromContext(ctx), downloadCodeFromRequest(r))
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Int64("file_id", fileID).Msg("file download denied")
		http.Error(w, http.StatusText(status), status)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Filename))
	w.Header().Set("Content-Type", "application/octet-stream")

	if _, err := io.Copy(w, body); err != nil {
		// headers are already gone, all we can do is log
		log.Err(err).Int64("file_id", fileID).Msg("streaming file body failed")
	}
}

func (h *Handler) previewFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	fileID, err := fileIDFromRequest(r)
	if err != nil {
		log.Err(err).Msg("invalid file id")
		http.Error(w, "invalid file id", http.StatusBadRequest)
		return
	}

	rendered, contentType, err := h.services.FileService.Preview(ctx, fileID, callerFromContext(ctx), downloadCodeFromRequest(r))
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Int64("file_id", fileID).Msg("file preview denied")
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(rendered); err != nil {
		log.Err(err).Int64("file_id", fileID).Msg("writing preview body failed")
	}
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	fileID, err := fileIDFromRequest(r)
	if err != nil {
		log.Err(err).Msg("invalid file id")
		http.Error(w, "invalid file id", http.StatusBadRequest)
		return
	}

	if err := h.services.FileService.Delete(ctx, fileID, callerFromContext(ctx)); err != nil {
		status := statusFromError(err)
		log.Err(err).Int64("file_id", fileID).Msg("file delete denied")
		http.Error(w, http.StatusText(status), status)
		return
	}

	log.Debug().Int64("file_id", fileID).Msg("file deleted")

	utils.WriteJSON(w, map[string]string{"detail": "file deleted"}, http.StatusOK)
}

// fileIDFromRequest parses the {fileID} route parameter.
func fileIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "fileID"), 10, 64)
}

// downloadCodeFromRequest extracts the code a caller presents for a shared
// private file. Clients send it as the `download_code` query parameter; a
// form field with the same name is accepted too.
func downloadCodeFromRequest(r *http.Request) string {
	if code := r.URL.Query().Get("download_code"); code != "" {
		return code
	}
	return r.PostFormValue("download_code")
}
