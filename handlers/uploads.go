package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/realtime"
	"github.com/omegonstudio/fotospatagonia-backend/repository"
	"github.com/omegonstudio/fotospatagonia-backend/uploads"
	"github.com/omegonstudio/fotospatagonia-backend/utils"
	"github.com/omegonstudio/fotospatagonia-backend/workers"
)

// maxUploadBatchBytes caps one multipart batch at 2 GiB.
const maxUploadBatchBytes = 2 << 30

type UploadHandler struct {
	Tracker     *uploads.Store
	Processor   *workers.UploadProcessor
	SessionRepo repository.SessionRepositoryInterface
	Hub         *realtime.Hub
}

func NewUploadHandler(tracker *uploads.Store, processor *workers.UploadProcessor, sessionRepo repository.SessionRepositoryInterface, hub *realtime.Hub) *UploadHandler {
	return &UploadHandler{Tracker: tracker, Processor: processor, SessionRepo: sessionRepo, Hub: hub}
}

// CreateBatch accepts a multipart batch, spools the files to disk,
// registers a tracked job and hands the batch to the worker pool.
func (h *UploadHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBatchBytes)
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_multipart", "failed to parse multipart form: "+err.Error())
		return
	}

	sessionID, err := strconv.ParseUint(r.FormValue("session_id"), 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_session", "session_id is required")
		return
	}

	session, err := h.SessionRepo.GetByID(uint(sessionID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "session not found")
			return
		}
		log.Printf("Error fetching session %d for upload: %v", sessionID, err)
		WriteAPIError(w, http.StatusInternalServerError, "fetch_failed", "failed to fetch session")
		return
	}

	price := 0.0
	if raw := r.FormValue("price"); raw != "" {
		price, err = strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			WriteAPIError(w, http.StatusBadRequest, "invalid_price", "price must be a non-negative number")
			return
		}
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		WriteAPIError(w, http.StatusBadRequest, "no_files", "at least one file is required")
		return
	}

	jobID := uuid.NewString()
	var batchFiles []workers.UploadFile
	for _, header := range fileHeaders {
		name := utils.SanitizeFilename(header.Filename)
		if name == "" {
			cleanupTempFiles(batchFiles)
			WriteAPIError(w, http.StatusBadRequest, "invalid_filename", "invalid filename in batch")
			return
		}

		tempPath, err := spoolUpload(header, jobID)
		if err != nil {
			cleanupTempFiles(batchFiles)
			log.Printf("Error spooling upload %s: %v", name, err)
			WriteAPIError(w, http.StatusInternalServerError, "spool_failed", "failed to store uploaded file")
			return
		}
		batchFiles = append(batchFiles, workers.UploadFile{Name: name, TempPath: tempPath})
	}

	title := r.FormValue("title")
	if title == "" {
		title = session.EventName
	}

	h.Tracker.Enqueue(uploads.Job{
		ID:         jobID,
		Title:      title,
		FilesCount: len(batchFiles),
	})

	if !h.Processor.QueueBatch(workers.UploadBatch{
		JobID:          jobID,
		SessionID:      session.ID,
		PhotographerID: session.PhotographerID,
		Price:          price,
		Files:          batchFiles,
	}) {
		cleanupTempFiles(batchFiles)
		h.Tracker.MarkError(jobID, "upload queue is full")
		WriteAPIError(w, http.StatusServiceUnavailable, "queue_full", "upload queue is full, try again later")
		return
	}

	job, _ := h.Tracker.Get(jobID)
	writeJSON(w, http.StatusAccepted, job)
}

// List returns every tracked job in enqueue order.
func (h *UploadHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Tracker.Jobs())
}

func (h *UploadHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job, ok := h.Tracker.Get(jobID)
	if !ok {
		WriteAPIError(w, http.StatusNotFound, "not_found", "upload job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// Delete drops a job from the tracker regardless of its state. A batch
// still in flight keeps running; its remaining updates land nowhere.
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	h.Tracker.Remove(jobID)
	if h.Hub != nil {
		h.Hub.Broadcast(realtime.Event{Type: "job_removed", JobID: jobID})
	}
	w.WriteHeader(http.StatusNoContent)
}

func spoolUpload(header *multipart.FileHeader, jobID string) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", fmt.Sprintf("upload_%s_*", jobID))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func cleanupTempFiles(files []workers.UploadFile) {
	for _, f := range files {
		os.Remove(f.TempPath)
	}
}
