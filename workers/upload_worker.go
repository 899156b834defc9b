package workers

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/omegonstudio/fotospatagonia-backend/media"
	"github.com/omegonstudio/fotospatagonia-backend/models"
	"github.com/omegonstudio/fotospatagonia-backend/realtime"
	"github.com/omegonstudio/fotospatagonia-backend/repository"
	"github.com/omegonstudio/fotospatagonia-backend/uploads"
	"github.com/omegonstudio/fotospatagonia-backend/utils"
)

// UploadFile is one file of a batch, already spooled to a temp path by
// the upload handler.
type UploadFile struct {
	Name     string
	TempPath string
}

// UploadBatch is one tracked upload job: a set of files destined for a
// photo session.
type UploadBatch struct {
	JobID          string
	SessionID      uint
	PhotographerID uint
	Price          float64
	Files          []UploadFile
}

// UploadProcessor processes upload batches on a fixed worker pool and
// reports lifecycle transitions to the job tracker.
type UploadProcessor struct {
	JobQueue  chan UploadBatch
	Store     media.Store
	Processor *media.Processor
	PhotoRepo repository.PhotoRepositoryInterface
	Tracker   *uploads.Store
	Hub       *realtime.Hub
	Wg        sync.WaitGroup
	StopChan  chan struct{}
}

func NewUploadProcessor(store media.Store, processor *media.Processor, photoRepo repository.PhotoRepositoryInterface, tracker *uploads.Store, hub *realtime.Hub, queueSize, numWorkers int) *UploadProcessor {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	proc := &UploadProcessor{
		JobQueue:  make(chan UploadBatch, queueSize),
		Store:     store,
		Processor: processor,
		PhotoRepo: photoRepo,
		Tracker:   tracker,
		Hub:       hub,
		StopChan:  make(chan struct{}),
	}
	proc.Wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go proc.worker(i)
	}
	log.Printf("Started %d upload worker(s) with queue size %d", numWorkers, queueSize)
	return proc
}

// QueueBatch enqueues a batch for processing. Returns false when the
// queue is full; the caller reports the failure on the tracker.
func (up *UploadProcessor) QueueBatch(batch UploadBatch) bool {
	select {
	case up.JobQueue <- batch:
		log.Printf("Queued upload batch %s (%d files) for session %d", batch.JobID, len(batch.Files), batch.SessionID)
		return true
	default:
		log.Printf("WARNING: Upload queue full. Failed to queue batch %s", batch.JobID)
		return false
	}
}

func (up *UploadProcessor) Stop() {
	log.Println("Stopping upload workers...")
	close(up.StopChan)
	up.Wg.Wait()
	log.Println("All upload workers stopped")
}

func (up *UploadProcessor) worker(id int) {
	defer up.Wg.Done()

	log.Printf("Upload worker %d started", id)
	for {
		select {
		case batch, ok := <-up.JobQueue:
			if !ok {
				log.Printf("Upload worker %d stopping: Job queue closed", id)
				return
			}
			up.processBatch(id, batch)
		case <-up.StopChan:
			log.Printf("Upload worker %d stopping: Stop signal received", id)
			return
		}
	}
}

func (up *UploadProcessor) processBatch(workerID int, batch UploadBatch) {
	total := len(batch.Files)
	log.Printf("Worker %d: Processing upload batch %s (%d files)", workerID, batch.JobID, total)

	up.Tracker.UpdateProgress(batch.JobID, 0)
	up.notify(batch.JobID)

	var failed []uploads.FailedFile
	for i, file := range batch.Files {
		if err := up.processFile(batch, file); err != nil {
			log.Printf("Worker %d: ERROR processing %s in batch %s: %v", workerID, file.Name, batch.JobID, err)
			failed = append(failed, classifyFailure(file.Name, err))
		}
		os.Remove(file.TempPath)

		if total > 0 {
			up.Tracker.UpdateProgress(batch.JobID, (i+1)*100/total)
			up.notify(batch.JobID)
		}
	}

	FinishBatch(up.Tracker, batch.JobID, total, failed)
	up.notify(batch.JobID)
	log.Printf("Worker %d: Finished batch %s (%d ok, %d failed)", workerID, batch.JobID, total-len(failed), len(failed))
}

// processFile stores the original, derives the public renditions and
// creates the photo record.
func (up *UploadProcessor) processFile(batch UploadBatch, file UploadFile) error {
	if !utils.IsRasterImage(file.Name) {
		return fmt.Errorf("%w: %s", errUnsupportedFormat, filepath.Ext(file.Name))
	}

	src, err := os.Open(file.TempPath)
	if err != nil {
		return fmt.Errorf("%w: %v", errStorage, err)
	}

	assetUUID, uuidErr := uuid.NewRandom()
	if uuidErr != nil {
		src.Close()
		return fmt.Errorf("%w: %v", errStorage, uuidErr)
	}
	originalName := assetUUID.String() + strings.ToLower(filepath.Ext(file.Name))

	originalRel, err := up.Store.Save(media.AssetTypeOriginal, originalName, src)
	src.Close()
	if err != nil {
		return fmt.Errorf("%w: %v", errStorage, err)
	}

	watermarkRel, err := up.Processor.GenerateWatermarked(file.TempPath)
	if err != nil {
		up.Store.Delete(originalRel)
		return fmt.Errorf("%w: %v", errProcessing, err)
	}

	thumbRel, err := up.Processor.GenerateThumbnail(file.TempPath)
	if err != nil {
		up.Store.Delete(originalRel)
		up.Store.Delete(watermarkRel)
		return fmt.Errorf("%w: %v", errProcessing, err)
	}

	photo := &models.Photo{
		Filename:       file.Name,
		Price:          batch.Price,
		URL:            originalRel,
		WatermarkURL:   watermarkRel,
		ThumbnailURL:   &thumbRel,
		PhotographerID: batch.PhotographerID,
		SessionID:      batch.SessionID,
	}

	// EXIF extraction is best-effort; a photo without metadata still sells
	if meta, metaErr := media.ExtractMetadata(file.TempPath); metaErr == nil && meta != nil {
		photo.Width = meta.Width
		photo.Height = meta.Height
		photo.CameraMake = meta.CameraMake
		photo.CameraModel = meta.CameraModel
		photo.Aperture = meta.Aperture
		photo.ShutterSpeed = meta.ShutterSpeed
		photo.ISO = meta.ISO
		photo.FocalLength = meta.FocalLength
		photo.TakenAt = meta.TakenAt
	}

	if err := up.PhotoRepo.Create(photo); err != nil {
		up.Store.Delete(originalRel)
		up.Store.Delete(watermarkRel)
		up.Store.Delete(thumbRel)
		return fmt.Errorf("%w: %v", errDatabase, err)
	}

	return nil
}

func (up *UploadProcessor) notify(jobID string) {
	if up.Hub == nil {
		return
	}
	job, ok := up.Tracker.Get(jobID)
	if !ok {
		// removed from the UI while the batch was in flight; nothing to report
		return
	}
	up.Hub.Broadcast(realtime.Event{
		Type:     "job_update",
		JobID:    job.ID,
		Status:   string(job.Status),
		Progress: job.Progress,
		Error:    job.Error,
	})
}
