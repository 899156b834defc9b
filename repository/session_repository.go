package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
)

// SessionRepository handles database operations for PhotoSession entities
type SessionRepository struct {
	DB *gorm.DB
}

// NewSessionRepository creates a new instance of SessionRepository
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// Create creates a new photo session record in the database
func (r *SessionRepository) Create(session *models.PhotoSession) error {
	err := r.DB.Create(session).Error
	if err != nil {
		return fmt.Errorf("failed to create session %s: %w", session.EventName, err)
	}
	return nil
}

// ListAll retrieves all sessions, most recent event first
func (r *SessionRepository) ListAll() ([]models.PhotoSession, error) {
	var sessions []models.PhotoSession
	err := r.DB.Preload("Photographer").Order("event_date DESC").Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// GetByID retrieves a session with its photographer and photos
func (r *SessionRepository) GetByID(id uint) (*models.PhotoSession, error) {
	var session models.PhotoSession
	err := r.DB.Preload("Photographer").Preload("Photos").First(&session, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get session by ID %d: %w", id, err)
	}
	return &session, nil
}

// Update saves the full session record
func (r *SessionRepository) Update(session *models.PhotoSession) error {
	err := r.DB.Save(session).Error
	if err != nil {
		return fmt.Errorf("failed to update session ID %d: %w", session.ID, err)
	}
	return nil
}

// Delete removes a session record
func (r *SessionRepository) Delete(id uint) error {
	result := r.DB.Delete(&models.PhotoSession{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete session ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
