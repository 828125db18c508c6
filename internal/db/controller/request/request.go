// Package request manages the account-opening request lifecycle.
//
// A request is inserted as Pending and resolved exactly once by a director
// action. The only concurrency guard is the conditional update predicate on
// the status column: when two resolutions race, at most one affects the row
// and the loser is told the request was not found or already processed.
package request

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/GoBancaUno/GoBancaUno/internal/db/models"
	"github.com/GoBancaUno/GoBancaUno/internal/uniuri"
)

const (
	referenceLen = 12

	pendingGuardPattern = "id = ? AND status = ?"
)

var (
	// ErrRequestNotFound is returned when a request is not found.
	ErrRequestNotFound = errors.New("account request not found")
	// ErrAlreadyResolved is returned when a resolution hits a request that is
	// missing or no longer pending. The two causes are deliberately not
	// distinguished.
	ErrAlreadyResolved = errors.New("account request not found or already processed")
	// ErrEmptyComment is returned when rejecting without a justification.
	ErrEmptyComment = errors.New("rejection comment cannot be empty")
	// ErrArtifactNotFound is returned when a request has no attached document.
	ErrArtifactNotFound = errors.New("no document attached to request")
	// ErrArtifactTaken is returned when attaching to a request that already
	// carries a document or is no longer pending.
	ErrArtifactTaken = errors.New("document can no longer be attached")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create inserts a new request in the Pending state, attributed to the
// advisor's role binding. The caller resolves the client beforehand; this
// function only persists the reference.
func Create(db *gorm.DB, clientID, creatorBindingID uint64, comment string) (*models.AccountRequest, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	req := &models.AccountRequest{
		Reference:      uniuri.NewLen(referenceLen),
		ClientID:       clientID,
		UserRoleID:     creatorBindingID,
		ProductType:    models.DefaultProductType,
		Status:         models.StatusPending,
		AdvisorComment: strings.TrimSpace(comment),
	}

	if result := db.Create(req); result.Error != nil {
		return nil, result.Error
	}

	return req, nil
}

// Attach stores the supporting document on a freshly created request. It only
// succeeds while the request is pending and carries no document yet; later
// replacement is not supported.
func Attach(db *gorm.DB, id uint64, artifact []byte, contentType string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.AccountRequest{}).
		Where("id = ? AND status = ? AND artifact IS NULL", id, models.StatusPending).
		Updates(map[string]interface{}{
			"artifact":      artifact,
			"artifact_type": contentType,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArtifactTaken
	}

	return nil
}

// Artifact retrieves the attached document bytes and content-type tag.
func Artifact(db *gorm.DB, id uint64) ([]byte, string, error) {
	if db == nil {
		return nil, "", ErrDBNil
	}

	var req models.AccountRequest
	result := db.Select("artifact", "artifact_type").First(&req, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, "", ErrRequestNotFound
		}
		return nil, "", result.Error
	}

	if len(req.Artifact) == 0 {
		return nil, "", ErrArtifactNotFound
	}

	return req.Artifact, req.ArtifactType, nil
}

// Get retrieves a request by ID with its client and creator binding joined
// for display.
func Get(db *gorm.DB, id uint64) (*models.AccountRequest, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var req models.AccountRequest
	result := db.
		Preload("Client").
		Preload("UserRole.User").
		Preload("UserRole.Role").
		First(&req, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, result.Error
	}

	return &req, nil
}

// List retrieves requests newest-first, optionally filtered by status.
func List(db *gorm.DB, status models.RequestStatus) ([]models.AccountRequest, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.
		Preload("Client").
		Preload("UserRole.User").
		Preload("UserRole.Role").
		Order("created_at DESC, id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.AccountRequest
	if result := query.Find(&requests); result.Error != nil {
		return nil, result.Error
	}

	return requests, nil
}

// ListByBinding retrieves the requests created under a given role binding,
// newest-first. Used for the advisor's own worklist.
func ListByBinding(db *gorm.DB, bindingID uint64) ([]models.AccountRequest, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var requests []models.AccountRequest
	result := db.
		Preload("Client").
		Preload("UserRole.User").
		Where("user_role_id = ?", bindingID).
		Order("created_at DESC, id DESC").
		Find(&requests)
	if result.Error != nil {
		return nil, result.Error
	}

	return requests, nil
}

// Approve transitions a pending request to Approved and stamps the resolution
// time. No comment and no approver identity are recorded. The status
// predicate in the update is the sole concurrency guard; a request that is
// missing or already resolved yields ErrAlreadyResolved.
func Approve(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return resolve(db, id, models.StatusApproved, map[string]interface{}{})
}

// Reject transitions a pending request to Rejected. The justification comment
// is mandatory and validated before any storage is touched.
func Reject(db *gorm.DB, id uint64, comment string) error {
	if db == nil {
		return ErrDBNil
	}

	comment = strings.TrimSpace(comment)
	if comment == "" {
		return ErrEmptyComment
	}

	return resolve(db, id, models.StatusRejected, map[string]interface{}{
		"director_comment": comment,
	})
}

// resolve performs the single guarded update shared by Approve and Reject.
func resolve(db *gorm.DB, id uint64, status models.RequestStatus, assignments map[string]interface{}) error {
	now := time.Now()
	assignments["status"] = status
	assignments["resolved_at"] = &now

	result := db.Model(&models.AccountRequest{}).
		Where(pendingGuardPattern, id, models.StatusPending).
		Updates(assignments)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyResolved
	}

	return nil
}

// Delete removes a request outright. This is an administrative escape hatch,
// not part of the lifecycle; resolved requests stay in place otherwise.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.AccountRequest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}
