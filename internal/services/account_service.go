package services

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/kkh1902/promptsave-sub001/internal/models"
	"github.com/kkh1902/promptsave-sub001/internal/repositories"
	"github.com/kkh1902/promptsave-sub001/pkg/logger"
)

// IdentityDeleter removes the identity record. *auth.Client satisfies it.
type IdentityDeleter interface {
	DeleteUser(ctx context.Context, uid string) error
}

// Cascade step names as they appear in a DeletionReport
const (
	StepRelational = "relational"
	StepIdentity   = "identity"
)

// StepResult records one cascade step
type StepResult struct {
	Step    string `json:"step"`
	Deleted int64  `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// DeletionReport describes what an account deletion removed
type DeletionReport struct {
	UserID          string                           `json:"user_id"`
	Relational      *repositories.RelationalDeletion `json:"relational,omitempty"`
	Steps           []StepResult                     `json:"steps"`
	IdentityDeleted bool                             `json:"identity_deleted"`
	Complete        bool                             `json:"complete"`
}

// AccountService runs the self-service account deletion cascade
type AccountService struct {
	accounts repositories.AccountRepository
	gallery  repositories.GalleryRepository
	identity IdentityDeleter
	log      logger.Logger
}

func NewAccountService(accounts repositories.AccountRepository, gallery repositories.GalleryRepository, identity IdentityDeleter, log logger.Logger) *AccountService {
	return &AccountService{
		accounts: accounts,
		gallery:  gallery,
		identity: identity,
		log:      log,
	}
}

// DeleteAccount deletes targetUID's data and identity on behalf of sessionUID.
//
// The relational rows (follows, comments, profile) go in one transaction; when it fails nothing
// else runs. Content collections are then cleared one by one, continuing past failures. The
// identity record is removed only when every earlier step succeeded, so a failed cascade can be
// retried with the same request.
func (s *AccountService) DeleteAccount(ctx context.Context, sessionUID, targetUID string) (*DeletionReport, error) {
	if sessionUID == "" {
		return nil, ErrUnauthenticated
	}
	if targetUID == "" || sessionUID != targetUID {
		s.log.Warn("user ", sessionUID, " attempted to delete account ", targetUID)
		return nil, ErrForbidden
	}

	report := &DeletionReport{UserID: targetUID, Steps: []StepResult{}}

	relational, err := s.accounts.DeleteRelationalData(ctx, targetUID)
	if err != nil {
		s.log.Error("account deletion for ", targetUID, " aborted at relational step: ", err)
		report.Steps = append(report.Steps, StepResult{Step: StepRelational, Error: err.Error()})
		return report, fmt.Errorf("%w: %s step: %w", ErrCascadeIncomplete, StepRelational, err)
	}
	report.Relational = relational
	report.Steps = append(report.Steps, StepResult{
		Step:    StepRelational,
		Deleted: relational.Follows + relational.Comments + relational.Profiles,
	})

	var stepErrs []error
	for _, contentType := range models.AllContentTypes() {
		step := contentType.Collection()
		deleted, err := s.gallery.DeleteByOwner(ctx, contentType, targetUID)
		if err != nil {
			s.log.Error("account deletion for ", targetUID, ": ", step, " step failed: ", err)
			report.Steps = append(report.Steps, StepResult{Step: step, Error: err.Error()})
			stepErrs = append(stepErrs, fmt.Errorf("%s step: %w", step, err))
			continue
		}
		report.Steps = append(report.Steps, StepResult{Step: step, Deleted: deleted})
	}

	if len(stepErrs) > 0 {
		s.log.Warn("identity of ", targetUID, " kept because ", len(stepErrs), " content step(s) failed")
		return report, fmt.Errorf("%w: %w", ErrCascadeIncomplete, errors.Join(stepErrs...))
	}

	if err := s.identity.DeleteUser(ctx, targetUID); err != nil && !auth.IsUserNotFound(err) {
		s.log.Error("account deletion for ", targetUID, ": identity step failed: ", err)
		report.Steps = append(report.Steps, StepResult{Step: StepIdentity, Error: err.Error()})
		return report, fmt.Errorf("%w: %s step: %w", ErrCascadeIncomplete, StepIdentity, err)
	}
	report.Steps = append(report.Steps, StepResult{Step: StepIdentity, Deleted: 1})
	report.IdentityDeleted = true
	report.Complete = true

	s.log.Info("account ", targetUID, " deleted")
	return report, nil
}
