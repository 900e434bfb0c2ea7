package service

import (
	"errors"

	"github.com/Prograto/BookReviewsPlatform/internal/model"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

// authorize is the single ownership/authorship predicate: mutation of a
// record is allowed only to the principal whose id is stored on it.
func authorize(p model.Principal, ownerID string) error {
	if p.ID == "" || p.ID != ownerID {
		return ErrForbidden
	}
	return nil
}
