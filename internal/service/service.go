// Package service holds the ticket, reference and report workflows that
// sit between the HTTP handlers and the repositories.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/apperror"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
)

// DefaultStatus is assigned to new tickets that name no status.
const DefaultStatus = "Pending"

const statusMissing = "Status name doesn't exist"

var trim = strings.TrimSpace

// clock is swapped in tests.
type clock func() time.Time

// wrap turns an unexpected repository error into a storage error. Errors
// that already carry a kind pass through untouched.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	return apperror.Storage(op, err)
}

// resolve maps a display name to its key. A miss becomes a validation
// error with the given message.
func resolve(ctx context.Context, refs repository.Resolver, kind models.RefKind, name, missing string) (int, error) {
	id, err := refs.Resolve(ctx, kind, name)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, apperror.Validation("%s", missing)
	}
	if err != nil {
		return 0, apperror.Storage("resolve "+kind.String(), err)
	}
	return id, nil
}

func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseDate(field, s string) (time.Time, error) {
	t, err := models.ParseDate(s)
	if err != nil {
		return time.Time{}, apperror.Validation("%s must be a date (YYYY-MM-DD)", field)
	}
	return t, nil
}

// optionalDate parses a clearable date: empty or null clears the column.
func optionalDate(field string, p models.Patch[string]) (models.Patch[time.Time], error) {
	if p.Null || p.Value == "" {
		return models.Null[time.Time](), nil
	}
	t, err := parseDate(field, p.Value)
	if err != nil {
		return models.Patch[time.Time]{}, err
	}
	return models.Some(t), nil
}

// requiredText validates a patched text column that may not be cleared.
func requiredText(field string, p models.Patch[string]) (*string, error) {
	if !p.Set {
		return nil, nil
	}
	v := trim(p.Value)
	if p.Null || v == "" {
		return nil, apperror.Validation("%s must not be empty", field)
	}
	return &v, nil
}
