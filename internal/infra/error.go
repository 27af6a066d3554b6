package infra

import (
	"errors"
	"log/slog"

	"qr-coupon-server/internal/pkg/errs"
	"qr-coupon-server/internal/pkg/pgconv"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind       RepositoryErrorKind
	Constraint string
	msg        string
	err        error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr classifies err by its SQLSTATE unless a kind is given explicitly
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := KindDBFailure
	code, constraint := pgconv.PgErrorCode(err)
	switch code {
	case pgconv.PgCodeUniqueViolation:
		k = KindDuplicateKey
	case pgconv.PgCodeForeignKeyViolation:
		k = KindForeignKeyViolated
	}
	if len(kind) > 0 {
		k = kind[0]
	}

	if k == KindNotFound {
		slog.Debug("Repository error: "+msg, slog.String("kind", string(k)))
	} else {
		slog.Error("Repository error: "+msg,
			slog.String("kind", string(k)),
			slog.String("constraint", constraint),
			slog.Any("error", err))
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: k, Constraint: constraint, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ViolatedConstraint reports the constraint name of a wrapped unique or FK violation
func ViolatedConstraint(err error) string {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Constraint
	}
	return ""
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
)
