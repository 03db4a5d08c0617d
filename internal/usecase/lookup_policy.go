package usecase

import (
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
)

// LookupPolicy decides how an Unreachable collaborator is reported. Either
// way the guard fails closed and nothing is written.
type LookupPolicy struct {
	// UnreachableAsNotFound reports an unreachable collaborator as NotFound
	// instead of ServiceUnavailable.
	UnreachableAsNotFound bool
}

// guardError turns a directory lookup into nil (Found) or the error the
// caller should return. notFoundMsg is used for NotFound, unavailableMsg for
// Unreachable.
func (p LookupPolicy) guardError(lookup domain.Lookup, kind domain.LookupKind, id, notFoundMsg, unavailableMsg string) error {
	switch lookup.Outcome {
	case domain.LookupFound:
		return nil
	case domain.LookupNotFound:
		return apperror.NotFound(notFoundMsg)
	default:
		logger.Log.Warn("Directory lookup unreachable",
			"kind", kind.String(),
			"id", id,
			"error", lookup.Err,
		)
		if p.UnreachableAsNotFound {
			return apperror.NotFound(notFoundMsg)
		}
		return apperror.ServiceUnavailable(unavailableMsg, lookup.Err)
	}
}
