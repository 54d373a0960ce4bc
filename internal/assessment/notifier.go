// Package assessment hands trained delegates off to the external assessment
// service. The hand-off is the boundary: scoring and certification live on
// the other side.
package assessment

//go:generate mockgen -source=notifier.go -destination=mocks/mocks.go -package=mocks Notifier

import (
	"context"

	id "tutela/pkg/domain"
)

// Notifier requests an assessment slot for a user who has finished every
// training module.
type Notifier interface {
	RequestAssessment(ctx context.Context, userID id.UserID, orgID id.OrgID) error
}
