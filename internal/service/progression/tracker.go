// Package progression decides when a learner advances to the next
// curriculum level. After every review the learner's mastered share of
// their current level is recomputed from the permanent stability watermark;
// reaching the level's threshold promotes them exactly one level. Because
// mastery is a watermark rather than a live value, a learner who later
// forgets cards keeps the level.
package progression

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Tracker checks mastery after a review and applies level promotions.
type Tracker interface {
	// CheckAndPromote advances the learner one level if the mastered share
	// of their current level's cards has reached the level's threshold. It
	// reports whether a promotion happened.
	//
	// A learner at the final level is never promoted. A missing profile,
	// missing level configuration, or a level with no cards is logged and
	// reported as no promotion rather than as an error, so review
	// submission never fails over promotion bookkeeping.
	CheckAndPromote(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error)

	// WithTx returns a Tracker whose profile and progress access joins the
	// given transaction, so a promotion commits or rolls back together with
	// the review that triggered it.
	WithTx(tx *sql.Tx) Tracker
}
