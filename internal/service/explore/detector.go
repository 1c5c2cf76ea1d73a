package explore

import (
	"context"

	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/repository"
)

// detectMatch runs after actor's like on target is written inside tx. If
// target already likes actor the pair gets its match (insert-if-absent on
// the normalized pair). created is false when there is no reciprocal like
// or the pair was matched before; an ended match stays ended.
func detectMatch(ctx context.Context, tx *repository.Store, actorID, targetID uint64) (*db.Match, bool, error) {
	reciprocal, err := tx.Swipes.HasLiked(ctx, targetID, actorID)
	if err != nil || !reciprocal {
		return nil, false, err
	}
	return tx.Matches.CreateForPair(ctx, actorID, targetID)
}
