package db_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/domain"
	"github.com/oggyb/accountadate/internal/testutil"
)

func TestSeedMatchesFollowReciprocalLikes(t *testing.T) {
	for _, seed := range []int64{1, 42} {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			gdb := testutil.NewDB(t)
			require.NoError(t, db.SeedTestData(gdb, 20, seed))

			var likes []db.Swipe
			require.NoError(t, gdb.Where("polarity = ?", domain.PolarityLike).Find(&likes).Error)
			liked := make(map[[2]uint64]bool, len(likes))
			for _, s := range likes {
				liked[[2]uint64{s.ActorID, s.TargetID}] = true
			}

			var matches []db.Match
			require.NoError(t, gdb.Find(&matches).Error)
			require.NotEmpty(t, matches)

			matched := make(map[[2]uint64]bool, len(matches))
			for _, m := range matches {
				assert.True(t, liked[[2]uint64{m.OwnerID, m.CounterpartID}], "match %d without owner like", m.ID)
				assert.True(t, liked[[2]uint64{m.CounterpartID, m.OwnerID}], "match %d without counterpart like", m.ID)
				matched[[2]uint64{m.PairLowID, m.PairHighID}] = true
			}

			for pair := range liked {
				if pair[0] < pair[1] && liked[[2]uint64{pair[1], pair[0]}] {
					assert.True(t, matched[pair], "reciprocal likes %v without match", pair)
				}
			}
		})
	}
}
