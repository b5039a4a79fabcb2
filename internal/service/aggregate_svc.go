package service

import (
	"context"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/repository"
)

// VoteAggregate is the weighted-vote summary for one request at a
// point in time.
type VoteAggregate struct {
	TotalWeighted float64
	VoterCount    int
	SameRegion    int
	OtherRegion   int
	AverageWeight float64
}

// AggregateService computes weighted vote totals. Read-only; every
// status transition decision re-runs it against current votes.
type AggregateService struct {
	votes *repository.VoteRepo
}

func NewAggregateService(votes *repository.VoteRepo) *AggregateService {
	return &AggregateService{votes: votes}
}

// Aggregate fetches all votes on a request with each voter's region and
// folds them into a weighted total plus a per-region breakdown.
func (s *AggregateService) Aggregate(ctx context.Context, requestID, requestRegion string) (*VoteAggregate, error) {
	voters, err := s.votes.VoterRegions(ctx, requestID)
	if err != nil {
		return nil, err
	}
	agg := AggregateVoters(voters, requestRegion)
	return &agg, nil
}

// AggregateVoters is the pure aggregation step: sum each vote's weight
// and tally same-region vs. cross-region voters. A request with zero
// votes aggregates to zero and can never be threshold-reached.
func AggregateVoters(voters []model.VoterRegion, requestRegion string) VoteAggregate {
	var agg VoteAggregate
	for _, v := range voters {
		w := Weight(v.Region, requestRegion)
		agg.TotalWeighted += w
		if v.Region == requestRegion {
			agg.SameRegion++
		} else {
			agg.OtherRegion++
		}
	}
	// One vote per voter is enforced at the store, so the vote count is
	// the distinct voter count.
	agg.VoterCount = len(voters)
	if agg.VoterCount > 0 {
		agg.AverageWeight = agg.TotalWeighted / float64(agg.VoterCount)
	}
	return agg
}
