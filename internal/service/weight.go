package service

// Vote weights. Local demand counts fully; cross-region demand still
// contributes at half weight.
const (
	WeightSameRegion  = 1.0
	WeightCrossRegion = 0.5
)

// Weight returns the contribution of one vote given the voter's home
// region and the request's origin region. Region comparison is exact
// and case-sensitive.
func Weight(voterRegion, requestRegion string) float64 {
	if voterRegion == requestRegion {
		return WeightSameRegion
	}
	return WeightCrossRegion
}
