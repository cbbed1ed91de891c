package pathanalyzer

import "context"

// AssessTrustworthiness combines direct and indirect trust between
// source and target into a bucketed recommendation, per spec.md §4.2.
func (a *Analyzer) AssessTrustworthiness(ctx context.Context, source, target string) (Assessment, error) {
	assessment := Assessment{Source: source, Target: target}

	var direct *float64
	if score, ok := a.store.GetTrustScore(source, target); ok {
		d := score
		direct = &d
	}

	var indirect *float64
	result, err := a.FindPaths(ctx, source, target)
	if err != nil && result == nil {
		return assessment, err
	}
	if result != nil && result.BestPath != nil {
		v := result.BestPath.CompositeTrust
		indirect = &v
	}

	assessment.DirectTrust = direct
	assessment.IndirectTrust = indirect

	switch {
	case direct != nil && indirect != nil:
		assessment.Overall = (*direct + *indirect) / 2
	case direct != nil:
		assessment.Overall = *direct
	case indirect != nil:
		assessment.Overall = *indirect
	default:
		assessment.Overall = 0
	}

	assessment.Level, assessment.Recommendation = levelFor(assessment.Overall)
	return assessment, err
}
