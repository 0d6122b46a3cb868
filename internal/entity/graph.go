package entity

// Graph holds the resolved collections of one run. Kinds that were not
// requested are nil.
type Graph struct {
	Sequelae     *Collection[*Sequela]
	Etiologies   *Collection[*Etiology]
	Causes       *Collection[*Cause]
	RiskFactors  *Collection[*RiskFactor]
	Covariates   *Collection[*Covariate]
	CoverageGaps *Collection[*CoverageGap]
}

// Len returns the total number of entities in the graph.
func (g *Graph) Len() int {
	return g.Sequelae.Len() + g.Etiologies.Len() + g.Causes.Len() +
		g.RiskFactors.Len() + g.Covariates.Len() + g.CoverageGaps.Len()
}
