// Package resolve turns raw metadata records into resolved entities: names
// are normalized and deduplicated, restrictions derived, and risk exposure
// distributions classified. Relationship ids are recorded but not followed;
// package link does that once every kind is resolved.
//
// Key functions:
//   - Resolver.Causes, RiskFactors, Sequelae, Etiologies, Covariates, CoverageGaps
//   - CauseRestrictions, RiskRestrictions
//   - ClassifyDistribution
//   - AgeTable: age in years to age group ids
package resolve
