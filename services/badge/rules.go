package badge

// DefaultRules is the Virtuoso badge configuration: total-contribution
// tiers plus skill and shine conditionals.
func DefaultRules() RuleSet {
	return RuleSet{
		Tiers: []TierRule{
			{ID: "virtuoso-copper", Name: "Copper Virtuoso", Description: "1+ Total Contribution", Threshold: 1},
			{ID: "virtuoso-bronze", Name: "Bronze Virtuoso", Description: "5+ Total Contributions", Threshold: 5},
			{ID: "virtuoso-silver", Name: "Silver Virtuoso", Description: "10+ Total Contributions", Threshold: 10},
			{ID: "virtuoso-gold", Name: "Gold Virtuoso", Description: "25+ Total Contributions", Threshold: 25},
			{ID: "virtuoso-platinum", Name: "Platinum Virtuoso", Description: "50+ Total Contributions", Threshold: 50},
			{ID: "virtuoso-diamond", Name: "Diamond Virtuoso", Description: "100+ Total Contributions", Threshold: 100},
			{ID: "virtuoso-rhodium", Name: "Rhodium Virtuoso", Description: "200+ Total Contributions", Threshold: 200},
			{ID: "virtuoso-obsidian", Name: "Obsidian Virtuoso", Description: "300+ Total Contributions", Threshold: 300},
			{ID: "virtuoso-palladium", Name: "Palladium Virtuoso", Description: "400+ Total Contributions", Threshold: 400},
			{ID: "virtuoso-astral", Name: "Astral Virtuoso", Description: "500+ Total Contributions", Threshold: 500},
			{ID: "virtuoso-galactic", Name: "Galactic Virtuoso", Description: "750+ Total Contributions", Threshold: 750},
			{ID: "virtuoso-universal", Name: "Universal Virtuoso", Description: "1000+ Total Contributions", Threshold: 1000},
			{ID: "virtuoso-apex", Name: "Apex Virtuoso", Description: "2000+ Total Contributions", Threshold: 2000},
			{ID: "virtuoso-mythical", Name: "Mythical Virtuoso", Description: "5000+ Total Contributions", Threshold: 5000},
		},
		Conditionals: []ConditionalRule{
			{ID: "skill-apprentice", Name: "Virtuoso Apprentice", Description: "Merged your first Pull Request", Predicate: PredicateMergedPR},
			{ID: "skill-specialist", Name: "Virtuoso Specialist", Description: "Merged 5+ Pull Requests", Predicate: PredicateMergedPR5},
			{ID: "skill-champion", Name: "Virtuoso Champion", Description: "Merged 10+ Pull Requests", Predicate: PredicateMergedPR10},
			{ID: "skill-grandmaster", Name: "Virtuoso Grandmaster", Description: "Merged 25+ Pull Requests", Predicate: PredicateMergedPR25},
			{ID: "shine-radiant", Name: "Radiant Virtuoso", Description: "Shared knowledge via Publications", Predicate: PredicateHasPublication},
			{ID: "community-pillar", Name: "Community Pillar", Description: "Active on Discord (has Contributor role) and Forums", Predicate: PredicateCommunityActive},
			{ID: "scholar", Name: "Scholar", Description: "Published an article", Predicate: PredicateHasPublication},
			{ID: "shine-luminous", Name: "Luminous Virtuoso", Description: "All-rounder: Code, Community, and Publications", Predicate: PredicateAllRounder},
		},
	}
}
