package badge

// Predicate names usable by conditional rules. Keeping predicates in a
// fixed table of named pure functions keeps the rule set serializable.
const (
	PredicateMergedPR        = "merged_pr"
	PredicateMergedPR5       = "merged_pr_5"
	PredicateMergedPR10      = "merged_pr_10"
	PredicateMergedPR25      = "merged_pr_25"
	PredicateHasPublication  = "has_publication"
	PredicateCommunityActive = "community_active"
	PredicateAllRounder      = "all_rounder"
)

var predicateTable = map[string]func(Stats) bool{
	PredicateMergedPR:       func(s Stats) bool { return s.MergedPRCount >= 1 },
	PredicateMergedPR5:      func(s Stats) bool { return s.MergedPRCount >= 5 },
	PredicateMergedPR10:     func(s Stats) bool { return s.MergedPRCount >= 10 },
	PredicateMergedPR25:     func(s Stats) bool { return s.MergedPRCount >= 25 },
	PredicateHasPublication: func(s Stats) bool { return s.PublicationCount > 0 },
	PredicateCommunityActive: func(s Stats) bool {
		return s.HasChatRole || s.ChatCount > 0
	},
	PredicateAllRounder: func(s Stats) bool {
		return s.MergedPRCount > 0 &&
			(s.ChatCount > 0 || s.ForumPostCount > 0) &&
			s.PublicationCount > 0
	},
}
