package badge

// Badge is one earned award.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TierRule awards a badge once the total contribution count reaches its
// threshold. Tiers are configured in strictly ascending threshold order and
// only the highest satisfied tier is ever awarded.
type TierRule struct {
	ID          string
	Name        string
	Description string
	Threshold   int
}

// ConditionalRule awards a badge whenever its predicate holds over the
// derived stats. Either Predicate names an entry in the built-in predicate
// table, or Expression is a CEL expression over the stats variables.
// Conditional rules are cumulative.
type ConditionalRule struct {
	ID          string
	Name        string
	Description string
	Predicate   string
	Expression  string
}

// RuleSet is the immutable process-wide badge configuration.
type RuleSet struct {
	Tiers        []TierRule
	Conditionals []ConditionalRule
}

func (r TierRule) badge() Badge {
	return Badge{ID: r.ID, Name: r.Name, Description: r.Description}
}

func (r ConditionalRule) badge() Badge {
	return Badge{ID: r.ID, Name: r.Name, Description: r.Description}
}
