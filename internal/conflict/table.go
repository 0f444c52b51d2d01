package conflict

// Declared is a known tension between two specific policy terms.
type Declared struct {
	TermA       string
	TermB       string
	Reason      string
	Severity    Severity
	Type        Type
	Compromises []string
}

// declaredConflicts is the static pair table. Order of TermA/TermB is
// arbitrary; LookupDeclared checks both orderings.
var declaredConflicts = []Declared{
	{
		TermA:    "environmentalProtection",
		TermB:    "fossilFuelIndustry",
		Reason:   "Protecting the environment conflicts with expanding fossil fuel production",
		Severity: SeverityHigh,
		Type:     TypePolicy,
		Compromises: []string{
			"Support a phased energy transition with retraining for fossil fuel workers",
			"Back stricter emissions standards rather than production bans",
		},
	},
	{
		TermA:    "climateAction",
		TermB:    "fossilFuelIndustry",
		Reason:   "Aggressive climate action conflicts with support for the fossil fuel industry",
		Severity: SeverityHigh,
		Type:     TypePolicy,
		Compromises: []string{
			"Prioritize carbon capture investment in existing energy regions",
		},
	},
	{
		TermA:    "gunRights",
		TermB:    "gunControl",
		Reason:   "Expanding gun rights and tightening gun regulation pull in opposite directions",
		Severity: SeverityHigh,
		Type:     TypeIdeology,
		Compromises: []string{
			"Focus on enforcement of existing law plus voluntary safety programs",
		},
	},
	{
		TermA:    "taxRelief",
		TermB:    "progressiveTaxation",
		Reason:   "Cutting taxes broadly conflicts with raising them on high earners",
		Severity: SeverityMedium,
		Type:     TypeIdeology,
		Compromises: []string{
			"Target cuts to middle-income brackets while closing high-end loopholes",
		},
	},
	{
		TermA:    "taxRelief",
		TermB:    "infrastructureInvestment",
		Reason:   "Lower tax revenue makes large public works spending harder to fund",
		Severity: SeverityMedium,
		Type:     TypeResource,
		Compromises: []string{
			"Fund infrastructure through user fees or public-private partnerships",
		},
	},
	{
		TermA:    "borderSecurity",
		TermB:    "immigrationReform",
		Reason:   "Enforcement-first border policy is in tension with broad legalization",
		Severity: SeverityMedium,
		Type:     TypePolicy,
		Compromises: []string{
			"Pair stronger border enforcement with a pathway for long-term residents",
		},
	},
}

// LookupDeclared finds a declared conflict between two term ids,
// regardless of which order the table stores the pair in.
func LookupDeclared(idA, idB string) (Declared, bool) {
	for _, d := range declaredConflicts {
		if (d.TermA == idA && d.TermB == idB) || (d.TermA == idB && d.TermB == idA) {
			return d, true
		}
	}
	return Declared{}, false
}
