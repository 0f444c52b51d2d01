package dictionary

// Nuance dimensions used by the default dictionary. The set is open:
// term entries may declare other dimensions at load time, but only
// dimensions listed in NuanceTriggers contribute score bonuses.
const (
	NuanceEconomicImpact      = "economic_impact"
	NuanceGovernmentRole      = "government_role"
	NuanceIndividualFreedom   = "individual_freedom"
	NuanceEnvironmentalImpact = "environmental_impact"
	NuancePublicSafety        = "public_safety"
)

var nuanceTriggers = map[string][]string{
	NuanceEconomicImpact: {
		"hard earned money",
		"cost of living",
		"family budget",
		"paycheck",
		"pocketbook",
		"make ends meet",
	},
	NuanceGovernmentRole: {
		"government program",
		"government should",
		"public option",
		"federal government",
		"government out of",
	},
	NuanceIndividualFreedom: {
		"personal choice",
		"individual rights",
		"my rights",
		"leave me alone",
		"none of the government s business",
	},
	NuanceEnvironmentalImpact: {
		"clean air",
		"clean water",
		"our planet",
		"future generations",
		"our children s future",
	},
	NuancePublicSafety: {
		"keep us safe",
		"safe neighborhoods",
		"law and order",
		"keep our communities safe",
	},
}

// NuanceTriggers returns the auxiliary trigger phrases per nuance
// dimension. Phrases are stored pre-normalized (lowercase, no
// punctuation) to match normalized input directly.
func NuanceTriggers() map[string][]string {
	return nuanceTriggers
}
