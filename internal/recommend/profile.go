package recommend

// Service branches accepted in a profile.
const (
	BranchArmy          = "army"
	BranchNavy          = "navy"
	BranchAirForce      = "airforce"
	BranchMarines       = "marines"
	BranchCoastGuard    = "coastguard"
	BranchSpaceForce    = "spaceforce"
	BranchNationalGuard = "national_guard"
	BranchReserves      = "reserves"
)

// Branches lists every accepted service branch.
var Branches = []string{
	BranchArmy, BranchNavy, BranchAirForce, BranchMarines,
	BranchCoastGuard, BranchSpaceForce, BranchNationalGuard, BranchReserves,
}

// Profile describes the veteran the catalog is matched against. Every
// field is optional: an unset field means "unknown" and skips the
// corresponding recommendation step entirely. A profile is finalized once
// and replaced wholesale on resubmission, never merged.
type Profile struct {
	HonorableDischarge            bool   `json:"honorableDischarge,omitempty" mapstructure:"honorableDischarge"`
	HasServiceConnectedDisability bool   `json:"hasServiceConnectedDisability,omitempty" mapstructure:"hasServiceConnectedDisability"`
	DisabilityRating              int    `json:"disabilityRating,omitempty" mapstructure:"disabilityRating"`
	ServedAfter911                bool   `json:"servedAfter911,omitempty" mapstructure:"servedAfter911"`
	IsWarTimeVeteran              bool   `json:"isWarTimeVeteran,omitempty" mapstructure:"isWarTimeVeteran"`
	ActiveState                   string `json:"activeState,omitempty" mapstructure:"activeState"`
	IsLowIncome                   bool   `json:"isLowIncome,omitempty" mapstructure:"isLowIncome"`
	Age                           int    `json:"age,omitempty" mapstructure:"age"`
	Branch                        string `json:"branch,omitempty" mapstructure:"branch"`
	YearsOfService                int    `json:"yearsOfService,omitempty" mapstructure:"yearsOfService"`
	EligibleForMedicaid           bool   `json:"eligibleForMedicaid,omitempty" mapstructure:"eligibleForMedicaid"`
}

// ValidBranch reports whether the given branch value is in the accepted set.
func ValidBranch(branch string) bool {
	for _, b := range Branches {
		if b == branch {
			return true
		}
	}
	return false
}
