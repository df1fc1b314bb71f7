package signup

// Step indices. Steps 1 and 2 are shared; step 3 differs by branch.
const (
	StepBasicInfo   = 1
	StepAccountType = 2
	StepProfile     = 3
)

// StepDefinition describes one step of the wizard: its position, which
// branch it belongs to, and a factory for its (tagged) payload type.
type StepDefinition struct {
	Index      int
	Name       string
	Branch     Branch // BranchUnset = shared step
	NewPayload func() any
}

var stepDefs = []StepDefinition{
	{
		Index:      StepBasicInfo,
		Name:       "basic_info",
		NewPayload: func() any { return &BasicInfo{} },
	},
	{
		Index:      StepAccountType,
		Name:       "account_type",
		NewPayload: func() any { return &AccountType{} },
	},
	{
		Index:      StepProfile,
		Name:       "candidate_profile",
		Branch:     BranchCandidate,
		NewPayload: func() any { return &CandidateProfileInput{} },
	},
	{
		Index:      StepProfile,
		Name:       "recruiter_profile",
		Branch:     BranchRecruiter,
		NewPayload: func() any { return &RecruiterProfileInput{} },
	},
}

// Steps returns the ordered step sequence for a branch. Before the branch is
// chosen only the shared steps exist.
func Steps(branch Branch) []StepDefinition {
	out := make([]StepDefinition, 0, 3)
	for _, d := range stepDefs {
		if d.Branch == BranchUnset || d.Branch == branch {
			out = append(out, d)
		}
	}
	return out
}

func stepFor(branch Branch, index int) (StepDefinition, bool) {
	for _, d := range Steps(branch) {
		if d.Index == index {
			return d, true
		}
	}
	return StepDefinition{}, false
}

// LastStep is the terminal step index for a branch. With no branch chosen the
// wizard cannot progress past the account-type step.
func LastStep(branch Branch) int {
	if branch == BranchUnset {
		return StepAccountType
	}
	return StepProfile
}
