package signup

// Branch is the candidate-vs-recruiter divergence chosen at the account-type
// step. It decides which profile step closes the wizard.
type Branch string

const (
	BranchUnset     Branch = ""
	BranchCandidate Branch = "candidate"
	BranchRecruiter Branch = "recruiter"
)

func IsValidBranch(b string) bool {
	return b == string(BranchCandidate) || b == string(BranchRecruiter)
}

// State is the full wizard state for one signup session. It is a plain
// serializable value: the controller never hides state elsewhere, so the
// transport layer can round-trip it through any store.
type State struct {
	CurrentStep    int    `json:"currentStep"`
	CompletedSteps []int  `json:"completedSteps"`
	Branch         Branch `json:"branch"`

	BasicInfo *BasicInfo             `json:"basicInfo,omitempty"`
	Candidate *CandidateProfileInput `json:"candidate,omitempty"`
	Recruiter *RecruiterProfileInput `json:"recruiter,omitempty"`
}

func NewState() State {
	return State{CurrentStep: StepBasicInfo}
}

func (s State) Completed(step int) bool {
	for _, c := range s.CompletedSteps {
		if c == step {
			return true
		}
	}
	return false
}

func (s *State) markCompleted(step int) {
	if s.Completed(step) {
		return
	}
	s.CompletedSteps = append(s.CompletedSteps, step)
}

func (s *State) clearCompletedFrom(step int) {
	var kept []int
	for _, c := range s.CompletedSteps {
		if c < step {
			kept = append(kept, c)
		}
	}
	s.CompletedSteps = kept
}
