package signup

import (
	"encoding/json"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/talenthub/account-service/internal/domain"
)

// Controller is the wizard state machine. It is pure: every operation takes a
// State and returns the next State, so it can be tested without any store or
// rendering environment. Persistence of the state between requests is the
// Service's job.
type Controller struct {
	v     *validator.Validate
	trans ut.Translator
}

func NewController() (*Controller, error) {
	v, trans, err := newValidator()
	if err != nil {
		return nil, err
	}
	return &Controller{v: v, trans: trans}, nil
}

// SubmitStep validates the payload against the step's schema and, on success,
// merges it into the draft, marks the step complete and advances. On failure
// the state is returned unchanged together with field-level errors.
// Re-submitting an already-completed step overwrites its draft.
func (c *Controller) SubmitStep(st State, step int, payload json.RawMessage) (State, error) {
	def, ok := stepFor(st.Branch, step)
	if !ok {
		return st, domain.ErrStepLocked(strconv.Itoa(step))
	}

	// Cannot skip ahead of validated steps.
	if step > st.CurrentStep && !st.Completed(step-1) {
		return st, domain.ErrStepLocked(strconv.Itoa(step))
	}

	p := def.NewPayload()
	if err := json.Unmarshal(payload, p); err != nil {
		return st, domain.ErrInvalidJSON(err)
	}
	if err := checkPayload(c.v, c.trans, p); err != nil {
		return st, err
	}

	switch data := p.(type) {
	case *BasicInfo:
		st.BasicInfo = data

	case *AccountType:
		branch := Branch(data.UserType)
		if st.Branch != BranchUnset && branch != st.Branch {
			// The branch is fixed once committed. Switching requires an
			// explicit ResetBranch so stale drafts never leak across.
			return st, domain.ErrBranchLocked()
		}
		st.Branch = branch

	case *CandidateProfileInput:
		st.Candidate = data

	case *RecruiterProfileInput:
		st.Recruiter = data
	}

	st.markCompleted(step)
	if next := step + 1; next <= LastStep(st.Branch) {
		st.CurrentStep = next
	} else {
		st.CurrentStep = LastStep(st.Branch)
	}
	return st, nil
}

// GoBack steps backwards. Drafts and completions are untouched.
func (c *Controller) GoBack(st State) State {
	if st.CurrentStep > StepBasicInfo {
		st.CurrentStep--
	}
	return st
}

// GoToStep jumps to a step, permitted only when the target is at or behind
// the current step or its predecessor has been validated. Anything else is a
// no-op on the state.
func (c *Controller) GoToStep(st State, n int) (State, error) {
	if n < StepBasicInfo || n > LastStep(st.Branch) {
		return st, domain.ErrStepLocked(strconv.Itoa(n))
	}
	if n > st.CurrentStep && !st.Completed(n-1) {
		return st, domain.ErrStepLocked(strconv.Itoa(n))
	}
	st.CurrentStep = n
	return st, nil
}

// ResetBranch is the explicit escape hatch for changing the account type. It
// drops the branch and both branch drafts, and rewinds to the account-type
// step. Basic info survives.
func (c *Controller) ResetBranch(st State) State {
	st.Branch = BranchUnset
	st.Candidate = nil
	st.Recruiter = nil
	st.clearCompletedFrom(StepAccountType)
	if st.CurrentStep > StepAccountType {
		st.CurrentStep = StepAccountType
	}
	return st
}

// Submission is the aggregate payload produced at the terminal step: basic
// info, the chosen account type, and only the active branch's profile.
type Submission struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	UserType Branch `json:"userType"`

	Candidate *CandidateProfileInput `json:"candidate,omitempty"`
	Recruiter *RecruiterProfileInput `json:"recruiter,omitempty"`
}

// Finalize assembles the submission. It is callable only when the wizard sits
// at the terminal step of the active branch and that step has validated.
func (c *Controller) Finalize(st State) (Submission, error) {
	if st.Branch == BranchUnset || st.BasicInfo == nil {
		return Submission{}, domain.ErrIncompleteWizard()
	}
	last := LastStep(st.Branch)
	if st.CurrentStep != last || !st.Completed(last) {
		return Submission{}, domain.ErrIncompleteWizard()
	}

	sub := Submission{
		Name:     st.BasicInfo.Name,
		Email:    st.BasicInfo.Email,
		Password: st.BasicInfo.Password,
		UserType: st.Branch,
	}

	switch st.Branch {
	case BranchCandidate:
		if st.Candidate == nil {
			return Submission{}, domain.ErrIncompleteWizard()
		}
		sub.Candidate = st.Candidate
	case BranchRecruiter:
		if st.Recruiter == nil {
			return Submission{}, domain.ErrIncompleteWizard()
		}
		sub.Recruiter = st.Recruiter
	}

	return sub, nil
}
