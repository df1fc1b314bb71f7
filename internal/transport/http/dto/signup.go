package dto

import (
	"encoding/json"

	"github.com/talenthub/account-service/internal/application/signup"
	"github.com/talenthub/account-service/internal/domain"
)

// -------- Requests --------

// SubmitStepRequest carries one wizard step: the step index plus the raw
// payload, which the wizard validates against that step's schema.
type SubmitStepRequest struct {
	Step int             `json:"step"`
	Data json.RawMessage `json:"data"`
}

func (r *SubmitStepRequest) Validate() error {
	if r.Step <= 0 {
		return domain.ErrMissingField("step")
	}
	if len(r.Data) == 0 {
		return domain.ErrMissingField("data")
	}
	return nil
}

type GoToStepRequest struct {
	Step int `json:"step"`
}

func (r *GoToStepRequest) Validate() error {
	if r.Step <= 0 {
		return domain.ErrMissingField("step")
	}
	return nil
}

// -------- Responses --------

// StepView describes one step of the wizard sequence.
type StepView struct {
	Step      int    `json:"step"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

// WizardStateView is the client-facing snapshot of a draft. Drafted values
// are echoed back so a returning client can refill its form; the password is
// never part of any draft payload the server returns.
type WizardStateView struct {
	CurrentStep    int        `json:"currentStep"`
	CompletedSteps []int      `json:"completedSteps"`
	UserType       string     `json:"userType,omitempty"`
	Steps          []StepView `json:"steps"`

	BasicInfo *BasicInfoView                `json:"basicInfo,omitempty"`
	Candidate *signup.CandidateProfileInput `json:"candidate,omitempty"`
	Recruiter *signup.RecruiterProfileInput `json:"recruiter,omitempty"`
}

// BasicInfoView omits the password fields held server-side.
type BasicInfoView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func WizardStateViewFrom(st signup.State) WizardStateView {
	view := WizardStateView{
		CurrentStep:    st.CurrentStep,
		CompletedSteps: st.CompletedSteps,
		Candidate:      st.Candidate,
		Recruiter:      st.Recruiter,
	}
	if view.CompletedSteps == nil {
		view.CompletedSteps = []int{}
	}
	if st.Branch != signup.BranchUnset {
		view.UserType = string(st.Branch)
	}
	if st.BasicInfo != nil {
		view.BasicInfo = &BasicInfoView{Name: st.BasicInfo.Name, Email: st.BasicInfo.Email}
	}
	for _, d := range signup.Steps(st.Branch) {
		view.Steps = append(view.Steps, StepView{
			Step:      d.Index,
			Name:      d.Name,
			Completed: st.Completed(d.Index),
			Current:   d.Index == st.CurrentStep,
		})
	}
	return view
}

func StepViewsFrom(defs []signup.StepDefinition, st signup.State) []StepView {
	out := make([]StepView, 0, len(defs))
	for _, d := range defs {
		out = append(out, StepView{
			Step:      d.Index,
			Name:      d.Name,
			Completed: st.Completed(d.Index),
			Current:   d.Index == st.CurrentStep,
		})
	}
	return out
}

// SignupStartData is returned when a wizard session is opened. The token is
// also set as an HttpOnly cookie; the JSON copy serves non-browser clients,
// which resend it in the X-Signup-Session header.
type SignupStartData struct {
	Token string          `json:"token"`
	State WizardStateView `json:"state"`
}

// SignupFinalizeData is returned when the wizard completes: the freshly
// created account plus its first token pair.
type SignupFinalizeData struct {
	User   UserView   `json:"user"`
	Tokens TokensView `json:"tokens"`
}
