package signup

import "github.com/talenthub/account-service/internal/domain"

// Step payloads. Validation rules live in the struct tags; json tag names
// double as the field keys reported back to the UI.

// BasicInfo is step 1: account identity + credentials.
type BasicInfo struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// AccountType is step 2: the branch selection.
type AccountType struct {
	UserType string `json:"userType" validate:"required,oneof=candidate recruiter"`
}

type AddressInput struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type EducationInput struct {
	Degree      string `json:"degree" validate:"required"`
	Institution string `json:"institution" validate:"required"`
	Year        string `json:"year" validate:"required"`
	Field       string `json:"field" validate:"required"`
}

// CandidateProfileInput is step 3 on the candidate branch.
type CandidateProfileInput struct {
	Skills             []string         `json:"skills" validate:"required,min=1,dive,required"`
	Experience         string           `json:"experience" validate:"required"`
	Education          []EducationInput `json:"education" validate:"required,min=1,dive"`
	ProfileDescription string           `json:"profileDescription" validate:"required,min=50"`
	ProfileDomain      string           `json:"profileDomain" validate:"required"`
	Address            AddressInput     `json:"address"`
	Portfolio          string           `json:"portfolio" validate:"omitempty,url"`
	LinkedIn           string           `json:"linkedin" validate:"omitempty,url"`
	GitHub             string           `json:"github" validate:"omitempty,url"`
}

// RecruiterProfileInput is step 3 on the recruiter branch.
type RecruiterProfileInput struct {
	CompanyName        string       `json:"companyName" validate:"required,min=2"`
	CompanyEmail       string       `json:"companyEmail" validate:"required,email"`
	CompanySize        string       `json:"companySize" validate:"required"`
	Industry           string       `json:"industry" validate:"required"`
	CompanyWebsite     string       `json:"companyWebsite" validate:"omitempty,url"`
	CompanyDescription string       `json:"companyDescription" validate:"required,min=50"`
	JobTitle           string       `json:"jobTitle" validate:"required"`
	Department         string       `json:"department" validate:"required"`
	CompanyAddress     AddressInput `json:"companyAddress"`
	LinkedIn           string       `json:"linkedin" validate:"omitempty,url"`
}

func (a AddressInput) ToDomain() domain.Address {
	return domain.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

func (p CandidateProfileInput) ToDomain(userID string) domain.CandidateProfile {
	edu := make([]domain.Education, 0, len(p.Education))
	for _, e := range p.Education {
		edu = append(edu, domain.Education{
			Degree:      e.Degree,
			Institution: e.Institution,
			Year:        e.Year,
			Field:       e.Field,
		})
	}
	return domain.CandidateProfile{
		UserID:             userID,
		Skills:             p.Skills,
		Experience:         p.Experience,
		Education:          edu,
		ProfileDescription: p.ProfileDescription,
		ProfileDomain:      p.ProfileDomain,
		Address:            p.Address.ToDomain(),
		Portfolio:          p.Portfolio,
		LinkedIn:           p.LinkedIn,
		GitHub:             p.GitHub,
	}
}

func (p RecruiterProfileInput) ToDomain(userID string) domain.RecruiterProfile {
	return domain.RecruiterProfile{
		UserID:             userID,
		CompanyName:        p.CompanyName,
		CompanyEmail:       p.CompanyEmail,
		CompanySize:        p.CompanySize,
		Industry:           p.Industry,
		CompanyWebsite:     p.CompanyWebsite,
		CompanyDescription: p.CompanyDescription,
		JobTitle:           p.JobTitle,
		Department:         p.Department,
		CompanyAddress:     p.CompanyAddress.ToDomain(),
		LinkedIn:           p.LinkedIn,
	}
}
