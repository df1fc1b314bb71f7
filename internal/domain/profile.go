package domain

// Education is one entry in a candidate's education history.
type Education struct {
	Degree      string
	Institution string
	Year        string
	Field       string
}

// CandidateProfile holds the talent-side profile collected at signup.
type CandidateProfile struct {
	UserID             string
	Skills             []string
	Experience         string
	Education          []Education
	ProfileDescription string
	ProfileDomain      string
	Address            Address
	Portfolio          string
	LinkedIn           string
	GitHub             string
}

// RecruiterProfile holds the company-side profile collected at signup.
type RecruiterProfile struct {
	UserID             string
	CompanyName        string
	CompanyEmail       string
	CompanySize        string
	Industry           string
	CompanyWebsite     string
	CompanyDescription string
	JobTitle           string
	Department         string
	CompanyAddress     Address
	LinkedIn           string
}
