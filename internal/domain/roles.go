package domain

type Role string

const (
	// Candidates fill in a talent profile and apply to openings
	RoleCandidate Role = "CANDIDATE"
	// Recruiters belong to a company and publish openings
	RoleRecruiter Role = "RECRUITER"
	// Admin users manage accounts: reset passwords, change roles, remove users
	RoleAdmin Role = "ADMIN"
)

// roleRanks doubles as the validity set; unknown roles rank 0.
var roleRanks = map[string]int{
	string(RoleCandidate): 1,
	string(RoleRecruiter): 1,
	string(RoleAdmin):     2,
}

func IsValidRole(r string) bool {
	_, ok := roleRanks[r]
	return ok
}

// RoleRank orders roles by privilege; bigger outranks smaller.
func RoleRank(r string) int {
	return roleRanks[r]
}
