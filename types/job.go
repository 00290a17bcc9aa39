package types

// Job is a single normalized posting from the USAJOBS search API.
// Salary bounds are kept as strings exactly as the upstream API reports them.
type Job struct {
	Title        string `json:"title"`
	Location     string `json:"location"`
	Organization string `json:"organization"`
	ApplyURL     string `json:"applyUrl"`
	SalaryMin    string `json:"salaryMin"`
	SalaryMax    string `json:"salaryMax"`
	SalaryType   string `json:"salaryType"`
}
