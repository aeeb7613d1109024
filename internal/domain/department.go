package domain

// Department is a member of the fixed category set disruptions are filed
// against (infrastructure, it, ...).
type Department struct {
	ID   string
	Name string
}
