package domain

// Job is the canonical listing shape every screen works with, whatever
// field names the upstream API happened to use.
type Job struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	Salary   string  `json:"salary"`
	Location string  `json:"location"`
	Logo     *string `json:"logo,omitempty"` // nil when the source had none
}

// Clone returns a deep copy; Logo is re-allocated so the copy never shares
// storage with j.
func (j Job) Clone() Job {
	out := j
	if j.Logo != nil {
		l := *j.Logo
		out.Logo = &l
	}
	return out
}

// HasLogo reports whether the source provided a logo value.
func (j Job) HasLogo() bool { return j.Logo != nil }
