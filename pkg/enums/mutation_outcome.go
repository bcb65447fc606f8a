package enums

// MutationOutcome reports what an update or delete actually did.
type MutationOutcome string

const (
	MutationOutcomeApplied   MutationOutcome = "applied"
	MutationOutcomeNotFound  MutationOutcome = "not_found"
	MutationOutcomeNotOwner  MutationOutcome = "not_owner"
	MutationOutcomeProtected MutationOutcome = "protected"
)

// Applied reports whether the mutation changed stored state.
func (m MutationOutcome) Applied() bool {
	return m == MutationOutcomeApplied
}

func (m MutationOutcome) String() string {
	return string(m)
}
