package domain

// Phase is the state of a configuration wizard.
type Phase string

// Wizard phases.
const (
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// Outcome is returned by Wizard.Next. When Next only moves between steps the
// phase is PhaseEditing. After a submission it is PhaseSucceeded with the
// committed Config, or PhaseFailed with the displayed Message.
type Outcome struct {
	Phase   Phase
	Step    int
	Config  SourceConfig
	Message string
}

// Submitted returns true if the outcome is the result of a submission.
func (o Outcome) Submitted() bool {
	return o.Phase == PhaseSucceeded || o.Phase == PhaseFailed
}
