package booking

// OptimisticMutation applies a local state change immediately, runs the
// remote effect, and compensates with the inverse mutation when the effect
// fails. It generalizes the ad hoc apply-then-rollback pattern used for
// cosmetic toggles.
type OptimisticMutation struct {
	Apply  func() error
	Effect func() error
	Revert func() error
}

// Run executes the mutation. The returned error is the effect's error; when
// the effect fails, Revert has already been applied.
func (m OptimisticMutation) Run() error {
	if err := m.Apply(); err != nil {
		return err
	}
	if err := m.Effect(); err != nil {
		if m.Revert != nil {
			// Revert is best-effort compensation for local state only.
			_ = m.Revert()
		}
		return err
	}
	return nil
}
