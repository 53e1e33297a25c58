package workflow

// VisibleGuard requires the modal to be open
type VisibleGuard struct{}

func (g *VisibleGuard) Name() string {
	return "VisibleGuard"
}

func (g *VisibleGuard) Check(ctx *TransitionContext) GuardResult {
	if ctx.Visible {
		return GuardResult{Passed: true}
	}
	return GuardResult{
		Passed:  false,
		Message: "modal is closed",
	}
}

// HiddenGuard requires the modal to be closed; the post-close reset must
// never rewrite a modal that is on screen
type HiddenGuard struct{}

func (g *HiddenGuard) Name() string {
	return "HiddenGuard"
}

func (g *HiddenGuard) Check(ctx *TransitionContext) GuardResult {
	if !ctx.Visible {
		return GuardResult{Passed: true}
	}
	return GuardResult{
		Passed:  false,
		Message: "modal is open",
	}
}

// ValidDraftGuard blocks leaving the input step while any field has an error
type ValidDraftGuard struct{}

func (g *ValidDraftGuard) Name() string {
	return "ValidDraftGuard"
}

func (g *ValidDraftGuard) Check(ctx *TransitionContext) GuardResult {
	if ctx.Errors.OK() {
		return GuardResult{Passed: true}
	}
	return GuardResult{
		Passed:  false,
		Message: "draft has validation errors",
	}
}

// SnapshotGuard ensures there is a confirmed snapshot to submit
type SnapshotGuard struct{}

func (g *SnapshotGuard) Name() string {
	return "SnapshotGuard"
}

func (g *SnapshotGuard) Check(ctx *TransitionContext) GuardResult {
	if ctx.HasSnapshot {
		return GuardResult{Passed: true}
	}
	return GuardResult{
		Passed:  false,
		Message: "nothing to confirm",
	}
}
