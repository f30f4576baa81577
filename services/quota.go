package services

import (
	"fmt"

	"tenantnotes/model"
)

// CanCreateNote decides whether a tenant on plan that currently holds
// count notes may create one more. Pro tenants are unlimited; any other
// plan is held to model.FreePlanNoteLimit. It matches repository.AdmitFunc
// so it can run inside the store's exclusive section.
func CanCreateNote(plan model.Plan, count int) error {
	if plan == model.PlanPro {
		return nil
	}
	if count < model.FreePlanNoteLimit {
		return nil
	}
	return fmt.Errorf("%w (%d of %d on the %s plan)", model.ErrQuotaExceeded, count, model.FreePlanNoteLimit, model.PlanFree)
}
