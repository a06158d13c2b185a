package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
)

const deliveryWait = 20 * time.Second

func printResults(w io.Writer, r model.AnswerRecord, e model.Eligibility) {
	fmt.Fprintf(w, "Status: %s\n", service.StatusLabel(e.Verdict))
	switch {
	case e.Reason != "":
		fmt.Fprintf(w, "Reason: %s\n", e.Reason)
	case e.Verdict == model.VerdictEligible:
		fmt.Fprintf(w, "Reason: %s\n", service.EligibleMessage)
	}
	if r.Age != nil {
		fmt.Fprintf(w, "Age: %d\n", *r.Age)
	}
	if bmi, ok := service.RecordBMI(r); ok {
		fmt.Fprintf(w, "BMI: %.1f (%s)\n", bmi, service.ClassifyBMI(bmi))
	}
	switch e.Verdict {
	case model.VerdictEligible:
		fmt.Fprintf(w, "Next: choose a plan with `intake payment --plan %s|%s`\n", service.PlanOneOff, service.PlanSubscription)
	case model.VerdictReview:
		fmt.Fprintln(w, "Next: a member of our health team will be in touch to discuss your options")
	}
}

// reportDelivery waits a bounded time for the relay. The verdict is already
// shown, so a failed or slow send is only reported.
func reportDelivery(ctx context.Context, w io.Writer, d *service.Delivery) {
	if d == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, deliveryWait)
	defer cancel()
	err := d.Wait(ctx)
	switch {
	case err == nil:
		fmt.Fprintln(w, "Submission sent")
	case errors.Is(err, service.ErrRelayDisabled):
		fmt.Fprintln(w, "Submission saved locally (not sent)")
	default:
		fmt.Fprintf(w, "Submission not sent, saved locally: %v\n", err)
	}
}
