package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
)

const (
	submittedAtLayout = "Monday 2 January 2006 at 15:04"

	defaultDeliveryTimeout = 15 * time.Second
)

var ErrRelayDisabled = errors.New("relay delivery disabled")

// Relay posts a flat label/value mapping to the external email relay and
// reports the HTTP status it answered with.
type Relay interface {
	Send(ctx context.Context, fields map[string]string) (int, error)
}

// Delivery tracks one background relay send.
type Delivery struct {
	done       chan struct{}
	err        error
	httpStatus int
}

func completedDelivery(err error) *Delivery {
	d := &Delivery{done: make(chan struct{}), err: err}
	close(d.done)
	return d
}

func (d *Delivery) Done() <-chan struct{} {
	return d.done
}

// Wait blocks until the send finishes or ctx ends, whichever is first.
func (d *Delivery) Wait(ctx context.Context) error {
	select {
	case <-d.done:
		return d.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HTTPStatus is the relay's answer; zero until the send completes or when it never connected.
func (d *Delivery) HTTPStatus() int {
	select {
	case <-d.done:
		return d.httpStatus
	default:
		return 0
	}
}

// Coordinator writes the backup snapshot and ships the submission to the
// relay. Neither step can fail the questionnaire: problems are logged.
type Coordinator struct {
	DB      *sql.DB
	Relay   Relay
	Source  string
	Logger  *log.Logger
	Timeout time.Duration
}

func (c *Coordinator) Submit(ctx context.Context, snap model.Snapshot) *Delivery {
	logger := c.logger()
	if c.DB != nil {
		if err := SaveBackup(c.DB, snap); err != nil {
			logger.Printf("could not back up submission %s: %v", snap.SessionID, err)
		}
	}
	if c.Relay == nil {
		return completedDelivery(ErrRelayDisabled)
	}

	fields := FormatSubmission(snap, c.Source)
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	d := &Delivery{done: make(chan struct{})}
	// The send outlives the caller's context: results are shown without waiting.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	go func() {
		defer close(d.done)
		defer cancel()
		d.httpStatus, d.err = c.Relay.Send(sendCtx, fields)
		c.record(snap.SessionID, d.httpStatus, d.err)
	}()
	return d
}

func (c *Coordinator) record(sessionID string, httpStatus int, sendErr error) {
	logger := c.logger()
	status := SubmissionSent
	errText := ""
	if sendErr != nil {
		status = SubmissionFailed
		errText = sendErr.Error()
		logger.Printf("form submission error for %s: %v", sessionID, sendErr)
	} else {
		logger.Printf("form submitted successfully for %s", sessionID)
	}
	if c.DB == nil {
		return
	}
	if _, err := RecordSubmissionAttempt(c.DB, model.SubmissionAttempt{
		SessionID:  sessionID,
		Status:     status,
		HTTPStatus: httpStatus,
		Error:      errText,
	}); err != nil {
		logger.Printf("could not log submission attempt for %s: %v", sessionID, err)
	}
}

func (c *Coordinator) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.New(os.Stderr, "intake: ", log.LstdFlags)
}

// FormatSubmission flattens a snapshot into the labels the relay's email
// template expects. Labels are a contract with the relay and must not change.
func FormatSubmission(snap model.Snapshot, source string) map[string]string {
	r := snap.Data
	bmi, hasBMI := RecordBMI(r)

	notes := snap.Reason
	if notes == "" {
		notes = EligibleMessage
	}
	contraception := "N/A"
	if ContraceptionApplies(r) {
		contraception = orDefault(r.ContraceptionAgreement, "Not answered")
	}
	dob := "Not provided"
	if r.DOB != nil {
		dob = fmt.Sprintf("%d/%d/%d", r.DOB.Day, r.DOB.Month, r.DOB.Year)
	}
	age := "Not provided"
	if r.Age != nil {
		age = strconv.Itoa(*r.Age)
	}
	bmiText := "Not calculated"
	if hasBMI {
		bmiText = fmt.Sprintf("%.1f", bmi)
	}

	return map[string]string{
		"_subject": "New GLP-1 Consultation Request - " + r.FullName,

		"Customer Name":     r.FullName,
		"Email":             r.Email,
		"Phone":             r.Phone,
		"Preferred Contact": r.ContactMethod,

		"Eligibility Status": StatusLabel(snap.Eligible),
		"Eligibility Notes":  notes,

		"Weight Loss Reason": labelOrDefault(WeightLossReasons, r.WeightLossReason, "Not selected"),
		"Weight Loss Goal":   labelOrDefault(WeightLossGoals, r.WeightLossGoal, "Not selected"),

		"BMI":                 bmiText,
		"Height (cm)":         formatKgOrCm(r.HeightCm),
		"Current Weight (kg)": formatKgOrCm(r.WeightKg),
		"Highest Weight (kg)": formatKgOrCm(r.HighestWeightKg),
		"Target Weight (kg)":  formatKgOrCm(r.TargetWeightKg),

		"Date of Birth": dob,
		"Age":           age,
		"Sex":           r.Sex,
		"Ethnicity":     labelOrDefault(Ethnicities, r.Ethnicity, "Not selected"),

		"Medical Conditions": formatConditions(r.Conditions),

		"Eating Disorder":               orDefault(r.EatingDisorder, "Not answered"),
		"Eating Disorder Details":       orDefault(r.EatingDisorderDetails, "N/A"),
		"Kidney Disease":                orDefault(r.KidneyDisease, "Not answered"),
		"Kidney Disease Details":        orDefault(r.KidneyDiseaseDetails, "N/A"),
		"Pregnant/Breastfeeding/Trying": orDefault(r.PregnantOrTrying, "Not answered"),
		"Pregnancy Details":             orDefault(r.PregnantOrTryingDetails, "N/A"),
		"Other Conditions":              orDefault(r.OtherConditions, "None listed"),
		"Current Medications":           orDefault(r.Medications, "None listed"),
		"Allergies":                     orDefault(r.Allergies, "None listed"),

		"Medical History":              MedicalHistory.Format(r.MedicalHistory),
		"Thyroid or Liver Disease":     orDefault(r.ThyroidOrLiver, "Not answered"),
		"Diabetes - Using Insulin":     orDefault(r.DiabetesInsulin, "Not answered"),
		"Diabetes - Other Meds":        orDefault(r.DiabetesOtherMeds, "Not answered"),
		"Gallbladder Issues":           GallbladderIssues.Format(r.GallbladderIssues),
		"Additional Health Conditions": AdditionalHistory.Format(r.AdditionalHistory),

		"Specific Medications":          SpecificMedications.Format(r.SpecificMedications),
		"Smoker":                        orDefault(r.Smoker, "Not answered"),
		"Recent Injectable Weight Loss": orDefault(r.RecentInjectableWeightLoss, "Not answered"),

		"Contraception Agreement": contraception,

		"Important Info Confirmed": yesNo(r.ImportantInfoConfirmed),
		"Terms Agreement":          yesNo(r.TermsAgreement),
		"Data Consent":             yesNo(r.DataConsent),
		"Marketing Consent":        yesNo(r.MarketingConsent),

		"Submitted At": snap.Timestamp.Format(submittedAtLayout),
		"Source":       source,
	}
}

// SubmissionLabels is the relay field order used for exports.
var SubmissionLabels = []string{
	"_subject",
	"Customer Name", "Email", "Phone", "Preferred Contact",
	"Eligibility Status", "Eligibility Notes",
	"Weight Loss Reason", "Weight Loss Goal",
	"BMI", "Height (cm)", "Current Weight (kg)", "Highest Weight (kg)", "Target Weight (kg)",
	"Date of Birth", "Age", "Sex", "Ethnicity",
	"Medical Conditions",
	"Eating Disorder", "Eating Disorder Details", "Kidney Disease", "Kidney Disease Details",
	"Pregnant/Breastfeeding/Trying", "Pregnancy Details", "Other Conditions", "Current Medications", "Allergies",
	"Medical History", "Thyroid or Liver Disease", "Diabetes - Using Insulin", "Diabetes - Other Meds",
	"Gallbladder Issues", "Additional Health Conditions",
	"Specific Medications", "Smoker", "Recent Injectable Weight Loss",
	"Contraception Agreement",
	"Important Info Confirmed", "Terms Agreement", "Data Consent", "Marketing Consent",
	"Submitted At", "Source",
}

func formatConditions(conditions model.Selection) string {
	if len(conditions) == 0 {
		return "None selected"
	}
	if conditions.Has(Conditions.None) {
		return "None of the listed conditions"
	}
	return Conditions.Format(conditions)
}

func formatKgOrCm(v *float64) string {
	if v == nil || *v == 0 {
		return "Not provided"
	}
	return fmt.Sprintf("%.1f", *v)
}

func labelOrDefault(v Vocabulary, value, fallback string) string {
	if value == "" {
		return fallback
	}
	return v.Label(value)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
