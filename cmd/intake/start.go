package intake

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
	"github.com/spf13/cobra"
)

var (
	startSend  bool
	startToday string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Answer the questionnaire interactively",
	Long:  "Walks through every step of the questionnaire. Press Enter to keep the value shown in brackets and type \"back\" to return to the previous step.",
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := parseToday(startToday)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			settings, err := service.LoadSettings(sqldb)
			if err != nil {
				return err
			}
			s := service.NewSession(service.SessionOptions{
				Now:       now,
				Submitter: newCoordinator(sqldb, settings, startSend, cmd.ErrOrStderr()),
			})
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			return runWizard(cmd.Context(), s, p)
		})
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().BoolVar(&startSend, "send", true, "Post the submission to the configured relay")
	startCmd.Flags().StringVar(&startToday, "today", "", "Answer as of this date (YYYY-MM-DD)")
}

func runWizard(ctx context.Context, s *service.Session, p *prompter) error {
	// pending keeps answers that failed validation so they are offered again.
	var pending service.StepForm
	for {
		step := s.Step()
		fmt.Fprintf(p.out, "\n%s: %s\n", s.Progress(), service.StepTitle(step))

		current := s.Form()
		if pending != nil && pending.Step() == step {
			current = pending
		}
		form, err := p.fill(current)
		if errors.Is(err, errBack) {
			pending = nil
			if step == service.StepMotivation {
				fmt.Fprintln(p.out, "  Already at the first step")
				continue
			}
			if err := s.Prev(form); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		if step == service.StepContact {
			out, err := s.Submit(ctx, form)
			if err != nil {
				return err
			}
			if !out.Result.OK {
				fmt.Fprintf(p.out, "  %s\n", out.Result.Message)
				pending = form
				continue
			}
			fmt.Fprintln(p.out)
			printResults(p.out, s.Record(), out.Eligibility)
			reportDelivery(ctx, p.out, out.Delivery)
			return nil
		}

		res, err := s.Next(form)
		if err != nil {
			return err
		}
		if !res.OK {
			fmt.Fprintf(p.out, "  %s\n", res.Message)
			pending = form
			continue
		}
		pending = nil
	}
}

// fill asks every field of the step form, using f's values as defaults.
func (p *prompter) fill(f service.StepForm) (service.StepForm, error) {
	switch f := f.(type) {
	case service.MotivationForm:
		f.Reason = p.choice("Main reason for losing weight", service.WeightLossReasons, f.Reason)
		f.Goal = p.choice("Weight loss goal", service.WeightLossGoals, f.Goal)
		return f, p.takeErr()

	case service.MeasurementsForm:
		f.Height = p.measurement("Height", f.Height, "cm", "feet", "inches")
		f.Weight = p.measurement("Weight", f.Weight, "kg", "stone", "pounds")
		return f, p.takeErr()

	case service.PersonalForm:
		f.DOB.Day = p.integer("Date of birth: day", f.DOB.Day)
		f.DOB.Month = p.integer("Date of birth: month", f.DOB.Month)
		f.DOB.Year = p.integer("Date of birth: year", f.DOB.Year)
		f.Ethnicity = p.choice("Ethnicity", service.Ethnicities, f.Ethnicity)
		f.Sex = p.choice("Sex at birth", service.Sexes, f.Sex)
		return f, p.takeErr()

	case service.WeightHistoryForm:
		f.Highest = p.measurement("Highest weight (optional)", f.Highest, "kg", "stone", "pounds")
		f.Target = p.measurement("Target weight (optional)", f.Target, "kg", "stone", "pounds")
		return f, p.takeErr()

	case service.ConditionsForm:
		f.Conditions = p.checkboxes("Conditions", service.Conditions, f.Conditions)
		return f, p.takeErr()

	case service.SafetyForm:
		f.EatingDisorder = p.choice("Have you ever had an eating disorder", service.ScreeningAnswers, f.EatingDisorder)
		if f.EatingDisorder == service.AnswerYes {
			f.EatingDisorderDetails = p.line("Please give details", f.EatingDisorderDetails)
		}
		f.KidneyDisease = p.choice("Do you have kidney disease", service.ScreeningAnswers, f.KidneyDisease)
		if f.KidneyDisease == service.AnswerYes {
			f.KidneyDiseaseDetails = p.line("Please give details", f.KidneyDiseaseDetails)
		}
		f.PregnantOrTrying = p.choice("Are you pregnant, breastfeeding or trying to conceive", service.ScreeningAnswers, f.PregnantOrTrying)
		if f.PregnantOrTrying == service.AnswerYes {
			f.PregnantOrTryingDetails = p.line("Please give details", f.PregnantOrTryingDetails)
		}
		f.OtherConditions = p.line("Other medical conditions (optional)", f.OtherConditions)
		f.Medications = p.line("Current medications (optional)", f.Medications)
		f.Allergies = p.line("Allergies (optional)", f.Allergies)
		return f, p.takeErr()

	case service.HistoryForm:
		f.MedicalHistory = p.checkboxes("Medical history", service.MedicalHistory, f.MedicalHistory)
		f.ThyroidOrLiver = p.choice("Thyroid or liver problems", service.ScreeningAnswers, f.ThyroidOrLiver)
		f.DiabetesInsulin = p.choice("Diabetes treated with insulin", service.ScreeningAnswers, f.DiabetesInsulin)
		f.DiabetesOtherMeds = p.choice("Diabetes treated with other medication", service.ScreeningAnswers, f.DiabetesOtherMeds)
		f.GallbladderIssues = p.checkboxes("Gallbladder issues", service.GallbladderIssues, f.GallbladderIssues)
		f.AdditionalHistory = p.checkboxes("Additional history", service.AdditionalHistory, f.AdditionalHistory)
		return f, p.takeErr()

	case service.LifestyleForm:
		f.SpecificMedications = p.checkboxes("Are you taking any of these medications", service.SpecificMedications, f.SpecificMedications)
		f.Smoker = p.choice("Do you smoke", service.YesNo, f.Smoker)
		f.RecentInjectableWeightLoss = p.choice("Injectable weight-loss treatment in the last 4 weeks", service.YesNo, f.RecentInjectableWeightLoss)
		return f, p.takeErr()

	case service.ContraceptionForm:
		f.Agreement = p.choice("Will you use effective contraception during treatment", service.YesNo, f.Agreement)
		return f, p.takeErr()

	case service.ImportantInfoForm:
		f.Confirmed = p.confirm("I have read and understood the important information", f.Confirmed)
		return f, p.takeErr()

	case service.ContactForm:
		f.FullName = p.line("Full name", f.FullName)
		f.Email = p.line("Email", f.Email)
		f.Phone = p.line("UK phone number", f.Phone)
		f.ContactMethod = p.choice("Preferred contact method", service.ContactMethods, f.ContactMethod)
		f.DataConsent = p.confirm("I consent to my data being processed", f.DataConsent)
		f.TermsAgreement = p.confirm("I agree to the terms and conditions", f.TermsAgreement)
		f.Marketing = p.confirm("Send me news and offers", f.Marketing)
		return f, p.takeErr()
	}
	return nil, fmt.Errorf("no prompts for step %d", f.Step())
}
