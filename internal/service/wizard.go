package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
)

var (
	ErrSessionClosed = errors.New("questionnaire already submitted")
	ErrNotFinalStep  = errors.New("submit is only available on the final step")
)

const (
	stateCollecting = "collecting"
	stateResults    = "results"
	eventSubmit     = "submit"
)

type Direction int

const (
	Back    Direction = -1
	Forward Direction = 1
)

// Submitter ships a finished snapshot to the outside world. It must not block
// the caller on the network.
type Submitter interface {
	Submit(ctx context.Context, snap model.Snapshot) *Delivery
}

type SessionOptions struct {
	ID        string
	Now       func() time.Time
	Submitter Submitter
}

// Session is one pass through the questionnaire. All mutations are serialized
// on mu so partial saves of different steps never interleave.
type Session struct {
	id        string
	now       func() time.Time
	submitter Submitter

	mu        sync.Mutex
	step      int
	record    model.AnswerRecord
	result    model.Eligibility
	lifecycle *fsm.FSM
}

func NewSession(opts SessionOptions) *Session {
	s := &Session{
		id:        opts.ID,
		now:       opts.Now,
		submitter: opts.Submitter,
		step:      StepMotivation,
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.lifecycle = fsm.NewFSM(
		stateCollecting,
		fsm.Events{
			{Name: eventSubmit, Src: []string{stateCollecting}, Dst: stateResults},
		},
		fsm.Callbacks{},
	)
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Closed reports whether results have been shown; no further navigation is possible.
func (s *Session) Closed() bool {
	return s.lifecycle.Current() == stateResults
}

func (s *Session) Record() model.AnswerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecord(s.record)
}

// Form returns the current step's form pre-filled with saved answers.
func (s *Session) Form() StepForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, _ := FormFor(s.step, s.record)
	return f
}

// Eligibility is the verdict, available once the session has been submitted.
func (s *Session) Eligibility() (model.Eligibility, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.result.Verdict != model.VerdictUnset
}

type Progress struct {
	Step    int
	Total   int
	Percent float64
}

func (p Progress) String() string {
	return fmt.Sprintf("Step %d of %d", p.Step, p.Total)
}

func (s *Session) Progress() Progress {
	step := s.Step()
	return Progress{Step: step, Total: TotalSteps, Percent: float64(step) / float64(TotalSteps) * 100}
}

// Navigate moves one step in dir after saving form. Going forward is gated on
// the current step validating; going back always saves and moves.
func (s *Session) Navigate(dir Direction, form StepForm) (StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Closed() {
		return StepResult{}, ErrSessionClosed
	}
	if err := s.checkForm(form); err != nil {
		return StepResult{}, err
	}

	candidate := cloneRecord(s.record)
	form.save(&candidate, s.now())

	res := StepResult{Step: s.step, OK: true}
	if dir == Forward {
		res = ValidateStep(s.step, candidate)
		if !res.OK {
			return res, nil
		}
	}
	s.record = candidate
	s.step = s.nextStep(dir)
	return res, nil
}

func (s *Session) Next(form StepForm) (StepResult, error) {
	return s.Navigate(Forward, form)
}

func (s *Session) Prev(form StepForm) error {
	_, err := s.Navigate(Back, form)
	return err
}

type Outcome struct {
	Result      StepResult
	Eligibility model.Eligibility
	Delivery    *Delivery
}

// Submit finishes the questionnaire from the final step: it re-validates the
// contact step, saves it, evaluates eligibility and hands the snapshot to the
// submitter. A failed validation leaves the session open.
func (s *Session) Submit(ctx context.Context, form StepForm) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Closed() {
		return Outcome{}, ErrSessionClosed
	}
	if s.step != StepContact {
		return Outcome{}, ErrNotFinalStep
	}
	if err := s.checkForm(form); err != nil {
		return Outcome{}, err
	}

	now := s.now()
	candidate := cloneRecord(s.record)
	form.save(&candidate, now)
	res := ValidateStep(StepContact, candidate)
	if !res.OK {
		return Outcome{Result: res}, nil
	}
	refreshAge(&candidate, now)
	s.record = candidate
	s.result = Evaluate(candidate)

	if err := s.lifecycle.Event(ctx, eventSubmit); err != nil {
		return Outcome{}, fmt.Errorf("close questionnaire: %w", err)
	}

	out := Outcome{Result: res, Eligibility: s.result}
	if s.submitter != nil {
		out.Delivery = s.submitter.Submit(ctx, model.Snapshot{
			SessionID: s.id,
			Data:      cloneRecord(candidate),
			Eligible:  s.result.Verdict,
			Reason:    s.result.Reason,
			Timestamp: now,
		})
	}
	return out, nil
}

func (s *Session) checkForm(form StepForm) error {
	if form == nil {
		return fmt.Errorf("form for step %d is required", s.step)
	}
	if form.Step() != s.step {
		return fmt.Errorf("form for step %d submitted on step %d", form.Step(), s.step)
	}
	return nil
}

func (s *Session) nextStep(dir Direction) int {
	step := s.step + int(dir)
	if step == StepContraception && !ContraceptionApplies(s.record) {
		step += int(dir)
	}
	if step < StepMotivation {
		step = StepMotivation
	}
	if step > TotalSteps {
		step = TotalSteps
	}
	return step
}

// Replay drives a session from its current step through submission with
// pre-filled forms. It stops at the first step that does not validate and
// returns that step's result.
func Replay(ctx context.Context, s *Session, forms map[int]StepForm) (Outcome, error) {
	for {
		step := s.Step()
		form, ok := forms[step]
		if !ok {
			return Outcome{}, fmt.Errorf("no answers for step %d", step)
		}
		if step == StepContact {
			return s.Submit(ctx, form)
		}
		res, err := s.Navigate(Forward, form)
		if err != nil {
			return Outcome{}, err
		}
		if !res.OK {
			return Outcome{Result: res}, nil
		}
	}
}
