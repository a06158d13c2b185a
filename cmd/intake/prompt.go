package intake

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
)

const backKeyword = "back"

var errBack = errors.New("go back a step")

// prompter asks for one field at a time. An empty answer keeps the current
// value and "back" abandons the step. The first error sticks: later prompts
// return their current value without reading.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	err error
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) takeErr() error {
	err := p.err
	p.err = nil
	return err
}

func (p *prompter) line(label, current string) string {
	if p.err != nil {
		return current
	}
	if current != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	raw, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || raw == "") {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		p.err = fmt.Errorf("read answer: %w", err)
		return current
	}
	answer := strings.TrimSpace(raw)
	switch {
	case strings.EqualFold(answer, backKeyword):
		p.err = errBack
		return current
	case answer == "":
		return current
	}
	return answer
}

func (p *prompter) choice(label string, v service.Vocabulary, current string) string {
	if p.err != nil {
		return current
	}
	p.listOptions(v.Options())
	for {
		answer := p.line(label, current)
		if p.err != nil {
			return current
		}
		if value, ok := pickOption(v.Options(), answer); ok {
			return value
		}
		if value, err := v.Parse(answer); err == nil {
			return value
		}
		fmt.Fprintln(p.out, "  Please pick one of the listed options")
	}
}

func (p *prompter) checkboxes(label string, g service.CheckboxGroup, current model.Selection) model.Selection {
	if p.err != nil {
		return current
	}
	p.listOptions(g.Options())
	for {
		answer := p.line(label+" (comma-separated)", strings.Join(current, ","))
		if p.err != nil {
			return current
		}
		if answer == "" {
			return nil
		}
		var tags []string
		for _, part := range strings.Split(answer, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if value, ok := pickOption(g.Options(), part); ok {
				part = value
			}
			tags = append(tags, strings.ToLower(part))
		}
		sel, err := g.Select(tags...)
		if err == nil {
			return sel
		}
		fmt.Fprintf(p.out, "  %v\n", err)
	}
}

func (p *prompter) number(label string, current float64) float64 {
	def := ""
	if current != 0 {
		def = strconv.FormatFloat(current, 'f', -1, 64)
	}
	for {
		answer := p.line(label, def)
		if p.err != nil || answer == "" {
			return current
		}
		v, err := strconv.ParseFloat(answer, 64)
		if err == nil {
			return v
		}
		fmt.Fprintln(p.out, "  Please enter a number")
	}
}

func (p *prompter) integer(label string, current int) int {
	return int(p.number(label, float64(current)))
}

func (p *prompter) confirm(label string, current bool) bool {
	def := "n"
	if current {
		def = "y"
	}
	for {
		answer := p.line(label+" (y/n)", def)
		if p.err != nil {
			return current
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Fprintln(p.out, "  Please answer y or n")
	}
}

func (p *prompter) measurement(label string, current model.Measurement, metricUnit, majorUnit, minorUnit string) model.Measurement {
	unit := string(current.Unit)
	if unit == "" {
		unit = string(model.UnitMetric)
	}
	for {
		answer := p.line(label+" unit (metric/imperial)", unit)
		if p.err != nil {
			return current
		}
		u, err := service.ParseMeasureUnit(answer)
		if err != nil {
			fmt.Fprintf(p.out, "  %v\n", err)
			continue
		}
		m := model.Measurement{Unit: u}
		if u == model.UnitImperial {
			m.Major = p.number(label+" ("+majorUnit+")", current.Major)
			m.Minor = p.number(label+" ("+minorUnit+")", current.Minor)
		} else {
			m.Metric = p.number(label+" ("+metricUnit+")", current.Metric)
		}
		if p.err != nil {
			return current
		}
		return m
	}
}

func (p *prompter) listOptions(options []service.Option) {
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d) %s - %s\n", i+1, o.Value, o.Label)
	}
}

// pickOption resolves a 1-based option number.
func pickOption(options []service.Option, answer string) (string, bool) {
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(options) {
		return "", false
	}
	return options[n-1].Value, true
}
