package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"truemeter-client/internal/application/check"
	"truemeter-client/internal/domain/vehicle"
)

// Form is the part of the orchestrator the prompter edits
type Form interface {
	Update(field vehicle.Field, raw string) error
	State() check.State
}

// Prompter asks for every field in turn. An empty line keeps the value
// already in the form.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a prompter reading answers from in
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Fill prompts for each form field. Running out of input keeps the
// remaining values as they are.
func (p *Prompter) Fill(form Form) error {
	for _, field := range vehicle.Fields {
		done, err := p.ask(form, field)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return nil
}

func (p *Prompter) ask(form Form, field vehicle.Field) (bool, error) {
	options := choices(field)

	for {
		current := form.State().Query.Get(field)
		if len(options) > 0 {
			fmt.Fprintf(p.out, "%s (%s) [%s]: ", Label(field), strings.Join(options, "/"), current)
		} else {
			fmt.Fprintf(p.out, "%s [%s]: ", Label(field), current)
		}

		if !p.in.Scan() {
			fmt.Fprintln(p.out)
			if err := p.in.Err(); err != nil {
				return true, fmt.Errorf("read %s: %w", field, err)
			}
			return true, nil
		}

		answer := p.in.Text()
		if strings.TrimSpace(answer) == "" {
			return false, nil
		}

		if len(options) > 0 {
			match, ok := pick(field, answer)
			if !ok {
				fmt.Fprintf(p.out, "  choose one of %s\n", strings.Join(options, ", "))
				continue
			}
			answer = match
		}

		if err := form.Update(field, answer); err != nil {
			return true, fmt.Errorf("update %s: %w", field, err)
		}
		return false, nil
	}
}

func choices(field vehicle.Field) []string {
	var out []string
	switch field {
	case vehicle.FieldFuelType:
		for _, c := range vehicle.FuelTypes {
			out = append(out, string(c))
		}
	case vehicle.FieldGearbox:
		for _, c := range vehicle.Gearboxes {
			out = append(out, string(c))
		}
	case vehicle.FieldOfferType:
		for _, c := range vehicle.OfferTypes {
			out = append(out, string(c))
		}
	}
	return out
}

// pick resolves an answer for a choice field to its canonical value
func pick(field vehicle.Field, answer string) (string, bool) {
	switch field {
	case vehicle.FieldFuelType:
		v, ok := vehicle.ParseFuelType(answer)
		return string(v), ok
	case vehicle.FieldGearbox:
		v, ok := vehicle.ParseGearbox(answer)
		return string(v), ok
	case vehicle.FieldOfferType:
		v, ok := vehicle.ParseOfferType(answer)
		return string(v), ok
	}
	return answer, true
}

// ErrInputClosed is returned by Confirm when input ends before an answer
var ErrInputClosed = errors.New("input closed")

// Confirm asks a yes/no question; anything but y or yes is no
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return false, err
		}
		return false, ErrInputClosed
	}
	answer := strings.ToLower(strings.TrimSpace(p.in.Text()))
	return answer == "y" || answer == "yes", nil
}
