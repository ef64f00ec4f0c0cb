package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/mattn/go-isatty"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"truemeter-client/internal/application/check"
	"truemeter-client/internal/domain/vehicle"
)

const (
	ansiReset  = "\x1b[0m"
	errorColor = "#B91C1C"
)

// maxMinorUnits is the largest amount go-money can hold
var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// ColorEnabled reports whether f is a terminal that can show colors
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Renderer draws orchestrator state as text
type Renderer struct {
	out      io.Writer
	color    bool
	currency string
	printer  *message.Printer
}

// NewRenderer creates a renderer writing to out. Prices are shown in currency.
func NewRenderer(out io.Writer, currency string, color bool) *Renderer {
	return &Renderer{
		out:      out,
		color:    color,
		currency: currency,
		printer:  message.NewPrinter(language.English),
	}
}

// Render draws whatever screen the state is on
func (r *Renderer) Render(st check.State) {
	if st.Mode == check.ModeResults && st.Verdict != nil && st.Display != nil {
		r.Results(st)
		return
	}
	r.Form(st)
}

// Form draws the vehicle summary, open problems and the last error
func (r *Renderer) Form(st check.State) {
	q := st.Query
	fmt.Fprintln(r.out, "Vehicle")
	fmt.Fprintf(r.out, "  %-12s %s %s (%d)\n", "Car:", orDash(q.Make), orDash(q.Model), q.Year)
	fmt.Fprintf(r.out, "  %-12s %s\n", "Odometer:", r.Km(int64(q.ReportedKm)))
	fmt.Fprintf(r.out, "  %-12s %s, %s, %d hp\n", "Drivetrain:", q.FuelType, q.Gearbox, q.Horsepower)
	fmt.Fprintf(r.out, "  %-12s %s (%s)\n", "Price:", r.Price(q.Price), q.OfferType)

	if len(st.Problems) > 0 {
		fmt.Fprintln(r.out, "Before checking:")
		for _, p := range st.Problems {
			fmt.Fprintf(r.out, "  - %s\n", p)
		}
	}

	if st.Error != "" {
		r.Error(st.Error)
	}
}

// Results draws the verdict screen
func (r *Renderer) Results(st check.State) {
	v, d := st.Verdict, st.Display

	fmt.Fprintln(r.out, r.paint(d.Classification.Colors.From, " "+d.Classification.Label+" "))
	fmt.Fprintf(r.out, "  %-18s %s\n", "Fraud score:", r.paint(d.Classification.Colors.To, strconv.FormatInt(d.ScorePercent, 10)+"/100"))
	fmt.Fprintf(r.out, "  %-18s %s\n", "Suspicious:", yesNo(v.IsSuspicious))
	fmt.Fprintf(r.out, "  %-18s %s\n", "Reported odometer:", r.Km(int64(st.Query.ReportedKm)))
	fmt.Fprintf(r.out, "  %-18s %s\n", "Expected odometer:", r.Km(d.ExpectedKm))

	if len(v.Reasons) > 0 {
		fmt.Fprintln(r.out, "Why:")
		for _, reason := range v.Reasons {
			fmt.Fprintf(r.out, "  • %s\n", reason)
		}
	}
}

// Error draws a failure message in place of the form's error slot
func (r *Renderer) Error(msg string) {
	fmt.Fprintf(r.out, "%s %s\n", r.paint(errorColor, "Error:"), msg)
}

// Km formats a distance with thousands separators, e.g. "187,654 km"
func (r *Renderer) Km(km int64) string {
	return r.printer.Sprintf("%d km", km)
}

// Price formats whole currency units, e.g. "€15,000.00". Amounts too large
// for go-money fall back to plain digits and the currency code.
func (r *Renderer) Price(units int) string {
	c := money.GetCurrency(r.currency)
	if c == nil {
		return r.printer.Sprintf("%d %s", units, r.currency)
	}

	minor := decimal.NewFromInt(int64(units)).Shift(int32(c.Fraction))
	if minor.GreaterThan(maxMinorUnits) {
		return r.printer.Sprintf("%d %s", units, c.Code)
	}
	return money.New(minor.IntPart(), c.Code).Display()
}

// paint wraps s in a 24-bit foreground color given as #RRGGBB
func (r *Renderer) paint(hex, s string) string {
	if !r.color {
		return s
	}
	red, green, blue, ok := parseHex(hex)
	if !ok {
		return s
	}
	return fmt.Sprintf("\x1b[1;38;2;%d;%d;%dm%s%s", red, green, blue, s, ansiReset)
}

func parseHex(hex string) (uint8, uint8, uint8, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Label is the prompt text for a form field
func Label(f vehicle.Field) string {
	switch f {
	case vehicle.FieldMake:
		return "Make"
	case vehicle.FieldModel:
		return "Model"
	case vehicle.FieldYear:
		return "Year"
	case vehicle.FieldReportedKm:
		return "Reported km"
	case vehicle.FieldHorsepower:
		return "Horsepower"
	case vehicle.FieldPrice:
		return "Price"
	case vehicle.FieldFuelType:
		return "Fuel type"
	case vehicle.FieldGearbox:
		return "Gearbox"
	case vehicle.FieldOfferType:
		return "Offer type"
	}
	return string(f)
}
