package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"truemeter-client/internal/application/check"
	"truemeter-client/internal/domain/vehicle"
	"truemeter-client/internal/infrastructure/scoring"
	"truemeter-client/internal/interfaces/cli"
	"truemeter-client/internal/pkg/config"
	"truemeter-client/internal/pkg/logger"
)

const (
	exitOK             = 0
	exitFailure        = 1
	exitNotSubmittable = 2
)

// fieldFlags maps each form field onto its flag name
var fieldFlags = []struct {
	field vehicle.Field
	name  string
	usage string
}{
	{vehicle.FieldMake, "make", "Vehicle make"},
	{vehicle.FieldModel, "model", "Vehicle model"},
	{vehicle.FieldYear, "year", "Model year"},
	{vehicle.FieldReportedKm, "km", "Odometer reading in km"},
	{vehicle.FieldHorsepower, "power", "Engine power in hp"},
	{vehicle.FieldPrice, "price", "Asking price"},
	{vehicle.FieldFuelType, "fuel", "Fuel type (Petrol, Diesel, Hybrid, Electric)"},
	{vehicle.FieldGearbox, "gearbox", "Gearbox (Manual, Automatic)"},
	{vehicle.FieldOfferType, "offer", "Offer type (Used, New)"},
}

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("truemeter", pflag.ExitOnError)
	configPath := flags.String("config", "", "Path to config file")
	flags.String("api-url", "", "Scoring service base URL")
	flags.String("currency", "", "Currency used to show the price")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (json, console)")
	interactive := flags.BoolP("interactive", "i", false, "Prompt for every field")
	health := flags.Bool("health", false, "Print scoring service diagnostics and exit")
	for _, ff := range fieldFlags {
		flags.String(ff.name, "", ff.usage)
	}
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, flags)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "truemeter: %v\n", err)
		return exitFailure
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "truemeter: %v\n", err)
		return exitFailure
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := scoring.NewClient(scoring.Config{
		BaseURL: cfg.API.BaseURL,
		Tracing: cfg.API.Tracing,
	}, log, nil)

	if *health {
		return printHealth(ctx, client)
	}

	renderer := cli.NewRenderer(os.Stdout, cfg.Display.Currency, cli.ColorEnabled(os.Stdout))
	prompter := cli.NewPrompter(os.Stdin, os.Stdout)
	orchestrator := check.NewOrchestrator(client, log.Named("check"), time.Now)

	for _, ff := range fieldFlags {
		f := flags.Lookup(ff.name)
		if !f.Changed {
			continue
		}
		if err := orchestrator.Update(ff.field, f.Value.String()); err != nil {
			fmt.Fprintf(os.Stderr, "truemeter: %v\n", err)
			return exitFailure
		}
	}

	for {
		if *interactive {
			if err := prompter.Fill(orchestrator); err != nil {
				fmt.Fprintf(os.Stderr, "truemeter: %v\n", err)
				return exitFailure
			}
		}

		code := checkOnce(ctx, orchestrator, renderer)
		if !*interactive {
			return code
		}

		again, err := prompter.Confirm("Check another vehicle?")
		if err != nil || !again {
			return code
		}
		if code == exitOK {
			if err := orchestrator.Reset(); err != nil {
				fmt.Fprintf(os.Stderr, "truemeter: %v\n", err)
				return exitFailure
			}
		}
	}
}

// checkOnce submits the form and renders what the orchestrator shows afterwards
func checkOnce(ctx context.Context, orchestrator *check.Orchestrator, renderer *cli.Renderer) int {
	outcome, err := orchestrator.Submit(ctx)
	if err != nil {
		renderer.Form(orchestrator.State())
		if errors.Is(err, check.ErrNotSubmittable) {
			return exitNotSubmittable
		}
		renderer.Error(err.Error())
		return exitFailure
	}

	renderer.Render(orchestrator.State())
	if !outcome.OK() {
		return exitFailure
	}
	return exitOK
}

func printHealth(ctx context.Context, client *scoring.Client) int {
	body, err := client.CheckHealth(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "truemeter: %s: %v\n", client.BaseURL(), err)
		return exitFailure
	}

	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		out.Reset()
		out.Write(body)
	}
	fmt.Println(out.String())
	return exitOK
}
