package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"

	"github.com/spf13/cobra"

	"github.com/s0up4200/rlstats/filter"
	"github.com/s0up4200/rlstats/output"
	"github.com/s0up4200/rlstats/rocketleague"
)

// planView is how a request plan is shown in dry-run output
type planView struct {
	Endpoint string                      `json:"endpoint"`
	Method   string                      `json:"method"`
	URL      string                      `json:"url"`
	Body     *rocketleague.PlayerIDsBody `json:"body,omitempty"`
	Curl     string                      `json:"curl"`
}

func newPlanView(client *rocketleague.Client, plan rocketleague.RequestPlan) planView {
	return planView{
		Endpoint: plan.Endpoint.String(),
		Method:   plan.Method,
		URL:      plan.URL,
		Body:     plan.Body,
		Curl:     plan.Curl(redactedHeaders(client)),
	}
}

// redactedHeaders returns the client headers with the token masked
func redactedHeaders(client *rocketleague.Client) http.Header {
	h := client.Headers()
	h.Set("Authorization", "Token REDACTED")
	return h
}

func outputOptions() output.Options {
	return output.Options{
		Query:   queryExpr,
		Compact: cfg.Output.Compact,
		Format:  output.Format(cfg.Output.Format),
	}
}

// render prints a single endpoint result according to the client mode.
// Non-2xx responses are printed and then returned as an error.
func render(cmd *cobra.Command, client *rocketleague.Client, result *rocketleague.Result) error {
	out := cmd.OutOrStdout()

	switch {
	case !result.Sent():
		return output.Write(out, newPlanView(client, result.Plan), output.Options{Compact: cfg.Output.Compact})
	case result.Response != nil:
		return writeRaw(out, result.Response)
	}

	if err := writeValue(cmd, result.Value()); err != nil {
		return err
	}
	return result.Err()
}

// renderNamed prints several results, keyed by name, as one document
func renderNamed(cmd *cobra.Command, client *rocketleague.Client, names []string, results map[string]*rocketleague.Result) error {
	out := cmd.OutOrStdout()

	var (
		plans  = make(map[string]planView)
		values = make(map[string]any)
		errs   []error
	)

	for _, name := range names {
		result := results[name]
		switch {
		case !result.Sent():
			plans[name] = newPlanView(client, result.Plan)
		case result.Response != nil:
			fmt.Fprintf(out, "### %s\n", name)
			if err := writeRaw(out, result.Response); err != nil {
				return err
			}
		default:
			values[name] = result.Value()
			if err := result.Err(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}

	if len(plans) > 0 {
		return output.Write(out, plans, output.Options{Compact: cfg.Output.Compact})
	}
	if len(values) > 0 {
		if err := writeValue(cmd, values); err != nil {
			return err
		}
	}
	return errors.Join(errs...)
}

// writeValue applies the row filter and prints the value
func writeValue(cmd *cobra.Command, v any) error {
	if filterExpr != "" {
		f, err := filterCompiler.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}

		rows, err := output.Generic(v)
		if err != nil {
			return err
		}

		v, err = filter.Apply(cmd.Context(), f, rows)
		if err != nil {
			return fmt.Errorf("filter failed: %w", err)
		}
	}

	return output.Write(cmd.OutOrStdout(), v, outputOptions())
}

// writeRaw dumps the untouched HTTP response and closes its body
func writeRaw(w io.Writer, resp *http.Response) error {
	defer resp.Body.Close()

	dump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return fmt.Errorf("failed to dump response: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s\n", dump)
	return err
}
