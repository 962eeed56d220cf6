// Package commands holds the cobra subcommands attached to the server binary.
package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pcquote/services"
)

// clock stamps quote records. Tests replace it.
var clock = time.Now

type quoteOptions struct {
	preset   string
	sets     []string
	extras   []string
	noExtras bool
	lead     services.Lead
	json     bool
}

// NewQuoteCommand returns `quote`, which prices a build from the command line
// and prints the mail body or, with --json, the structured export.
//
//	pcquote quote --preset office --extra rgb --set gpu=4060 --zip 84101
func NewQuoteCommand(shop *services.Shop) *cobra.Command {
	opts := &quoteOptions{}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a build and print the quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.configuration(shop)
			if err != nil {
				return err
			}
			record, err := shop.Quote(opts.lead, cfg, clock())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.json {
				doc, err := services.ToStructuredExport(record)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(doc))
				return err
			}

			ref, err := services.QuoteNumber(record)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%s\nReference: %s\n\n%s\n", shop.MailSubject(record), ref, shop.ToDisplayText(record))
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.preset, "preset", "", "start from a preset by id")
	f.StringArrayVar(&opts.sets, "set", nil, "select an item as category=id, repeatable")
	f.StringArrayVar(&opts.extras, "extra", nil, "add an extra by id, repeatable; replaces the preset extras")
	f.BoolVar(&opts.noExtras, "no-extras", false, "drop all extras")
	f.StringVar(&opts.lead.Name, "name", "", "customer name")
	f.StringVar(&opts.lead.Email, "email", "", "customer email")
	f.StringVar(&opts.lead.Phone, "phone", "", "customer phone")
	f.StringVar(&opts.lead.PreferredDate, "date", "", "preferred date (YYYY-MM-DD)")
	f.StringVar(&opts.lead.PostalCode, "zip", "", "customer ZIP code")
	f.StringVar(&opts.lead.Notes, "notes", "", "notes for the builder")
	f.BoolVar(&opts.json, "json", false, "print the structured JSON export instead of text")
	cmd.MarkFlagsMutuallyExclusive("extra", "no-extras")

	return cmd
}

// configuration starts from the preset (or the reset build) and applies the
// --set and --extra flags.
func (o *quoteOptions) configuration(shop *services.Shop) (services.Configuration, error) {
	var cfg services.Configuration
	if o.preset != "" {
		resolved, err := shop.Presets.Resolve(o.preset)
		if err != nil {
			return services.Configuration{}, err
		}
		cfg = resolved
	} else {
		cfg = services.DefaultConfiguration()
	}

	for _, s := range o.sets {
		key, id, ok := strings.Cut(s, "=")
		if !ok || id == "" {
			return services.Configuration{}, fmt.Errorf("--set %q: expected category=id", s)
		}
		c, ok := services.ParseCategory(strings.ToLower(strings.TrimSpace(key)))
		if !ok {
			return services.Configuration{}, fmt.Errorf("--set %q: unknown category %q", s, key)
		}
		cfg.Selection[c] = strings.TrimSpace(id)
	}

	switch {
	case o.noExtras:
		cfg.Extras = []string{}
	case len(o.extras) > 0:
		cfg.Extras = append([]string{}, o.extras...)
	}
	return cfg, nil
}

// NewPresetsCommand returns `presets`, which lists the preset builds with
// their totals.
func NewPresetsCommand(shop *services.Shop) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the preset builds and their totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRE-TAX\tTOTAL")
			for _, p := range shop.Presets.List() {
				cfg, err := shop.Presets.Resolve(p.ID)
				if err != nil {
					return err
				}
				b, err := shop.Breakdown(cfg)
				if err != nil {
					return fmt.Errorf("preset %s: %w", p.ID, err)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, services.FormatUSD(b.Subtotal), services.FormatUSD(b.Total))
			}
			return w.Flush()
		},
	}
}
