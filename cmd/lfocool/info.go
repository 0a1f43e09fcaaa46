package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/lfocool/plugin"
)

func printInfo(w io.Writer) error {
	p, err := plugin.New()
	if err != nil {
		return err
	}
	info := p.Info()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\t%s\n", info.Name)
	fmt.Fprintf(tw, "Vendor\t%s <%s>\n", info.Vendor, info.Email)
	fmt.Fprintf(tw, "Version\t%s\n", info.Version)
	fmt.Fprintf(tw, "CLAP\t%s (%s)\n", info.ClapID, strings.Join(info.ClapFeatures, ", "))
	fmt.Fprintf(tw, "VST3\t%s (%s)\n", info.VST3ClassID[:], strings.Join(info.VST3Subcategories, "|"))
	for _, l := range info.Layouts {
		fmt.Fprintf(tw, "Layout\t%s %d in / %d out\n", l.Name, l.InputChannels, l.OutputChannels)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tName\tMin\tMax\tDefault\tSmoothing\n")
	fmt.Fprintf(tw, "--\t----\t---\t---\t-------\t---------\n")
	for _, prm := range p.Registry().All() {
		rng := prm.Range()
		sm := prm.Smoothed()
		smoothing := sm.Style().String()
		if sm.TimeMs() > 0 {
			smoothing = fmt.Sprintf("%s %.0f ms", smoothing, sm.TimeMs())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			prm.ID(),
			prm.Name(),
			prm.PlainValueToString(rng.Min, true),
			prm.PlainValueToString(rng.Max, true),
			prm.PlainValueToString(prm.DefaultPlainValue(), true),
			smoothing,
		)
	}
	return tw.Flush()
}
