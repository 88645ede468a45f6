// This file is part of Nopits.
//
// Nopits is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Nopits is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Nopits.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/jetsetilly/nopits/arcplot"
	"github.com/jetsetilly/nopits/cartridgeloader"
	"github.com/jetsetilly/nopits/catalog"
	"github.com/jetsetilly/nopits/config"
	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/digest"
	"github.com/jetsetilly/nopits/genie"
	"github.com/jetsetilly/nopits/history"
	"github.com/jetsetilly/nopits/hostsim"
	"github.com/jetsetilly/nopits/logger"
	"github.com/jetsetilly/nopits/modalflag"
	"github.com/jetsetilly/nopits/patch"
	"github.com/jetsetilly/nopits/recovery"
	"github.com/jetsetilly/nopits/regression"
	"github.com/jetsetilly/nopits/rom"
	"github.com/jetsetilly/nopits/symbols"
	"github.com/jetsetilly/nopits/terminal/easyterm"
	"github.com/jetsetilly/nopits/version"
)

// exit codes
const (
	exitOK        = 0
	exitParse     = 10
	exitModeError = 20
)

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch parses the arguments and runs the selected mode. the return value is
// the exit code for the process.
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("PATCH", "DECODE", "ENCODE", "SIM", "REGRESS", "HISTORY", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	switch md.Mode() {
	case "PATCH":
		err = patchImage(md, output)

	case "DECODE":
		err = decode(md, output)

	case "ENCODE":
		err = encode(md, output)

	case "SIM":
		err = simulate(md, output)

	case "REGRESS":
		err = regress(md, output, os.Stdin)

	case "HISTORY":
		err = listHistory(md, output)

	case "VERSION":
		fmt.Fprintln(output, version.String())
	}

	// echo may have been pointed at a file by the mode
	logger.SetEcho(nil)

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitModeError
	}

	return exitOK
}

// setEcho points the logger echo at stderr and/or a file. the returned
// function closes the file.
func setEcho(echo bool, logfile string) (func(), error) {
	var term io.Writer
	if echo {
		term = os.Stderr
	}

	var f *os.File
	if logfile != "" {
		var err error
		f, err = os.Create(logfile)
		if err != nil {
			return nil, err
		}
	}

	if f == nil {
		logger.SetEcho(logger.NewEcho(term, nil, slog.LevelInfo))
		return func() {}, nil
	}

	logger.SetEcho(logger.NewEcho(term, f, slog.LevelInfo))
	return func() {
		logger.SetEcho(nil)
		_ = f.Close()
	}, nil
}

func printDigest(pr *easyterm.Printer, label string, dig digest.Image) {
	pr.Printf("  %-6s md5    %s\n", label, dig.MD5)
	pr.Printf("         sha1   %s\n", dig.SHA1)
	pr.Printf("         blake3 %s\n", dig.BLAKE3)
}

func patchImage(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("The patched image is written alongside the original with the suffix from\nthe configuration added to the filename. Images may be zipped or zstd compressed.")

	configFile := md.AddString("config", "", "configuration file (CUE)")
	codes := md.AddStringList("code", "additional Game Genie code (may be repeated)")
	dryrun := md.AddBool("dryrun", false, "verify and report but do not write the patched image")
	useHistory := md.AddBool("history", true, "record the run in the history database")
	outFile := md.AddString("out", "", "write the patched image to this file")
	log := md.AddBool("log", false, "echo log to stderr")
	logfile := md.AddString("logfile", "", "write log as JSON to file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	closeLog, err := setEcho(*log, *logfile)
	if err != nil {
		return err
	}
	defer closeLog()

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("image required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}

	cl := cartridgeloader.NewLoader(md.GetArg(0))
	if err := cl.Load(); err != nil {
		return err
	}

	extra := append(append([]string{}, cfg.Codes...), *codes...)
	cat, err := catalog.Default(cfg.Tuning, extra...)
	if err != nil {
		return err
	}

	pr := easyterm.NewPrinter(output)

	before := digest.NewImage(cl.Data)
	pr.Printf("loaded %s (%d bytes)\n", cl.Inner, len(cl.Data))
	printDigest(pr, "before", before)

	out, rep, err := patch.Apply(cl.Data, cat)
	if err != nil {
		return err
	}

	for _, o := range rep.Outcomes {
		switch o.Status {
		case patch.Applied:
			pr.Successf("  OK: %s\n", o.Name)
		case patch.AlreadyApplied:
			pr.Printf("  OK: %s (already applied)\n", o.Name)
		case patch.Skipped:
			pr.Warningf("  WARNING: %s skipped: %v\n", o.Name, o.Err)
		}
	}
	pr.Printf("%s\n", rep.Summary())

	if rep.Applied() == 0 && rep.AlreadyApplied() == 0 {
		return fmt.Errorf("no patches could be applied. the image may be incompatible")
	}
	if rep.Skipped() > 0 {
		pr.Warningf("%d patch(es) skipped. the image is only partially patched\n", rep.Skipped())
	}

	after := digest.NewImage(out)
	printDigest(pr, "after", after)

	if *dryrun {
		pr.Printf("dry run. nothing written\n")
		return nil
	}

	dest := *outFile
	if dest == "" {
		dest = cl.OutputFilename(cfg.Suffix)
	}
	if err := os.WriteFile(dest, out, 0644); err != nil {
		return err
	}
	pr.Successf("written %s\n", dest)

	if *useHistory && cfg.History {
		pth, err := history.Path()
		if err != nil {
			return err
		}
		r := history.NewRun(cl.Filename, before.MD5, dest, after.MD5, rep, cfg.Tuning.String(), extra)
		if _, err := history.Add(pth, r); err != nil {
			pr.Warningf("history not recorded: %v\n", err)
		}
	}

	return nil
}

func decode(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("Decode one or more Game Genie codes to address, compare and value. Addresses\nare named with the symbols file for the image given with -image.")

	image := md.AddString("image", "", "image to read symbols file for")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("at least one code required for %s mode", md)
	}

	pr := easyterm.NewPrinter(output)

	sym, err := symbols.ReadSymbolsFile(*image)
	if err != nil {
		pr.Warningf("%v\n", err)
	}
	routine := recovery.NewRoutine(recovery.DefaultTuning(), recovery.SMB)
	if head, err := routine.Head(); err == nil {
		sym.AddProgram(head)
	}
	if tail, err := routine.Tail(); err == nil {
		sym.AddProgram(tail)
	}

	for _, arg := range md.RemainingArgs() {
		c, err := genie.Decode(arg)
		if err != nil {
			return err
		}

		s := fmt.Sprintf("%-8s %s", strings.ToUpper(arg), c)
		if o, err := rom.CPUToFile(c.Address); err == nil {
			s = fmt.Sprintf("%s  file %#05x", s, o)
		}
		if l, ok := sym.ReverseSearch(c.Address); ok {
			s = fmt.Sprintf("%s  %s", s, l)
		}
		if !c.Canonical() {
			pr.Warningf("%s  (non-canonical length flag)\n", s)
			continue
		}
		pr.Printf("%s\n", s)
	}

	return nil
}

// parseCode parses the address:value or address?compare:value forms, in hex.
func parseCode(s string) (genie.Code, error) {
	var address uint16
	var value, compare uint8

	if strings.Contains(s, "?") {
		if _, err := fmt.Sscanf(s, "%x?%x:%x", &address, &compare, &value); err != nil {
			return genie.Code{}, curated.Errorf(genie.FormatError, fmt.Sprintf("%q: %v", s, err))
		}
		return genie.NewCompareCode(address, value, compare), nil
	}

	if _, err := fmt.Sscanf(s, "%x:%x", &address, &value); err != nil {
		return genie.Code{}, curated.Errorf(genie.FormatError, fmt.Sprintf("%q: %v", s, err))
	}
	return genie.NewCode(address, value), nil
}

func encode(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("Encode address:value or address?compare:value (hex) as a Game Genie code.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("at least one address:value required for %s mode", md)
	}

	for _, arg := range md.RemainingArgs() {
		c, err := parseCode(arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "%-12s %s\n", c, genie.Encode(c))
	}

	return nil
}

func simulate(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("Measure the recovery arc in every gravity variant. With -machine the routine\ninstalled in the patched image is run on the emulated CPU.")

	configFile := md.AddString("config", "", "configuration file (CUE)")
	variant := md.AddString("variant", "", "measure only the named variant")
	held := md.AddBool("held", false, "measure with the jump button held")
	machine := md.AddString("machine", "", "patch this image and run the installed routine")
	chart := md.AddString("chart", "", "render the arcs as HTML to file")
	dump := md.AddString("memviz", "", "write a graphviz dump of the final state to file")
	log := md.AddBool("log", false, "echo log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	closeLog, err := setEcho(*log, "")
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}

	variants := cfg.Variants
	if *variant != "" {
		i := slices.IndexFunc(variants, func(v hostsim.Variant) bool {
			return strings.EqualFold(v.Name, *variant)
		})
		if i < 0 {
			return fmt.Errorf("unknown variant: %s", *variant)
		}
		variants = variants[i : i+1]
	}

	// the controller is either the Go controller or the routine running on
	// the CPU. either way a new one is created for every measurement
	newController := func() (hostsim.Controller, error) {
		return recovery.NewController(cfg.Tuning), nil
	}

	if *machine != "" {
		cl := cartridgeloader.NewLoader(*machine)
		if err := cl.Load(); err != nil {
			return err
		}
		cat, err := catalog.Default(cfg.Tuning, cfg.Codes...)
		if err != nil {
			return err
		}
		patched, _, err := patch.Apply(cl.Data, cat)
		if err != nil {
			return err
		}
		routine := recovery.NewRoutine(cfg.Tuning, recovery.SMB)
		newController = func() (hostsim.Controller, error) {
			return hostsim.NewMachine(patched, routine)
		}
	}

	pr := easyterm.NewPrinter(output)
	pr.Printf("%s\n", cfg)

	var arcs []hostsim.Arc
	for _, v := range variants {
		ctrl, err := newController()
		if err != nil {
			return err
		}
		arc, err := hostsim.Measure(v, cfg.Tuning, ctrl, *held)
		if err != nil {
			pr.Errorf("%v\n", err)
			continue
		}
		pr.Printf("%s\n", arc)
		arcs = append(arcs, arc)
	}

	if len(arcs) < len(variants) {
		return fmt.Errorf("%d variant(s) did not produce a bounded arc", len(variants)-len(arcs))
	}

	rec, _, err := hostsim.RecommendCountdown(variants, cfg.Tuning, 8)
	if err != nil {
		return err
	}
	if cfg.Tuning.Countdown < rec {
		pr.Warningf("countdown %d is shorter than the recommended %d\n", cfg.Tuning.Countdown, rec)
	} else {
		pr.Successf("countdown %d covers the recommended %d\n", cfg.Tuning.Countdown, rec)
	}

	if *chart != "" {
		f, err := os.Create(*chart)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := arcplot.Plot(f, arcs, cfg.Tuning); err != nil {
			return err
		}
	}

	if *dump != "" {
		ctrl, err := newController()
		if err != nil {
			return err
		}

		host := hostsim.Boundary(variants[0], cfg.Tuning, *held)
		tr, err := hostsim.Run(host, ctrl, int(cfg.Tuning.Countdown), nil)
		if err != nil {
			return err
		}

		f, err := os.Create(*dump)
		if err != nil {
			return err
		}
		defer f.Close()
		hostsim.Dump(f, host, ctrl, tr)
	}

	return nil
}

func regress(md *modalflag.Modes, output io.Writer, input io.Reader) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	pth, err := regression.Path()
	if err != nil {
		return err
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()
		md.AdditionalHelp("Run the entries with the listed keys. All entries are run if no keys are given.")

		verbose := md.AddBool("verbose", false, "output more detail (eg. error messages)")
		failOnError := md.AddBool("fail", false, "fail on error")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		res, err := regression.RegressRunTests(pth, output, *verbose, *failOnError, md.RemainingArgs())
		if err != nil {
			return err
		}
		if !res.Passed() {
			return fmt.Errorf("%s", res)
		}

	case "LIST":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		if len(md.RemainingArgs()) > 0 {
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}
		return regression.RegressList(pth, output)

	case "DELETE":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		if len(md.RemainingArgs()) != 1 {
			return fmt.Errorf("a single key is required for %s mode", md)
		}
		return regression.RegressDelete(pth, output, input, md.GetArg(0))

	case "ADD":
		md.NewMode()
		md.AdditionalHelp("Record the trace from the boundary condition for a variant. With -machine the\nroutine installed in the patched image is recorded instead of the controller.")

		configFile := md.AddString("config", "", "configuration file (CUE)")
		variant := md.AddString("variant", "overworld", "gravity variant")
		held := md.AddBool("held", false, "jump button held")
		frames := md.AddInt("frames", 0, "number of frames (0 for twice the countdown)")
		machine := md.AddString("machine", "", "image to patch and run the installed routine from")
		notes := md.AddString("notes", "", "additional annotation for the entry")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		if len(md.RemainingArgs()) > 0 {
			return fmt.Errorf("too many arguments for %s mode", md)
		}

		cfg, err := config.Load(*configFile)
		if err != nil {
			return err
		}

		v, ok := hostsim.FindVariant(*variant)
		if !ok {
			return fmt.Errorf("unknown variant: %s", *variant)
		}

		kind := regression.KindController
		if *machine != "" {
			kind = regression.KindRoutine
		}

		reg := regression.NewArcRegression(v, cfg.Tuning, kind)
		reg.InputHeld = *held
		reg.Image = *machine
		reg.Notes = *notes
		if *frames > 0 {
			reg.Frames = *frames
		}

		_, err = regression.RegressAdd(pth, output, reg)
		return err
	}

	return nil
}

func listHistory(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AddSubModes("LIST", "DELETE", "FIND")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	pth, err := history.Path()
	if err != nil {
		return err
	}

	switch md.Mode() {
	case "LIST":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		if len(md.RemainingArgs()) > 0 {
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}
		return history.List(pth, output)

	case "DELETE":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		if len(md.RemainingArgs()) != 1 {
			return fmt.Errorf("a single key is required for %s mode", md)
		}
		return history.Delete(pth, md.GetArg(0))

	case "FIND":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		if len(md.RemainingArgs()) != 1 {
			return fmt.Errorf("a single md5 digest is required for %s mode", md)
		}
		runs, err := history.Find(pth, strings.ToLower(md.GetArg(0)))
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			return fmt.Errorf("no run produced %s", md.GetArg(0))
		}
		for _, r := range runs {
			fmt.Fprintln(output, r)
		}
	}

	return nil
}
