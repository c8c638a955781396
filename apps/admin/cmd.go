package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/trezcool/shule/core/exam"
	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/session"
	"github.com/trezcool/shule/core/transport"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp      = errors.New("help provided")
	errForbidden = errors.New("permission denied")
)

type commandLine struct {
	app *school.App
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  report -username USERNAME -kind attendance|academic|fee -start DATE -end DATE [-class C -section S -student ID] [-out FILE.xlsx]")
	fmt.Fprintln(cli.out, "  grade -marks MARKS -total TOTAL - print the grade of a result")
	fmt.Fprintln(cli.out, "  duration -start HH:MM -end HH:MM - print the duration of a journey")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "report":
		return cli.reportCmd(args[2:])
	case "grade":
		return cli.gradeCmd(args[2:])
	case "duration":
		return cli.durationCmd(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) reportCmd(args []string) error {
	cmd := cli.newFlagSet("report")
	username := cmd.String("username", "", "The account generating the report. The password will be prompted next.")
	kind := cmd.String("kind", "", "attendance, academic or fee")
	class := cmd.String("class", "", "Restrict to a class")
	section := cmd.String("section", "", "Restrict to a section")
	student := cmd.Int("student", 0, "Restrict to a student ID")
	start := cmd.String("start", "", "First day (YYYY-MM-DD)")
	end := cmd.String("end", "", "Last day (YYYY-MM-DD)")
	out := cmd.String("out", "", "Write an xlsx workbook to this file instead of printing JSON")

	if err := cmd.Parse(args); err != nil {
		return errHelp
	}
	if *username == "" || *kind == "" {
		cmd.Usage()
		return errHelp
	}

	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	if len(pwd) == 0 {
		cmd.Usage()
		return errHelp
	}

	id, err := session.Authenticate(*username, string(pwd))
	if err != nil {
		return err
	}
	if !session.Can(id.Role, session.CapReports) {
		return errForbidden
	}

	k, err := report.ParseKind(*kind)
	if err != nil {
		return err
	}
	filters := report.Filters{Class: *class, Section: *section, StudentID: *student}
	rep, err := cli.app.Reports.Generate(k, filters, report.DateRange{Start: *start, End: *end})
	if err != nil {
		return err
	}

	if *out == "" {
		enc := json.NewEncoder(cli.out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return writeWorkbook(rep, *out)
}

func writeWorkbook(rep report.Report, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating workbook")
	}
	defer func() {
		if cErr := f.Close(); err == nil {
			err = cErr
		}
	}()
	return report.WriteXLSX(rep, f)
}

func (cli *commandLine) gradeCmd(args []string) error {
	cmd := cli.newFlagSet("grade")
	marks := cmd.String("marks", "", "Marks obtained")
	total := cmd.String("total", "", "Total marks of the exam")

	if err := cmd.Parse(args); err != nil {
		return errHelp
	}
	if *marks == "" || *total == "" {
		cmd.Usage()
		return errHelp
	}
	m, err := strconv.ParseFloat(*marks, 64)
	if err != nil {
		return errors.Errorf("marks must be a number (got '%s')", *marks)
	}
	t, err := strconv.ParseFloat(*total, 64)
	if err != nil {
		return errors.Errorf("total must be a number (got '%s')", *total)
	}
	fmt.Fprintln(cli.out, exam.Grade(m, t))
	return nil
}

func (cli *commandLine) durationCmd(args []string) error {
	cmd := cli.newFlagSet("duration")
	start := cmd.String("start", "", "Start time (HH:MM)")
	end := cmd.String("end", "", "End time (HH:MM)")

	if err := cmd.Parse(args); err != nil {
		return errHelp
	}
	if *start == "" || *end == "" {
		cmd.Usage()
		return errHelp
	}
	minutes, err := transport.Duration(*start, *end)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, transport.FormatDuration(minutes))
	return nil
}
