package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"

	apiclient "github.com/umoja/portal/api"
	"github.com/umoja/portal/core/notify"
	"github.com/umoja/portal/core/resource"
	"github.com/umoja/portal/core/school"
	"github.com/umoja/portal/core/upload"
	"github.com/umoja/portal/core/works"
)

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	return f, errors.Wrapf(err, "opening %s", path)
}

// screenDef binds a route to its screen constructor and its form record,
// so submitted JSON is decoded into the right type before validation.
type screenDef struct {
	build  func(*apiclient.Client) *resource.Screen
	record func() interface{}
}

var screenDefs = map[string]screenDef{
	"/students":         {school.NewStudentScreen, func() interface{} { return &school.Student{} }},
	"/payments":         {school.NewPaymentScreen, func() interface{} { return &school.Payment{} }},
	"/income":           {school.NewIncomeScreen, func() interface{} { return &school.Income{} }},
	"/expenses":         {school.NewExpenseScreen, func() interface{} { return &school.Expense{} }},
	"/payroll":          {school.NewPayrollScreen, func() interface{} { return &school.PayrollEntry{} }},
	"/budgets":          {school.NewBudgetScreen, func() interface{} { return &school.Budget{} }},
	"/terms":            {school.NewTermScreen, func() interface{} { return &school.Term{} }},
	"/employee-manager": {school.NewEmployeeScreen, func() interface{} { return &school.Employee{} }},
	"/advances":         {school.NewAdvanceScreen, func() interface{} { return &school.Advance{} }},

	"/site/employees":  {works.NewSiteEmployeeScreen, func() interface{} { return &works.SiteEmployee{} }},
	"/site/attendance": {works.NewAttendanceScreen, func() interface{} { return &works.AttendanceEntry{} }},
	"/site/payroll":    {works.NewSitePayrollScreen, func() interface{} { return &school.PayrollEntry{} }},
	"/site/reports":    {works.NewDailyReportScreen, func() interface{} { return &works.DailyReport{} }},
	"/site/sites":      {works.NewSiteScreen, func() interface{} { return &works.Site{} }},
	"/site/managers":   {works.NewSiteManagerScreen, func() interface{} { return &works.SiteManager{} }},
}

func (cli *commandLine) screenFor(route string) (*resource.Screen, screenDef, error) {
	def, ok := screenDefs[route]
	if !ok {
		return nil, screenDef{}, errors.Errorf("unknown screen %q", route)
	}
	if err := cli.guard(route); err != nil {
		return nil, screenDef{}, err
	}
	return def.build(cli.api), def, nil
}

func (cli *commandLine) list(ctx context.Context, route, filters string, page, limit int) error {
	screen, _, err := cli.screenFor(route)
	if err != nil {
		return err
	}

	params := parseFilters(filters)
	params["page"] = page
	params["limit"] = limit
	if err := screen.Load(ctx, params); err != nil {
		fmt.Println(screen.StatusLine())
		return err
	}

	fmt.Println(screen.StatusLine())
	for _, item := range screen.Items() {
		var record map[string]interface{}
		if err := json.Unmarshal(item, &record); err == nil {
			printJSON(record)
		}
	}
	p := screen.Pagination()
	if p.TotalPages > 1 {
		fmt.Printf("page %d of %d (%d total)\n", p.CurrentPage, p.TotalPages, p.TotalItems)
	}
	return nil
}

func (cli *commandLine) submit(ctx context.Context, verb, route, id, data string) error {
	screen, def, err := cli.screenFor(route)
	if err != nil {
		return err
	}

	record := def.record()
	if err := json.Unmarshal([]byte(data), record); err != nil {
		return errors.Wrap(err, "parsing -data")
	}

	if verb == "update" {
		if id == "" {
			return errors.New("update requires -id")
		}
		screen.OpenEdit(id, json.RawMessage(data))
		err = screen.Update(ctx, id, record)
	} else {
		screen.OpenCreate()
		err = screen.Create(ctx, record)
	}
	if err != nil {
		return err
	}
	cli.notes.Push(notify.Success, verb+"d")
	return nil
}

func (cli *commandLine) remove(ctx context.Context, route, id string) error {
	screen, _, err := cli.screenFor(route)
	if err != nil {
		return err
	}
	if id == "" {
		return errors.New("delete requires -id")
	}
	confirmed := confirm(fmt.Sprintf("delete %s %s? this cannot be undone", screen.Name(), id))
	if err := screen.Remove(ctx, id, confirmed); err != nil {
		if err == resource.ErrNotConfirmed {
			cli.notes.Push(notify.Info, "cancelled")
			return nil
		}
		return err
	}
	cli.notes.Push(notify.Success, "deleted")
	return nil
}

func (cli *commandLine) stats(ctx context.Context, route, filters string) error {
	screen, _, err := cli.screenFor(route)
	if err != nil {
		return err
	}
	var overview map[string]interface{}
	if err := screen.Stats(ctx, parseFilters(filters), &overview); err != nil {
		return err
	}
	printJSON(overview)
	return nil
}

func (cli *commandLine) finalizeAttendance(ctx context.Context, date, photoPath, data string) error {
	if err := cli.guard("/site/attendance"); err != nil {
		return err
	}
	if date == "" || photoPath == "" {
		return errors.New("finalize requires -date and -photo")
	}

	var entries []works.AttendanceEntry
	if data != "" {
		if err := json.Unmarshal([]byte(data), &entries); err != nil {
			return errors.Wrap(err, "parsing -data")
		}
	}

	photo, err := openFile(photoPath)
	if err != nil {
		return err
	}
	defer photo.Close()

	flow := upload.NewFlow(cli.conf)
	if err := flow.SelectFile(photoPath, photo); err != nil {
		return err
	}
	if err := works.FinalizeAttendance(ctx, cli.api, flow, date, entries); err != nil {
		return err
	}
	cli.notes.Push(notify.Success, "attendance finalized")
	return nil
}
