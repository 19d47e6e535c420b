package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Makepad-fr/taskpad/internal/export"
	"github.com/Makepad-fr/taskpad/internal/model"
	"github.com/Makepad-fr/taskpad/internal/store"
	"github.com/Makepad-fr/taskpad/internal/tui"
	"github.com/Makepad-fr/taskpad/internal/ui"
	"github.com/Makepad-fr/taskpad/internal/view"
)

// Options tune behavior from root flags and config.
type Options struct {
	File   string // resolved data file path
	Filter string // all | pending | completed | high | medium | low
	Search string // substring match on task text
	Group  bool   // list grouped by pending/done

	// Today overrides the current date in list rendering. Zero means
	// the real today; set by tests.
	Today model.Date
}

func (o Options) today() model.Date {
	if !o.Today.IsZero() {
		return o.Today
	}
	return model.DateOf(time.Now())
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		return doList(opt)

	case "add":
		return doAdd(a, opt)

	case "edit":
		return doEdit(a, opt)

	case "done":
		id, code := parseID(a, "done")
		if code != 0 {
			return code
		}
		return doToggle(id, opt)

	case "rm":
		id, code := parseID(a, "rm")
		if code != 0 {
			return code
		}
		return doRemove(id, opt)

	case "clear":
		return doClear(opt)

	case "show":
		id, code := parseID(a, "show")
		if code != 0 {
			return code
		}
		return doShow(id, opt)

	case "export":
		return doExport(a, opt)

	case "tui":
		return doTUI(opt)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`taskpad - a task list with priorities and due dates

Usage:
  taskpad [flags] <subcommand> [args]

Subcommands:
  add [-p priority] [-d date] <text...>   Add a new task
  ls                                      List tasks (respects -filter/-search)
  edit <id> [-t text] [-p pri] [-d date]  Edit fields of a task
  done <id>                               Toggle completion for a task
  rm <id>                                 Delete a task
  clear                                   Delete all completed tasks
  show <id>                               Show one task's fields
  export <id> <path>                      Export a task as .txt or .json
  tui                                     Interactive full-screen mode

Flags:
  -file, -filter, -search, -group, -theme, -no-color

Examples:
  taskpad add -p high -d 2026-09-15 "File the report"
  taskpad -filter pending -search report ls
  taskpad done 2
  taskpad export 2 report-task.json
`)
}

// -------------- subcommand impls ----------------

func openStore(opt Options) (*store.Store, int) {
	st, err := store.Open(opt.File)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return nil, 1
	}
	if st.Recovered() {
		ui.Warn("data file was unreadable; starting with an empty list")
	}
	return st, 0
}

func parseID(a []string, cmd string) (int64, int) {
	if len(a) != 1 {
		ui.Fail("usage: taskpad " + cmd + " <id>")
		return 0, 2
	}
	id, err := strconv.ParseInt(a[0], 10, 64)
	if err != nil {
		ui.Fail(cmd + ": not a task id: " + a[0])
		return 0, 2
	}
	return id, 0
}

func doList(opt Options) int {
	st, code := openStore(opt)
	if code != 0 {
		return code
	}

	q := view.Query{Search: opt.Search}
	var okFilter bool
	q.Filter, q.Priority, okFilter = view.ParseFilter(opt.Filter)
	if !okFilter {
		ui.Fail("unknown filter: " + opt.Filter)
		return 2
	}

	tasks := st.Tasks()
	visible := view.Visible(tasks, q)
	stats := view.Count(tasks)

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(ui.Current().Title, "Tasks"),
		ui.C(ui.Current().Success, ui.Current().SymDone), stats.Completed,
		ui.C(ui.Current().Pending, ui.Current().SymUnchecked), stats.Pending,
		ui.C(ui.Current().Accent, "Total"), stats.Total,
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(ui.Current().Muted, ui.ProgressBar(stats.Completed, stats.Total, 28)))
	lines = append(lines, "")

	if opt.Group {
		lines = append(lines, groupLines(visible, opt.today())...)
	} else {
		lines = append(lines, flatLines(visible, opt.today())...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted, "Tip: add with `taskpad add -p high \"File the report\"`"))
	ui.Panel(lines)
	return 0
}

func doAdd(a []string, opt Options) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	pri := fs.String("p", "", "priority: high, medium or low")
	due := fs.String("d", "", "due date, YYYY-MM-DD")
	if err := fs.Parse(a); err != nil {
		return 2
	}
	text := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(text) == "" {
		ui.Fail("usage: taskpad add [-p priority] [-d date] <text...>")
		return 2
	}

	priority, err := model.ParsePriority(*pri)
	if err != nil {
		ui.Fail("add: " + err.Error())
		return 2
	}
	var dueDate model.Date
	if *due != "" {
		if dueDate, err = model.ParseDate(*due); err != nil {
			ui.Fail("add: " + err.Error())
			return 2
		}
	}

	st, code := openStore(opt)
	if code != 0 {
		return code
	}
	task, err := st.Add(text, priority, dueDate)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			ui.Fail("add: " + err.Error())
			return 2
		}
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("added task %d", task.ID))
	return 0
}

func doEdit(a []string, opt Options) int {
	if len(a) == 0 {
		ui.Fail("usage: taskpad edit <id> [-t text] [-p priority] [-d date|none]")
		return 2
	}
	id, code := parseID(a[:1], "edit")
	if code != 0 {
		return code
	}

	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	text := fs.String("t", "", "new text")
	pri := fs.String("p", "", "new priority")
	due := fs.String("d", "", "new due date, YYYY-MM-DD, or 'none' to clear")
	if err := fs.Parse(a[1:]); err != nil {
		return 2
	}

	var ch store.Changes
	if *text != "" {
		ch.Text = text
	}
	if *pri != "" {
		p, err := model.ParsePriority(*pri)
		if err != nil {
			ui.Fail("edit: " + err.Error())
			return 2
		}
		ch.Priority = &p
	}
	if *due != "" {
		if strings.EqualFold(*due, "none") {
			ch.Due = &model.Date{}
		} else {
			d, err := model.ParseDate(*due)
			if err != nil {
				ui.Fail("edit: " + err.Error())
				return 2
			}
			ch.Due = &d
		}
	}
	if ch.Text == nil && ch.Priority == nil && ch.Due == nil {
		ui.Fail("edit: nothing to change")
		return 2
	}

	st, code := openStore(opt)
	if code != 0 {
		return code
	}
	if _, err := st.Edit(id, ch); err != nil {
		return failMutation("edit", err)
	}
	ui.OK("updated")
	return 0
}

func doToggle(id int64, opt Options) int {
	st, code := openStore(opt)
	if code != 0 {
		return code
	}
	task, err := st.ToggleComplete(id)
	if err != nil {
		return failMutation("done", err)
	}
	if task.Completed {
		ui.OK("completed: " + task.Text)
	} else {
		ui.OK("marked pending: " + task.Text)
	}
	return 0
}

func doRemove(id int64, opt Options) int {
	st, code := openStore(opt)
	if code != 0 {
		return code
	}
	if err := st.Delete(id); err != nil {
		return failMutation("rm", err)
	}
	ui.OK("deleted")
	return 0
}

func doClear(opt Options) int {
	st, code := openStore(opt)
	if code != 0 {
		return code
	}
	n, err := st.ClearCompleted()
	if err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	if n == 0 {
		fmt.Println(ui.C(ui.Current().Muted, "no completed tasks to clear"))
		return 0
	}
	ui.OK(fmt.Sprintf("cleared %d completed task(s)", n))
	return 0
}

func doShow(id int64, opt Options) int {
	st, code := openStore(opt)
	if code != 0 {
		return code
	}
	task, err := st.Get(id)
	if err != nil {
		return failMutation("show", err)
	}
	ui.Panel(strings.Split(strings.TrimRight(export.Text(task), "\n"), "\n"))
	return 0
}

func doExport(a []string, opt Options) int {
	if len(a) != 2 {
		ui.Fail("usage: taskpad export <id> <path>")
		return 2
	}
	id, code := parseID(a[:1], "export")
	if code != 0 {
		return code
	}
	st, codeOpen := openStore(opt)
	if codeOpen != 0 {
		return codeOpen
	}
	task, err := st.Get(id)
	if err != nil {
		return failMutation("export", err)
	}
	if err := export.WriteFile(a[1], task); err != nil {
		ui.Fail("export: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("exported task %d to %s", id, a[1]))
	return 0
}

func doTUI(opt Options) int {
	st, code := openStore(opt)
	if code != 0 {
		return code
	}
	if err := tui.Run(st); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

// failMutation maps store errors to exit codes: bad input 2, storage 1.
func failMutation(cmd string, err error) int {
	ui.Fail(cmd + ": " + err.Error())
	var verr *model.ValidationError
	if errors.Is(err, store.ErrNotFound) || errors.As(err, &verr) {
		return 2
	}
	return 1
}

// -------------- rendering helpers --------------

func flatLines(tasks []model.Task, today model.Date) []string {
	if len(tasks) == 0 {
		return []string{ui.C(ui.Current().Muted, "no tasks")}
	}
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskLine(t, today))
	}
	return out
}

func groupLines(tasks []model.Task, today model.Date) []string {
	var pend, done []model.Task
	for _, t := range tasks {
		if t.Completed {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	var lines []string
	lines = append(lines, ui.C(ui.Current().Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend, today)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done, today)...)
	}
	return lines
}

func taskLine(t model.Task, today model.Date) string {
	idCol := fmt.Sprintf("%3d.", t.ID)
	box := ui.Current().BoxUnchecked
	boxColor := ui.Current().Muted
	if t.Completed {
		box, boxColor = ui.Current().BoxChecked, ui.Current().Success
	}
	badge := ui.C(ui.PriorityColor(string(t.Priority)), "["+badgeLetter(t.Priority)+"]")

	text := t.Text
	if len(text) > 60 {
		text = text[:57] + "..."
	}
	if t.Completed {
		text = ui.C(dimColor(), text)
	}

	line := fmt.Sprintf("%s %s %s %s", ui.C(dimColor(), idCol), ui.C(boxColor, box), badge, text)
	if due := dueLabel(t, today); due != "" {
		line += "  " + due
	}
	return line
}

// dueLabel renders "2026-09-15 (3d left)" style suffixes, red when the
// task is overdue.
func dueLabel(t model.Task, today model.Date) string {
	if t.Due.IsZero() {
		return ""
	}
	days := t.Due.DaysUntil(today)
	var note string
	switch {
	case t.Completed:
		note = ""
	case days < 0:
		note = fmt.Sprintf(" (%dd overdue)", -days)
	case days == 0:
		note = " (today)"
	default:
		note = fmt.Sprintf(" (%dd left)", days)
	}
	label := t.Due.String() + note
	if t.Overdue(today) {
		return ui.C(ui.Current().Overdue, label)
	}
	return ui.C(ui.Current().Muted, label)
}

func badgeLetter(p model.Priority) string {
	if p == "" {
		p = model.DefaultPriority
	}
	return strings.ToUpper(string(p)[:1])
}

func dimColor() string { return "\033[2m" }
