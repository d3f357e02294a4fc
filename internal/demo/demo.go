package demo

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/capkit/internal/changebus"
	"github.com/danmuck/capkit/internal/collection"
	"github.com/danmuck/capkit/internal/config"
	"github.com/danmuck/capkit/internal/delegate"
	"github.com/danmuck/capkit/internal/property"
	"github.com/danmuck/capkit/internal/variance"
	"github.com/rs/zerolog/log"
)

type Report struct {
	Name      string           `json:"name"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

type ScenarioResult struct {
	Name     string                `json:"name"`
	Lines    []string              `json:"lines"`
	Delegate *delegate.Description `json:"delegate,omitempty"`
	Error    string                `json:"error,omitempty"`
}

type scenario func(cfg config.DemoConfig, out *ScenarioResult) error

var scenarios = map[string]scenario{
	config.ScenarioDelegation: runDelegation,
	config.ScenarioObservable: runObservable,
	config.ScenarioLazy:       runLazy,
	config.ScenarioVariance:   runVariance,
}

// Run executes the configured scenarios in order, printing each line to w.
// A failing scenario does not stop the ones after it.
func Run(w io.Writer, cfg config.DemoConfig) (Report, error) {
	report := Report{Name: cfg.Name}
	var errs []error
	for _, name := range cfg.Scenarios {
		fn, ok := scenarios[name]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown scenario %q", name))
			continue
		}
		res := ScenarioResult{Name: name}
		if err := fn(cfg, &res); err != nil {
			res.Error = err.Error()
			errs = append(errs, fmt.Errorf("scenario %s: %w", name, err))
			log.Error().Err(err).Str("scenario", name).Msg("scenario failed")
		}
		fmt.Fprintf(w, "== %s\n", name)
		for _, line := range res.Lines {
			fmt.Fprintln(w, line)
		}
		report.Scenarios = append(report.Scenarios, res)
	}
	return report, errors.Join(errs...)
}

func (r *ScenarioResult) printf(format string, args ...any) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

func runDelegation(cfg config.DemoConfig, out *ScenarioResult) error {
	var inner collection.MutableCollection[int]
	switch cfg.Counting.Backing {
	case config.BackingArrayList:
		inner = collection.NewArrayList[int]()
	default:
		inner = collection.NewHashSet[int]()
	}
	set, err := collection.NewCountingSet(inner)
	if err != nil {
		return err
	}
	defer set.Close()

	if _, err := set.AddAll(cfg.Counting.Elements); err != nil {
		return err
	}
	size, err := set.Size()
	if err != nil {
		return err
	}
	desc := set.Delegate().Describe()
	out.Delegate = &desc
	out.printf("%d objects were added, %d remain", set.Added(), size)
	out.printf("overridden: %s", strings.Join(desc.Overridden, ", "))
	return nil
}

func nonNegative(v int) error {
	if v < 0 {
		return fmt.Errorf("must not be negative, got %d", v)
	}
	return nil
}

func runObservable(cfg config.DemoConfig, out *ScenarioResult) error {
	person := property.NewBean(cfg.Person.Name)
	age, err := property.Observe(person, "age", cfg.Person.Age, property.WithValidator(nonNegative))
	if err != nil {
		return err
	}
	salary, err := property.Observe(person, "salary", cfg.Person.Salary, property.WithValidator(nonNegative))
	if err != nil {
		return err
	}
	person.AddListener(changebus.ListenerFunc(func(ev changebus.Event) error {
		out.printf("Property %s changed from %v to %v", ev.Property, ev.Old, ev.New)
		return nil
	}), changebus.Named("printer"))

	cells := map[string]*property.Cell[int]{"age": age, "salary": salary}
	for _, u := range cfg.Person.Updates {
		cell, ok := cells[u.Property]
		if !ok {
			return fmt.Errorf("unknown property %q", u.Property)
		}
		if err := cell.Write(u.Value); err != nil {
			return err
		}
	}
	out.printf("%s: age=%d salary=%d", person.Name(), age.Read(), salary.Read())
	return nil
}

func runLazy(cfg config.DemoConfig, out *ScenarioResult) error {
	email := strings.ToLower(cfg.Person.Name) + "@example.com"
	loads := 0
	emails, err := property.NewLazy("emails", func() []string {
		loads++
		out.printf("Load emails for %s", cfg.Person.Name)
		return []string{email}
	})
	if err != nil {
		return err
	}
	nickname, err := property.NewComputed("nickname", func() string {
		return strings.SplitN(email, "@", 2)[0]
	})
	if err != nil {
		return err
	}

	emails.Read()
	emails.Read()
	out.printf("emails=%v loads=%d", emails.Read(), loads)
	out.printf("nickname=%s", nickname.Read())
	if err := nickname.Write("x"); !errors.Is(err, property.ErrUnsupportedOperation) {
		return fmt.Errorf("computed nickname accepted a write: %v", err)
	}
	return nil
}

type number interface {
	Float() float64
}

type intValue int

func (i intValue) Float() float64 { return float64(i) }

func runVariance(cfg config.DemoConfig, out *ScenarioResult) error {
	ints := variance.NewList[intValue]()
	for _, v := range cfg.Counting.Elements {
		ints.Add(intValue(v))
	}

	nums := variance.Out(ints.Producer(), func(v intValue) number { return v })
	total := 0.0
	for n := range nums.All() {
		total += n.Float()
	}
	out.printf("sum over producer view: %g", total)

	anyItems := variance.NewList[any]()
	n := variance.Copy(ints.Producer(), anyItems.Consumer(), func(v intValue) any { return v })
	out.printf("copied %d items: %v", n, anyItems.Values())

	if anyItems.Len() > 0 {
		if _, err := variance.Narrow[string](anyItems.At(0)); err == nil {
			return fmt.Errorf("narrowing an int to string succeeded")
		}
		out.printf("first item narrows to int only: %v", anyItems.At(0))
	}
	return nil
}
