package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/trailog/internal/app"
	"github.com/alexanderramin/trailog/internal/domain"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*activityFlag)(nil)
	_ pflag.Value = (*sortFlag)(nil)
)

// activityFlag parses --type into a domain.ActivityType.
type activityFlag struct {
	value domain.ActivityType
}

func (f *activityFlag) String() string { return string(f.value) }
func (f *activityFlag) Type() string   { return "type" }

func (f *activityFlag) Set(s string) error {
	t, ok := domain.ParseActivityType(s)
	if !ok {
		return fmt.Errorf("must be one of %s", activityChoices())
	}
	f.value = t
	return nil
}

func activityChoices() string {
	names := make([]string, 0, len(domain.ActivityTypes))
	for _, t := range domain.ActivityTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, "|")
}

// sortFlag parses --sort into an app.SortField.
type sortFlag struct {
	value app.SortField
}

func (f *sortFlag) String() string { return string(f.value) }
func (f *sortFlag) Type() string   { return "field" }

func (f *sortFlag) Set(s string) error {
	field, err := app.ParseSortField(s)
	if err != nil {
		return err
	}
	f.value = field
	return nil
}

// float64FlagOrNaN returns the flag's value, or NaN when it was not given
// so validation reports the field as missing.
func float64FlagOrNaN(fs *pflag.FlagSet, name string) float64 {
	if !fs.Changed(name) {
		return math.NaN()
	}
	v, err := fs.GetFloat64(name)
	if err != nil {
		return math.NaN()
	}
	return v
}
