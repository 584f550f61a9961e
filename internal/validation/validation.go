// Package validation checks a settlement request before it reaches the
// calculator. The calculator assumes valid input; everything that would make
// its output meaningless is rejected here.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/dividizky/internal/models"
)

const (
	// MinPeople is the smallest headcount for which splitting makes sense.
	MinPeople = 2

	// MaxPeople caps the headcount, payers plus additional people. The
	// calculator builds one roster entry per person.
	MaxPeople = 1000

	// MaxExpense caps a single expense. With MaxPeople it keeps every total
	// at or below 1e12, where sums stay finite and exact to well under a cent.
	MaxExpense = 1_000_000_000
)

var (
	// ErrValidationFailed wraps every error returned by Validate.
	ErrValidationFailed = errors.New("validation failed")

	ErrNoPeople           = errors.New("at least one person who paid is required")
	ErrBlankName          = errors.New("name must not be blank")
	ErrDuplicateName      = errors.New("name is used more than once")
	ErrNonPositiveExpense = errors.New("expense must be greater than zero")
	ErrNegativeAdditional = errors.New("additional people must not be negative")
	ErrTooFewPeople       = errors.New("at least two people are needed to split an expense")
	ErrTooManyPeople      = fmt.Errorf("at most %d people can split an expense", MaxPeople)
	ErrExpenseTooLarge    = fmt.Errorf("expense must not exceed %d", MaxExpense)
)

// person and group mirror the calculator input with validation rules.
// The lte/max bounds are MaxExpense and MaxPeople.
type person struct {
	Name    string  `validate:"notblank"`
	Expense float64 `validate:"finite,gt=0,lte=1000000000"`
}

type group struct {
	People     []person `validate:"required,min=1,max=1000,dive"`
	Additional int      `validate:"gte=0,lte=1000"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
	errValidate  error
)

func initValidator() (*validator.Validate, error) {
	vld := validator.New(validator.WithRequiredStructEnabled())

	if err := vld.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		return nil, fmt.Errorf("register 'notblank': %w", err)
	}

	if err := vld.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}); err != nil {
		return nil, fmt.Errorf("register 'finite': %w", err)
	}

	return vld, nil
}

func getValidator() (*validator.Validate, error) {
	validateOnce.Do(func() {
		validate, errValidate = initValidator()
	})
	return validate, errValidate
}

// Validate reports the first problem that would make a settlement for people
// plus additional non-paying participants invalid:
//   - at least one person, each with a non-blank name and an expense in
//     (0, MaxExpense]
//   - names unique (case-insensitive), since results are presented by name
//   - additional >= 0 and a total headcount between MinPeople and MaxPeople
func Validate(people []models.Participant, additional int) error {
	vld, err := getValidator()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	g := group{People: make([]person, len(people)), Additional: additional}
	for i, p := range people {
		g.People[i] = person{Name: p.Name, Expense: p.Expense}
	}

	if err := vld.Struct(g); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("%w: %w", ErrValidationFailed, fieldError(fieldErrs[0]))
		}
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	seen := make(map[string]int, len(people))
	for i, p := range people {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if first, dup := seen[key]; dup {
			return fmt.Errorf("%w: people[%d].name %q (also people[%d]): %w",
				ErrValidationFailed, i, p.Name, first, ErrDuplicateName)
		}
		seen[key] = i
	}

	// both terms are bounded by the tags above, so the sum cannot overflow
	switch headcount := len(people) + additional; {
	case headcount < MinPeople:
		return fmt.Errorf("%w: %w", ErrValidationFailed, ErrTooFewPeople)
	case headcount > MaxPeople:
		return fmt.Errorf("%w: %d people: %w", ErrValidationFailed, headcount, ErrTooManyPeople)
	}

	return nil
}

// fieldError maps a validator failure to one of the package sentinels,
// naming the offending field the way API clients see it.
func fieldError(fe validator.FieldError) error {
	ns := fe.Namespace()
	ns = strings.TrimPrefix(ns, "group.")
	ns = strings.Replace(ns, "People", "people", 1)
	ns = strings.Replace(ns, ".Name", ".name", 1)
	ns = strings.Replace(ns, ".Expense", ".expense", 1)

	switch fe.Field() {
	case "People":
		if fe.Tag() == "max" {
			return fmt.Errorf("people: %w", ErrTooManyPeople)
		}
		return ErrNoPeople
	case "Name":
		return fmt.Errorf("%s: %w", ns, ErrBlankName)
	case "Expense":
		if fe.Tag() == "lte" {
			return fmt.Errorf("%s: %w", ns, ErrExpenseTooLarge)
		}
		return fmt.Errorf("%s: %w", ns, ErrNonPositiveExpense)
	case "Additional":
		if fe.Tag() == "lte" {
			return fmt.Errorf("additionalPeople: %w", ErrTooManyPeople)
		}
		return fmt.Errorf("additionalPeople: %w", ErrNegativeAdditional)
	default:
		return fmt.Errorf("%s: failed on '%s'", ns, fe.Tag())
	}
}
