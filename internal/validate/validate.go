package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"bistro/internal/domain"
)

var (
	reQ     = regexp.MustCompile(`^[\p{L}\p{N} _'\-]{1,50}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePrice = regexp.MustCompile(`^\d{1,6}(\.\d{1,2})?$`)
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return f.Name
	})
	_ = val.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		_, ok := Price(fl.Field().String())
		return ok
	})
	_ = val.RegisterValidation("minutes", func(fl validator.FieldLevel) bool {
		_, ok := Minutes(fl.Field().String())
		return ok
	})
	_ = val.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseCategory(fl.Field().String())
		return ok
	})
	return val
}

// SessionInput is the profile screen's sign-in form.
type SessionInput struct {
	Username string `form:"username" json:"username" validate:"required,min=3"`
	Chef     bool   `form:"isChef" json:"isChef"`
}

// Session trims and checks a sign-in. Username length counts characters,
// not bytes.
func Session(in SessionInput) (SessionInput, Failures) {
	in.Username = strings.TrimSpace(in.Username)
	return in, check(in)
}

// DraftInput is the raw draft form; every value arrives as text.
type DraftInput struct {
	Title       string `form:"title" json:"title" validate:"required"`
	Description string `form:"description" json:"description" validate:"required"`
	Price       string `form:"price" json:"price" validate:"required,price"`
	Category    string `form:"category" json:"category" validate:"required,category"`
	Ingredients string `form:"ingredients" json:"ingredients" validate:"required"`
	PrepTime    string `form:"preparationTime" json:"preparationTime" validate:"required,minutes"`
}

// Draft is all-or-nothing: either every field is usable and the parsed
// fields come back, or nothing does and the failures say why.
func Draft(in DraftInput) (domain.DraftFields, Failures) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Price = strings.TrimSpace(in.Price)
	in.Category = strings.TrimSpace(in.Category)
	in.Ingredients = strings.TrimSpace(in.Ingredients)
	in.PrepTime = strings.TrimSpace(in.PrepTime)

	if fails := check(in); len(fails) > 0 {
		return domain.DraftFields{}, fails
	}
	price, _ := Price(in.Price)
	mins, _ := Minutes(in.PrepTime)
	cat, _ := domain.ParseCategory(in.Category)
	return domain.DraftFields{
		Title:       in.Title,
		Description: in.Description,
		Price:       price,
		Category:    cat,
		Ingredients: in.Ingredients,
		PrepMinutes: mins,
	}, nil
}

func check(s any) Failures {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return Failures{{Field: "form", Reason: Invalid}}
	}
	out := make(Failures, 0, len(ves))
	for _, fe := range ves {
		r := Invalid
		switch fe.Tag() {
		case "required":
			r = Missing
		case "min":
			r = TooShort
		}
		out = append(out, Failure{Field: Field(fe.Field()), Reason: r})
	}
	return out
}

// Price accepts a positive amount written out in plain digits with at most
// two decimals, such as "12" or "12.50". Exponent forms are refused and the
// ceiling is 999999.99.
func Price(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if !rePrice.MatchString(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// Minutes accepts a positive whole number of minutes.
func Minutes(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if r := []rune(s); len(r) > 50 {
		s = string(r[:50])
	}
	return s, reQ.MatchString(s)
}

// ID validates a draft or receipt identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// DishID parses a catalog dish id.
func DishID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil && n > 0
}

// Delta parses a signed quantity change. Zero is allowed and changes nothing.
func Delta(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
