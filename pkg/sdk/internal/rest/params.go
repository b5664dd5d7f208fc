package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks the `validate` tags on a request struct and reports the first
// failure as an *errors.ArgumentError named after the JSON field.
func Validate(req any) error {
	err := validatorInstance().Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &sdkerrors.ArgumentError{Param: "request", Reason: err.Error()}
	}

	fe := verrs[0]
	param := strings.TrimPrefix(fe.Namespace(), structName(req)+".")
	switch fe.Tag() {
	case "required":
		return sdkerrors.Required(param)
	case "min":
		return &sdkerrors.ArgumentError{Param: param, Reason: "must not be empty"}
	default:
		return &sdkerrors.ArgumentError{Param: param, Reason: fmt.Sprintf("failed %q check", fe.Tag())}
	}
}

func structName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// RequireID rejects non-positive identifiers.
func RequireID(param string, id int64) error {
	if id <= 0 {
		return sdkerrors.Required(param)
	}
	return nil
}

// Page builds the pageno/pagesize query the API uses for pagination,
// substituting defaults for non-positive values.
func Page(page, pageSize, defaultPageSize int) url.Values {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	q := url.Values{}
	q.Set("pageno", strconv.Itoa(page))
	q.Set("pagesize", strconv.Itoa(pageSize))
	return q
}

// Path joins path segments, escaping each one.
func Path(segments ...any) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, url.PathEscape(fmt.Sprint(s)))
	}
	return strings.Join(parts, "/")
}

// Merge encodes base as a JSON object and overlays extra on top of it.
func Merge(base any, extra map[string]any) (map[string]any, error) {
	data, err := json.Marshal(base)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	for k, v := range extra {
		out[k] = v
	}
	return out, nil
}

// Required reports a missing parameter.
func Required(param string) error {
	return sdkerrors.Required(param)
}
