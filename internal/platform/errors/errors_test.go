package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCode(99), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := c.code.Status(); got != c.want {
			t.Fatalf("%s: got %d want %d", c.code, got, c.want)
		}
	}
	if HTTPStatus(nil) != http.StatusOK {
		t.Fatalf("nil error should be 200")
	}
	if HTTPStatus(stderrs.New("plain")) != http.StatusInternalServerError {
		t.Fatalf("foreign error should be 500")
	}
}

func TestWrapKeepsCauseAndCode(t *testing.T) {
	cause := stderrs.New("disk gone")
	err := Wrapf(cause, ErrorCodeUnavailable, "load %s", "facts")
	if !stderrs.Is(err, cause) {
		t.Fatalf("cause lost")
	}
	if !IsCode(fmt.Errorf("outer: %w", err), ErrorCodeUnavailable) {
		t.Fatalf("code lost through fmt wrap")
	}
	if err.Error() != "load facts: disk gone" {
		t.Fatalf("message: %q", err.Error())
	}
	if Wrap(nil, ErrorCodeDB, "x") != nil {
		t.Fatalf("nil cause should stay nil")
	}
}

func TestWithFieldAndOpCopy(t *testing.T) {
	base := InvalidArgf("end before start")
	withField := WithField(base, "trend_window")
	withOp := WithOp(withField, "dashboard.report")

	e, _ := As(withOp)
	if e.Field() != "trend_window" || e.Op() != "dashboard.report" {
		t.Fatalf("field/op: %q %q", e.Field(), e.Op())
	}
	if b, _ := As(base); b.Field() != "" || b.Op() != "" {
		t.Fatalf("base mutated")
	}
	if withOp.Error() != "dashboard.report: end before start" {
		t.Fatalf("message: %q", withOp.Error())
	}

	foreign := WithField(stderrs.New("boom"), "sales")
	if fe, ok := As(foreign); !ok || fe.Field() != "sales" || fe.Code() != ErrorCodeUnknown {
		t.Fatalf("foreign error should be wrapped with the field")
	}
	if WithField(nil, "x") != nil {
		t.Fatalf("nil should stay nil")
	}
}

func TestWireFrom(t *testing.T) {
	w := WireFrom(WithField(Newf(ErrorCodeValidation, "sales must be finite"), "sales"))
	if w.Code != ErrorCodeValidation || w.Field != "sales" || w.Message != "sales must be finite" {
		t.Fatalf("wire: %+v", w)
	}
	db := WireFrom(Wrap(stderrs.New("password=secret"), ErrorCodeDB, "pg: load facts"))
	if db.Message != "pg: load facts" {
		t.Fatalf("db causes must not leak: %q", db.Message)
	}
	if got := WireFrom(stderrs.New("x")); got.Code != ErrorCodeUnknown || got.Message != "x" {
		t.Fatalf("foreign: %+v", got)
	}
	if (WireFrom(nil) != Wire{}) {
		t.Fatalf("nil should be zero wire")
	}
}

func TestFromPostgres(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"check violation", &pgconn.PgError{Code: "23514"}, ErrorCodeValidation},
		{"bad text", &pgconn.PgError{Code: "22P02"}, ErrorCodeValidation},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, ErrorCodeUnavailable},
		{"missing table", &pgconn.PgError{Code: "42P01"}, ErrorCodeUnavailable},
		{"syntax", &pgconn.PgError{Code: "42601"}, ErrorCodeDB},
		{"foreign", stderrs.New("eof"), ErrorCodeDB},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CodeOf(FromPostgres(c.err, "pg: op")); got != c.want {
				t.Fatalf("got %s want %s", got, c.want)
			}
		})
	}

	withCol := FromPostgres(&pgconn.PgError{Code: "23502", ColumnName: "sales"}, "pg: insert facts")
	if e, _ := As(withCol); e.Field() != "sales" {
		t.Fatalf("column should become the field")
	}
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("nil should stay nil")
	}
}
